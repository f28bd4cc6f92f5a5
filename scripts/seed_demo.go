// 演示数据初始化脚本
//
// 创建一个管理员账号、一批示例题目和一场开启负分的演示比赛，
// 用于本地联调和前端开发。重复执行时已存在的管理员会被跳过。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"
	"time"

	"quiz_contest_backend/internal/config"
	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/repository"
	"quiz_contest_backend/internal/service"
	"quiz_contest_backend/pkg/database"
	"quiz_contest_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	contestRepo := repository.NewContestRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	questionService := service.NewQuestionService(questionRepo)
	contestService := service.NewContestService(contestRepo, questionRepo, nil)

	admin := &model.User{
		Name:     "管理员",
		Email:    "admin@example.com",
		Password: "admin123456",
		Role:     model.RoleAdmin,
	}
	if err := authService.Register(admin); err != nil {
		log.Printf("管理员已存在，跳过: %v", err)
		existing, ferr := userRepo.FindByEmail(admin.Email)
		if ferr != nil {
			log.Fatalf("查询管理员失败: %v", ferr)
		}
		admin = existing
	}

	reqs := []service.QuestionReq{
		{
			Category:       "计算机基础",
			Difficulty:     "easy",
			Question:       "HTTP 默认端口是多少？",
			Options:        []string{"21", "80", "443", "8080"},
			CorrectAnswers: []string{"80"},
			Score:          1,
		},
		{
			Category:       "计算机基础",
			Difficulty:     "medium",
			Question:       "下列哪种排序算法的平均时间复杂度是 O(n log n)？",
			Options:        []string{"冒泡排序", "插入排序", "快速排序", "选择排序"},
			CorrectAnswers: []string{"快速排序"},
			Score:          2,
		},
		{
			Category:       "计算机基础",
			Difficulty:     "hard",
			Question:       "TCP 建立连接需要几次握手？",
			Options:        []string{"1", "2", "3", "4"},
			CorrectAnswers: []string{"3"},
			Score:          2,
		},
		{
			Category:       "数据库",
			Difficulty:     "medium",
			Question:       "InnoDB 默认的事务隔离级别是？",
			Options:        []string{"读未提交", "读已提交", "可重复读", "串行化"},
			CorrectAnswers: []string{"可重复读"},
			Score:          1,
		},
	}

	questions, err := questionService.BulkCreate(reqs)
	if err != nil {
		log.Fatalf("示例题目创建失败: %v", err)
	}
	log.Printf("创建了 %d 道示例题目", len(questions))

	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}

	title := "演示比赛"
	description := "带负分规则的演示比赛，扣分比例 1/4"
	start := time.Now()
	end := start.Add(2 * time.Hour)
	withCode := true
	negative := true
	ratio := 0.25

	contest, err := contestService.Create(admin.ID, service.ContestReq{
		Title:                &title,
		Description:          &description,
		StartTime:            &start,
		EndTime:              &end,
		WithJoinCode:         &withCode,
		NegativeMarking:      &negative,
		NegativeMarkingValue: &ratio,
		QuestionIDs:          &ids,
	})
	if err != nil {
		log.Fatalf("演示比赛创建失败: %v", err)
	}

	code := ""
	if contest.JoinCode != nil {
		code = *contest.JoinCode
	}
	log.Printf("演示比赛创建完成 (ID=%d, 邀请码=%s)", contest.ID, code)
}
