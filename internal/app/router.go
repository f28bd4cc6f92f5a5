package app

import (
	"quiz_contest_backend/docs"
	"quiz_contest_backend/internal/config"
	"quiz_contest_backend/internal/middleware"
	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		users := authGroup.Group("/users")
		{
			users.GET("/profile", c.user.GetProfile)
			users.PUT("/profile", c.user.UpdateProfile)
			users.POST("/avatar", c.user.UploadAvatar)
		}

		questions := authGroup.Group("/questions")
		{
			questions.GET("", c.question.List)
			questions.GET("/:id", c.question.Get)
		}

		contests := authGroup.Group("/contests")
		{
			contests.GET("", c.contest.List)
			contests.GET("/active", c.contest.ListActive)
			contests.GET("/:id", c.contest.Get)

			contests.POST("/join", c.participation.JoinByCode)
			contests.POST("/:id/join", c.participation.Join)
			contests.GET("/:id/participation", c.participation.Get)

			contests.POST("/:id/submit", c.result.Submit)
			contests.GET("/:id/result", c.result.GetResult)
			contests.GET("/:id/leaderboard", c.result.Leaderboard)
			contests.POST("/:id/violation", c.result.RecordViolation)
		}

		// 3. 版主及以上
		moderator := authGroup.Group("")
		moderator.Use(middleware.RoleMiddleware(model.RoleModerator))
		{
			moderator.POST("/questions", c.question.Create)
			moderator.POST("/questions/bulk", c.question.BulkCreate)
			moderator.POST("/questions/import", c.question.Import)
			moderator.PUT("/questions/:id", c.question.Update)
			moderator.DELETE("/questions/:id", c.question.Delete)

			moderator.POST("/contests", c.contest.Create)
			moderator.PUT("/contests/:id", c.contest.Update)
			moderator.PUT("/contests/:id/extend", c.contest.Extend)
			moderator.DELETE("/contests/:id", c.contest.Delete)

			moderator.GET("/contests/:id/participants", c.participation.ListByContest)
			moderator.GET("/contests/:id/stats", c.result.Stats)
			moderator.GET("/contests/:id/export", c.export.Export)
			moderator.POST("/contests/:id/export/archive", c.export.Archive)
		}

		// 4. 管理员
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		{
			admin.GET("/users", c.user.ListUsers)
			admin.PUT("/users/:id/role", c.user.SetRole)
			admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		}
	}
}
