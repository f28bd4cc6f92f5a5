package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

type ProfileReq struct {
	Name *string `json:"name"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileReq) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 头像上传，文件名带用户 ID 和时间戳避免覆盖。
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("avatars/%d_%d%s", userID, time.Now().Unix(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, name, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) ListUsers(page, limit int, role string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, role)
}

// SetRole 管理员任命/撤销版主。
func (s *UserService) SetRole(userID uint, role model.UserRole) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return err
	}
	return s.UserRepo.SetRole(userID, role)
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return err
	}
	return s.UserRepo.SetDisabled(userID, disabled)
}

// IsNotFound 用户查询的 not found 判定。
func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
