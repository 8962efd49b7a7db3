package service

import (
	"context"
	"fmt"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	"github.com/kutanig/explore-with-me/internal/entity"
)

// NewUserRequest represents the data needed to register a user
type NewUserRequest struct {
	Email string `json:"email" binding:"required,email,min=6,max=254"`
	Name  string `json:"name" binding:"required,min=2,max=250"`
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, req *NewUserRequest) (*entity.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, entity.ErrUserEmailExists
	}

	user := &entity.User{
		Email: req.Email,
		Name:  req.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetUsers(ctx context.Context, ids []int64, from, size int) ([]*entity.User, error) {
	if err := validatePagination(from, size); err != nil {
		return nil, err
	}
	return s.userRepo.GetAll(ctx, ids, from, size)
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
