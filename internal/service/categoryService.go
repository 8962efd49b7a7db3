package service

import (
	"context"
	"fmt"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	"github.com/kutanig/explore-with-me/internal/entity"
)

// CategoryRequest represents the data needed to create or rename a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	eventRepo    repository.EventRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, eventRepo repository.EventRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		eventRepo:    eventRepo,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *CategoryRequest) (*entity.Category, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, entity.ErrCategoryExists
	}

	category := &entity.Category{Name: req.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, req *CategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, entity.ErrCategoryExists
	}

	category.Name = req.Name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory удаляет категорию, если на нее не ссылается ни одно событие
func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.eventRepo.ExistsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse {
		return entity.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, id)
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) GetCategories(ctx context.Context, from, size int) ([]*entity.Category, error) {
	if err := validatePagination(from, size); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetAll(ctx, from, size)
}
