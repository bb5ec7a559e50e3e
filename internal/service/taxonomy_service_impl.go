package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mrfop/worktime/internal/domain"
	"github.com/mrfop/worktime/internal/repository"
)

type categoryService struct {
	categories repository.CategoryRepo
}

// NewCategoryService creates the category reference service.
func NewCategoryService(categories repository.CategoryRepo) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	c := &domain.Category{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.categories.GetByID(ctx, c.ID)
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *categoryService) FindAll(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

type activityService struct {
	activities repository.ActivityRepo
}

// NewActivityService creates the activity reference service.
func NewActivityService(activities repository.ActivityRepo) ActivityService {
	return &activityService{activities: activities}
}

func (s *activityService) Create(ctx context.Context, name string) (*domain.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("activity name is required")
	}
	a := &domain.Activity{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.activities.GetByID(ctx, a.ID)
}

func (s *activityService) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

func (s *activityService) FindAll(ctx context.Context) ([]*domain.Activity, error) {
	return s.activities.FindAll(ctx)
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	return s.activities.Delete(ctx, id)
}
