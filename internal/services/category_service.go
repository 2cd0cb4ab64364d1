package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure CategoryServiceImpl implements CategoryService
var _ CategoryService = (*CategoryServiceImpl)(nil)

// CategoryServiceImpl manages the clothing category taxonomy.
type CategoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryServiceImpl
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryServiceImpl {
	return &CategoryServiceImpl{categoryRepo: categoryRepo}
}

// CreateCategory stores a new category. Names are unique; a duplicate is
// rejected with ErrCategoryExists.
func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, name string, subcategories []string) (*models.Category, error) {
	_, err := s.categoryRepo.FindByName(ctx, name)
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	if subcategories == nil {
		subcategories = []string{}
	}
	category := &models.Category{
		Name:          name,
		Subcategories: subcategories,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("Category created", "name", name, "subcategories", len(subcategories))
	return category, nil
}

// ListCategories returns every category.
func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
