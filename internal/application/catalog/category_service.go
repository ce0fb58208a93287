package catalog

import (
	"context"
	"errors"

	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category reads and owner updates
type CategoryService struct {
	txScope      TransactionScope
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(txScope TransactionScope, categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		txScope:      txScope,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns a page of categories, optionally only those of one shop
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	categories, total, err := s.categoryRepo.FindAll(ctx, catalog.CategoryFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		ShopID: filter.ShopID,
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(c)
	}
	return responses, total, nil
}

// GetByID returns a category with the ids of the shops listing it
func (s *CategoryService) GetByID(ctx context.Context, id uint64) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Rename changes the name of a category listed by one of the actor's shops
func (s *CategoryService) Rename(ctx context.Context, actor access.Actor, id uint64, req UpdateCategoryRequest) (*CategoryResponse, error) {
	var category *catalog.Category
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		category, err = repos.CategoryRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsCategoryOwnerOrAdmin(actor, category) {
			return shared.ErrForbidden
		}
		if err := category.Rename(req.Name); err != nil {
			return err
		}

		other, err := repos.CategoryRepo().FindByName(ctx, category.Name)
		switch {
		case err == nil && other.ID != category.ID:
			return shared.ErrAlreadyExists.WithMessage("Category name is already in use")
		case err != nil && !errors.Is(err, catalog.ErrCategoryNotFound):
			return err
		}
		return repos.CategoryRepo().Update(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category together with its products and listings
func (s *CategoryService) Delete(ctx context.Context, actor access.Actor, id uint64) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		category, err := repos.CategoryRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsCategoryOwnerOrAdmin(actor, category) {
			return shared.ErrForbidden
		}
		return repos.CategoryRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Category deleted", zap.Uint64("category_id", id), zap.Uint64("user_id", actor.UserID))
	return nil
}
