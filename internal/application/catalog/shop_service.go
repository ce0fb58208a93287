package catalog

import (
	"context"

	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShopService handles shop reads and owner updates
type ShopService struct {
	txScope  TransactionScope
	shopRepo catalog.ShopRepository
	logger   *zap.Logger
}

// NewShopService creates a new ShopService
func NewShopService(txScope TransactionScope, shopRepo catalog.ShopRepository, logger *zap.Logger) *ShopService {
	return &ShopService{
		txScope:  txScope,
		shopRepo: shopRepo,
		logger:   logger,
	}
}

// List returns a page of shops
func (s *ShopService) List(ctx context.Context, filter ShopListFilter) ([]ShopResponse, int64, error) {
	shops, total, err := s.shopRepo.FindAll(ctx, catalog.ShopFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
		},
		Name:  filter.Name,
		State: filter.State,
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShopResponse, len(shops))
	for i, shop := range shops {
		responses[i] = ToShopResponse(shop)
	}
	return responses, total, nil
}

// GetByID returns a shop
func (s *ShopService) GetByID(ctx context.Context, id uint64) (*ShopResponse, error) {
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToShopResponse(shop)
	return &resp, nil
}

// Update changes name and site of a shop owned by the actor
func (s *ShopService) Update(ctx context.Context, actor access.Actor, id uint64, req UpdateShopRequest) (*ShopResponse, error) {
	return s.mutate(ctx, actor, id, func(shop *catalog.Shop) error {
		return shop.Update(req.Name, req.URL)
	})
}

// SetState opens or closes a shop for new basket items
func (s *ShopService) SetState(ctx context.Context, actor access.Actor, id uint64, req UpdateShopStateRequest) (*ShopResponse, error) {
	open := req.State != nil && *req.State
	resp, err := s.mutate(ctx, actor, id, func(shop *catalog.Shop) error {
		shop.SetState(open)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Shop state changed", zap.Uint64("shop_id", id), zap.Bool("state", open))
	return resp, nil
}

func (s *ShopService) mutate(ctx context.Context, actor access.Actor, id uint64, change func(*catalog.Shop) error) (*ShopResponse, error) {
	var shop *catalog.Shop
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		shop, err = repos.ShopRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsShopOwnerOrAdmin(actor, shop) {
			return shared.ErrForbidden
		}
		if err := change(shop); err != nil {
			return err
		}
		return repos.ShopRepo().Update(ctx, shop)
	})
	if err != nil {
		return nil, err
	}

	resp := ToShopResponse(shop)
	return &resp, nil
}
