package catalog

import (
	"context"
	"strings"

	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService serves the public product listing and partner listing management
type ProductService struct {
	txScope  TransactionScope
	infoRepo catalog.ProductInfoRepository
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(txScope TransactionScope, infoRepo catalog.ProductInfoRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		txScope:  txScope,
		infoRepo: infoRepo,
		logger:   logger,
	}
}

// List returns listings of shops currently accepting orders
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductInfoResponse, int64, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}
	domainFilter.OnlyOpenShops = true
	return s.list(ctx, domainFilter)
}

// GetByID returns one listing with product, shop and parameters
func (s *ProductService) GetByID(ctx context.Context, id uint64) (*ProductInfoResponse, error) {
	info, err := s.infoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductInfoResponse(info)
	return &resp, nil
}

// ListPartner returns the listings of the actor's shop regardless of its state
func (s *ProductService) ListPartner(ctx context.Context, actor access.Actor, filter ProductListFilter) ([]ProductInfoResponse, int64, error) {
	if !actor.Partner {
		return nil, 0, shared.ErrForbidden.WithMessage("Only shop users have listings")
	}
	if actor.ShopID == 0 {
		return []ProductInfoResponse{}, 0, nil
	}

	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}
	domainFilter.ShopID = actor.ShopID
	domainFilter.ShopName = ""
	return s.list(ctx, domainFilter)
}

// UpdateListing overwrites price, recommended price and stock of a listing
func (s *ProductService) UpdateListing(ctx context.Context, actor access.Actor, id uint64, req UpdateProductInfoRequest) (*ProductInfoResponse, error) {
	var info *catalog.ProductInfo
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		info, err = repos.ProductInfoRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsProductInfoOwnerOrAdmin(actor, info) {
			return shared.ErrForbidden
		}
		listing := catalog.Listing{Price: info.Price, PriceRRC: info.PriceRRC, Quantity: info.Quantity}
		if req.Price != nil {
			listing.Price = *req.Price
		}
		if req.PriceRRC != nil {
			listing.PriceRRC = *req.PriceRRC
		}
		if req.Quantity != nil {
			listing.Quantity = *req.Quantity
		}
		if err := info.UpdateListing(listing); err != nil {
			return err
		}
		return repos.ProductInfoRepo().Update(ctx, info)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Listing updated",
		zap.Uint64("product_info_id", id),
		zap.String("price", info.Price.StringFixed(2)),
		zap.Int("quantity", info.Quantity))
	resp := ToProductInfoResponse(info)
	return &resp, nil
}

// DeleteListing removes a listing of the actor's shop
func (s *ProductService) DeleteListing(ctx context.Context, actor access.Actor, id uint64) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		info, err := repos.ProductInfoRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsProductInfoOwnerOrAdmin(actor, info) {
			return shared.ErrForbidden
		}
		return repos.ProductInfoRepo().Delete(ctx, id)
	})
}

func (s *ProductService) list(ctx context.Context, filter catalog.ProductInfoFilter) ([]ProductInfoResponse, int64, error) {
	infos, total, err := s.infoRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ProductInfoResponse, len(infos))
	for i, info := range infos {
		responses[i] = ToProductInfoResponse(info)
	}
	return responses, total, nil
}

func (f ProductListFilter) toDomain() (catalog.ProductInfoFilter, error) {
	out := catalog.ProductInfoFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			OrderBy:  f.OrderBy,
			OrderDir: f.OrderDir,
		},
		ShopName:    f.Shop,
		ProductName: f.Product,
		CategoryID:  f.CategoryID,
	}

	var details []shared.FieldError
	parse := func(field, raw string) *decimal.Decimal {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			details = append(details, shared.FieldError{Field: field, Message: "Expected a decimal number"})
			return nil
		}
		return &d
	}
	out.PriceMin = parse("price_min", f.PriceMin)
	out.PriceMax = parse("price_max", f.PriceMax)
	if len(details) > 0 {
		return out, shared.ErrValidation.WithDetails(details...)
	}
	return out, nil
}
