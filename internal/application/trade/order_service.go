package trade

import (
	"context"

	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/shopapi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService serves placed orders to buyers and partners
type OrderService struct {
	txScope   TransactionScope
	orderRepo trade.OrderRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo trade.OrderRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		txScope:   txScope,
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns the actor's placed orders
func (s *OrderService) List(ctx context.Context, actor access.Actor, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := filter.toDomain()
	domainFilter.UserID = actor.UserID
	return s.list(ctx, domainFilter)
}

// ListPartner returns placed orders containing listings of the actor's shop
func (s *OrderService) ListPartner(ctx context.Context, actor access.Actor, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if !actor.Partner {
		return nil, 0, shared.ErrForbidden.WithMessage("Only shop users receive orders")
	}
	if actor.ShopID == 0 {
		return []OrderResponse{}, 0, nil
	}
	domainFilter := filter.toDomain()
	domainFilter.ShopID = actor.ShopID
	return s.list(ctx, domainFilter)
}

// GetByID returns a placed order visible to the actor: its buyer, a partner
// with listings in it, or staff. Baskets and foreign orders read as not found.
func (s *OrderService) GetByID(ctx context.Context, actor access.Actor, id uint64) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsBasket() {
		return nil, trade.ErrOrderNotFound
	}
	if !access.IsOrderOwnerOrAdmin(actor, order) && !access.IsOrderPartnerOrAdmin(actor, order) {
		return nil, trade.ErrOrderNotFound
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// ChangeState advances a placed order through its lifecycle. Only a partner
// whose shop has items in the order, or staff, may do so.
func (s *OrderService) ChangeState(ctx context.Context, actor access.Actor, id uint64, req UpdateOrderStateRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "change_state",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, id),
		telemetry.WithAttribute(telemetry.SpanAttrState, req.State),
	)
	defer span.End()
	target := trade.OrderState(req.State)

	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if order.IsBasket() {
			return trade.ErrOrderNotFound
		}
		if !access.IsOrderPartnerOrAdmin(actor, order) {
			return shared.ErrForbidden
		}
		from := order.State
		if err := order.TransitionTo(target); err != nil {
			return err
		}
		return repos.OrderRepo().UpdateState(ctx, order.ID, from, target)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetOK(span)

	s.logger.Info("Order state changed",
		zap.Uint64("order_id", id),
		zap.String("state", target.String()),
		zap.Uint64("user_id", actor.UserID))

	publishEvents(ctx, s.publisher, s.logger, order)
	resp := ToOrderResponse(order)
	return &resp, nil
}

func (s *OrderService) list(ctx context.Context, filter trade.OrderFilter) ([]OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.FindPlaced(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses, total, nil
}

func (f OrderListFilter) toDomain() trade.OrderFilter {
	return trade.OrderFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			OrderBy:  f.OrderBy,
			OrderDir: f.OrderDir,
		},
		State: trade.OrderState(f.State),
	}
}
