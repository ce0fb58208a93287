package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/shopapi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// BasketService implements the basket operations and checkout
type BasketService struct {
	txScope   TransactionScope
	orderRepo trade.OrderRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(
	txScope TransactionScope,
	orderRepo trade.OrderRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *BasketService {
	return &BasketService{
		txScope:   txScope,
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Get returns the actor's basket with per-line sums and the total.
// A user without a basket gets an empty one.
func (s *BasketService) Get(ctx context.Context, actor access.Actor) (*OrderResponse, error) {
	basket, err := s.orderRepo.FindBasket(ctx, actor.UserID)
	if errors.Is(err, trade.ErrBasketNotFound) {
		resp := emptyBasket(actor.UserID)
		return &resp, nil
	}
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(basket)
	return &resp, nil
}

// AddItems puts listings into the actor's basket, creating the basket on
// first use. Either every item is added or none is.
func (s *BasketService) AddItems(ctx context.Context, actor access.Actor, req AddItemsRequest) (*OrderResponse, error) {
	if err := validateQuantities(len(req.Items), func(i int) int { return req.Items[i].Quantity }); err != nil {
		return nil, err
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ids := make([]uint64, len(req.Items))
		for i, item := range req.Items {
			ids[i] = item.ProductInfoID
		}
		infos, err := repos.ProductInfoRepo().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if err := checkListings(req.Items, infos); err != nil {
			return err
		}

		basket, err := basketFor(ctx, repos.OrderRepo(), actor.UserID)
		if err != nil {
			return err
		}

		created := make(map[int]bool)
		changed := make(map[uint64]bool)
		for i, item := range req.Items {
			before := len(basket.Items)
			line, isNew, err := basket.AddItem(item.ProductInfoID, item.Quantity, infos[item.ProductInfoID].Price)
			if err != nil {
				return atItem(err, i)
			}
			switch {
			case isNew:
				created[before] = true
			case line.ID != 0:
				changed[line.ID] = true
			}
		}

		for id := range changed {
			line, _ := basket.FindItem(id)
			if err := repos.OrderRepo().UpdateItemQuantity(ctx, id, line.Quantity); err != nil {
				return err
			}
		}
		lines := make([]*trade.OrderItem, 0, len(created))
		for i := range basket.Items {
			if created[i] {
				lines = append(lines, &basket.Items[i])
			}
		}
		return repos.OrderRepo().CreateItems(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Basket items added", zap.Uint64("user_id", actor.UserID), zap.Int("items", len(req.Items)))
	return s.Get(ctx, actor)
}

// UpdateItems overwrites quantities of lines in the actor's basket.
// An unknown line id fails the whole batch.
func (s *BasketService) UpdateItems(ctx context.Context, actor access.Actor, req UpdateItemsRequest) (*OrderResponse, error) {
	if err := validateQuantities(len(req.Items), func(i int) int { return req.Items[i].Quantity }); err != nil {
		return nil, err
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		basket, err := repos.OrderRepo().FindBasket(ctx, actor.UserID)
		if err != nil {
			return err
		}
		for _, item := range req.Items {
			if _, err := basket.UpdateItemQuantity(item.ID, item.Quantity); err != nil {
				return err
			}
		}
		for _, item := range req.Items {
			line, _ := basket.FindItem(item.ID)
			if err := repos.OrderRepo().UpdateItemQuantity(ctx, item.ID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, actor)
}

// Remove deletes the actor's basket and its lines
func (s *BasketService) Remove(ctx context.Context, actor access.Actor) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		basket, err := repos.OrderRepo().FindBasket(ctx, actor.UserID)
		if err != nil {
			return err
		}
		return repos.OrderRepo().Delete(ctx, basket.ID)
	})
}

// Checkout places the basket: it moves to state new with the contact bound.
// The contact must belong to the actor and the order must be the actor's
// basket. Of two concurrent checkouts of one basket exactly one succeeds;
// the other gets ErrBasketNotFound. OrderCheckedOut is published only after
// the transaction commits.
func (s *BasketService) Checkout(ctx context.Context, actor access.Actor, req CheckoutRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "basket", "checkout",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, req.ID),
		telemetry.WithAttribute(telemetry.SpanAttrUserID, actor.UserID),
	)
	defer span.End()

	if req.ID == 0 {
		return nil, shared.NewValidationError("id", "Basket id is required")
	}
	if req.ContactID == 0 {
		return nil, shared.NewValidationError("contact", "Contact is required")
	}

	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		contact, err := repos.ContactRepo().FindByID(ctx, req.ContactID)
		if err != nil {
			return err
		}
		if contact.UserID != actor.UserID {
			return identity.ErrContactNotFound
		}

		order, err = repos.OrderRepo().FindByID(ctx, req.ID)
		switch {
		case errors.Is(err, trade.ErrOrderNotFound):
			return trade.ErrBasketNotFound
		case err != nil:
			return err
		case order.UserID != actor.UserID || !order.IsBasket():
			return trade.ErrBasketNotFound
		}

		if err := order.Checkout(contact.ID); err != nil {
			return err
		}
		return repos.OrderRepo().MarkCheckedOut(ctx, order.ID, actor.UserID, contact.ID)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrItems, len(order.Items))
	telemetry.SetOK(span)

	s.logger.Info("Order placed",
		zap.Uint64("order_id", order.ID),
		zap.Uint64("user_id", actor.UserID),
		zap.String("total", order.Total().StringFixed(2)))

	publishEvents(ctx, s.publisher, s.logger, order)
	resp := ToOrderResponse(order)
	return &resp, nil
}

// basketFor returns the user's basket, creating it when absent. A basket
// created concurrently by another request is picked up instead.
func basketFor(ctx context.Context, repo trade.OrderRepository, userID uint64) (*trade.Order, error) {
	basket, err := repo.FindBasket(ctx, userID)
	if err == nil || !errors.Is(err, trade.ErrBasketNotFound) {
		return basket, err
	}

	basket, err = trade.NewBasket(userID)
	if err != nil {
		return nil, err
	}
	err = repo.Create(ctx, basket)
	if errors.Is(err, trade.ErrBasketExists) {
		return repo.FindBasket(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return basket, nil
}

// checkListings verifies every requested listing exists and its shop accepts orders.
// An unknown listing is bad input for the basket, not a missing basket resource.
func checkListings(items []BasketItemRequest, infos map[uint64]*catalog.ProductInfo) error {
	var missing, closed []shared.FieldError
	for i, item := range items {
		field := fmt.Sprintf("items[%d].product_info", i)
		info, ok := infos[item.ProductInfoID]
		switch {
		case !ok:
			missing = append(missing, shared.FieldError{
				Field:   field,
				Message: fmt.Sprintf("Product info %d does not exist", item.ProductInfoID),
			})
		case info.Shop != nil && !info.Shop.AcceptsOrders():
			closed = append(closed, shared.FieldError{
				Field:   field,
				Message: fmt.Sprintf("Shop %s is not accepting orders", info.Shop.Name),
			})
		}
	}
	if len(missing) > 0 {
		return shared.ErrValidation.WithDetails(missing...)
	}
	if len(closed) > 0 {
		return catalog.ErrShopClosed.WithDetails(closed...)
	}
	return nil
}

// validateQuantities checks every quantity of a batch before anything is read
func validateQuantities(n int, quantity func(i int) int) error {
	var details []shared.FieldError
	for i := 0; i < n; i++ {
		if err := trade.ValidateQuantity(quantity(i)); err != nil {
			details = append(details, shared.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: fmt.Sprintf("Quantity must be between %d and %d", trade.MinItemQuantity, trade.MaxItemQuantity),
			})
		}
	}
	if len(details) > 0 {
		return trade.ErrInvalidQuantity.WithDetails(details...)
	}
	return nil
}

// atItem prefixes the field names of err's details with the item position
func atItem(err error, i int) error {
	var de *shared.DomainError
	if !errors.As(err, &de) || len(de.Details) == 0 {
		return err
	}
	details := make([]shared.FieldError, len(de.Details))
	for j, d := range de.Details {
		details[j] = shared.FieldError{Field: fmt.Sprintf("items[%d].%s", i, d.Field), Message: d.Message}
	}
	return (&shared.DomainError{Code: de.Code, Message: de.Message}).WithDetails(details...)
}

// publishEvents publishes the order's pending events and clears them.
// Publish failures are logged; the state change has already committed.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, order *trade.Order) {
	events := order.GetDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Error("Failed to publish order events",
			zap.Uint64("order_id", order.ID),
			zap.Error(err))
	}
	order.ClearDomainEvents()
}
