package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/events"
	"github.com/denizgunduz/pazar/internal/repository"
	"github.com/denizgunduz/pazar/internal/telemetry"
)

// validTransitions maps each order status to the statuses it may move to.
// CANCELLED and RETURNED are terminal.
var validTransitions = map[string][]string{
	domain.OrderStatusPaymentPending:  {domain.OrderStatusProcessing, domain.OrderStatusCancelled},
	domain.OrderStatusProcessing:      {domain.OrderStatusShipped, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:         {domain.OrderStatusDelivered},
	domain.OrderStatusDelivered:       {domain.OrderStatusReturnRequested},
	domain.OrderStatusReturnRequested: {domain.OrderStatusReturnApproved, domain.OrderStatusDelivered},
	domain.OrderStatusReturnApproved:  {domain.OrderStatusReturned},
}

func transitionAllowed(from, to string) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// restocks reports whether entering the status returns reserved stock to
// the catalog.
func restocks(status string) bool {
	return status == domain.OrderStatusCancelled || status == domain.OrderStatusReturned
}

type orderService struct {
	store  checkoutStore
	events events.Publisher
	logger *slog.Logger
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(store checkoutStore, publisher events.Publisher, logger *slog.Logger) domain.OrderService {
	return &orderService{store: store, events: publisher, logger: logger}
}

func (s *orderService) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListOrdersByUser(ctx, uid)
}

func (s *orderService) GetUserOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	order, err := s.getWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Scoped lookup: another user's order is indistinguishable from a
	// missing one.
	if order.UserID != uid {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// CancelOrder cancels one of the user's own orders while it has not shipped.
// Stock reserved by the order is returned.
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPaymentPending && order.Status != domain.OrderStatusProcessing {
		return nil, domain.ErrOrderNotCancellable
	}

	// Guarded against a concurrent transition (e.g. the order shipping while
	// the request is in flight): losing the race must not restock.
	update := domain.OrderStatusUpdate{
		Status:       domain.OrderStatusCancelled,
		ExpectStatus: order.Status,
	}
	if order.PaymentStatus == domain.PaymentStatusReceived {
		update.PaymentStatus = domain.PaymentStatusRefunded
	}

	prev := order.Status
	var cancelled *domain.Order
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		var txErr error
		cancelled, txErr = q.UpdateOrderStatus(ctx, order.ID, update)
		if txErr != nil {
			return txErr
		}
		return restoreStock(ctx, q, order.Items)
	})
	if err != nil {
		return nil, err
	}

	cancelled.Items = order.Items
	s.publish(events.SubjectOrderStatusChanged, cancelled, prev)
	telemetry.RecordStatusChange(cancelled.Status)
	telemetry.RecordCancellation("customer")
	return cancelled, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.store.ListOrders(ctx, filter)
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.getWithItems(ctx, orderID)
}

// UpdateOrderStatus applies an admin transition. Moving into CANCELLED or
// RETURNED restores the order's stock.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, update domain.OrderStatusUpdate) (*domain.Order, error) {
	order, err := s.getWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if update.Status != "" && update.Status != order.Status {
		if !transitionAllowed(order.Status, update.Status) {
			return nil, domain.ErrInvalidStatusChange
		}
	} else {
		update.Status = order.Status
	}

	prev := order.Status
	// The transition was checked against prev; the write only applies while
	// prev still holds, so racing updates cannot sneak past transitionAllowed
	// or restock twice.
	update.ExpectStatus = prev
	var updated *domain.Order
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		var txErr error
		updated, txErr = q.UpdateOrderStatus(ctx, order.ID, update)
		if txErr != nil {
			return txErr
		}
		if restocks(update.Status) && !restocks(prev) {
			return restoreStock(ctx, q, order.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated.Items = order.Items
	if updated.Status != prev {
		s.publish(events.SubjectOrderStatusChanged, updated, prev)
		telemetry.RecordStatusChange(updated.Status)
		if updated.Status == domain.OrderStatusCancelled {
			telemetry.RecordCancellation("admin")
		}
	}
	return updated, nil
}

func (s *orderService) getWithItems(ctx context.Context, orderID string) (*domain.Order, error) {
	id, err := parseUUID(orderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.store.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func restoreStock(ctx context.Context, q repository.Querier, items []domain.OrderItem) error {
	for _, it := range items {
		if err := q.IncrementProductStock(ctx, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) publish(subject string, order *domain.Order, prevStatus string) {
	err := s.events.Publish(subject, events.OrderEvent{
		OrderID:    uuidString(order.ID),
		OrderCode:  order.OrderCode,
		UserID:     uuidString(order.UserID),
		Status:     order.Status,
		PrevStatus: prevStatus,
		Total:      order.TotalAmount,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to publish order event",
			slog.String("subject", subject),
			slog.String("order_code", order.OrderCode),
			slog.String("error", err.Error()))
	}
}
