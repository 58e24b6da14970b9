package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/events"
	"github.com/denizgunduz/pazar/internal/pricing"
)

func orderFixture(t *testing.T, status string) (*fakeStore, *domain.Order) {
	t.Helper()
	store := newFakeStore()
	store.order = &domain.Order{
		ID:            mustUUID("99999999-9999-9999-9999-999999999999"),
		UserID:        testUUID(t, testUserID),
		OrderCode:     "ORD-20260831-0042",
		Status:        status,
		PaymentMethod: pricing.PaymentTransfer,
		PaymentStatus: domain.PaymentStatusPending,
		TotalAmount:   201.90,
	}
	store.orderItems = []domain.OrderItem{
		{
			OrderID:   store.order.ID,
			ProductID: testUUID(t, testProductID),
			Quantity:  2,
			Price:     100,
		},
	}
	return store, store.order
}

func newOrders(store *fakeStore) domain.OrderService {
	return NewOrderService(store, events.NewNoopPublisher(), testLogger())
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	store, order := orderFixture(t, domain.OrderStatusPaymentPending)
	svc := newOrders(store)

	cancelled, err := svc.CancelOrder(context.Background(), testUserID, uuidString(order.ID))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, int32(2), store.incremented[testUUID(t, testProductID)])
}

func TestCancelOrder_RefundsReceivedPayment(t *testing.T) {
	store, order := orderFixture(t, domain.OrderStatusProcessing)
	store.order.PaymentStatus = domain.PaymentStatusReceived
	svc := newOrders(store)

	cancelled, err := svc.CancelOrder(context.Background(), testUserID, uuidString(order.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, cancelled.PaymentStatus)
}

func TestCancelOrder_RejectedAfterShipping(t *testing.T) {
	store, order := orderFixture(t, domain.OrderStatusShipped)
	svc := newOrders(store)

	_, err := svc.CancelOrder(context.Background(), testUserID, uuidString(order.ID))
	assert.ErrorIs(t, err, domain.ErrOrderNotCancellable)
	assert.Empty(t, store.incremented)
}

func TestCancelOrder_LosesRaceToConcurrentTransition(t *testing.T) {
	store, order := orderFixture(t, domain.OrderStatusPaymentPending)
	// The order moves to PROCESSING after the cancel reads it.
	store.statusDrift = domain.OrderStatusProcessing
	svc := newOrders(store)

	_, err := svc.CancelOrder(context.Background(), testUserID, uuidString(order.ID))
	assert.ErrorIs(t, err, domain.ErrOrderStatusConflict)

	// The losing cancel must not write or restock.
	assert.Equal(t, domain.OrderStatusProcessing, store.order.Status)
	assert.Empty(t, store.incremented)
}

func TestGetUserOrder_ScopedToOwner(t *testing.T) {
	store, order := orderFixture(t, domain.OrderStatusProcessing)
	svc := newOrders(store)

	_, err := svc.GetUserOrder(context.Background(), "66666666-6666-6666-6666-666666666666", uuidString(order.ID))
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"payment received", domain.OrderStatusPaymentPending, domain.OrderStatusProcessing, true},
		{"ship processing order", domain.OrderStatusProcessing, domain.OrderStatusShipped, true},
		{"deliver shipped order", domain.OrderStatusShipped, domain.OrderStatusDelivered, true},
		{"approve return", domain.OrderStatusReturnRequested, domain.OrderStatusReturnApproved, true},
		{"complete return", domain.OrderStatusReturnApproved, domain.OrderStatusReturned, true},
		{"reject return request", domain.OrderStatusReturnRequested, domain.OrderStatusDelivered, true},
		{"skip straight to delivered", domain.OrderStatusPaymentPending, domain.OrderStatusDelivered, false},
		{"revive cancelled order", domain.OrderStatusCancelled, domain.OrderStatusProcessing, false},
		{"return before delivery", domain.OrderStatusShipped, domain.OrderStatusReturnRequested, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, order := orderFixture(t, tt.from)
			svc := newOrders(store)

			updated, err := svc.UpdateOrderStatus(context.Background(), uuidString(order.ID), domain.OrderStatusUpdate{Status: tt.to})
			if !tt.allowed {
				assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestUpdateOrderStatus_ConcurrentTransitionConflicts(t *testing.T) {
	store, order := orderFixture(t, domain.OrderStatusProcessing)
	// A customer cancel lands between the admin's read and write.
	store.statusDrift = domain.OrderStatusCancelled
	svc := newOrders(store)

	_, err := svc.UpdateOrderStatus(context.Background(), uuidString(order.ID), domain.OrderStatusUpdate{Status: domain.OrderStatusShipped})
	assert.ErrorIs(t, err, domain.ErrOrderStatusConflict)
	assert.Equal(t, domain.OrderStatusCancelled, store.order.Status)
}

func TestUpdateOrderStatus_ReturnedRestoresStock(t *testing.T) {
	store, order := orderFixture(t, domain.OrderStatusReturnApproved)
	svc := newOrders(store)

	_, err := svc.UpdateOrderStatus(context.Background(), uuidString(order.ID), domain.OrderStatusUpdate{Status: domain.OrderStatusReturned})
	require.NoError(t, err)
	assert.Equal(t, int32(2), store.incremented[testUUID(t, testProductID)])
}

func TestUpdateOrderStatus_TrackingOnly(t *testing.T) {
	store, order := orderFixture(t, domain.OrderStatusShipped)
	svc := newOrders(store)

	updated, err := svc.UpdateOrderStatus(context.Background(), uuidString(order.ID), domain.OrderStatusUpdate{TrackingNumber: "TRK123456"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	assert.Equal(t, "TRK123456", updated.TrackingNumber)
	assert.Empty(t, store.incremented)
}
