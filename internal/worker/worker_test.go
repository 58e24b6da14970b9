package worker

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/events"
	"github.com/denizgunduz/pazar/internal/repository"
)

const (
	staleOrderID  = "6dd47167-2627-43e5-83a8-5ba8ba35c9fc"
	staleMugID    = "7d9f4e2a-9c1b-4f6e-8a3d-2b5c6d7e8f90"
	staleOrderUID = "b3c5b8d1-67b8-4b1c-9e04-1f2a3b4c5d6e"
)

func mustUUID(t *testing.T, s string) pgtype.UUID {
	t.Helper()
	var u pgtype.UUID
	require.NoError(t, u.Scan(s))
	return u
}

// fakeSweepStore implements the store slice the sweeps touch. Everything
// else panics through the embedded nil Querier.
type fakeSweepStore struct {
	repository.Querier

	stale       []domain.Order
	current     map[string]string
	items       map[string][]domain.OrderItem
	incremented map[string]int32
	updated     map[string]domain.OrderStatusUpdate
	sessions    int64
}

func (f *fakeSweepStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	return fn(f)
}

func (f *fakeSweepStore) ListStaleTransferOrders(ctx context.Context, olderThan pgtype.Timestamptz) ([]domain.Order, error) {
	return f.stale, nil
}

func (f *fakeSweepStore) ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]domain.OrderItem, error) {
	v, _ := orderID.Value()
	id, _ := v.(string)
	return f.items[id], nil
}

func (f *fakeSweepStore) IncrementProductStock(ctx context.Context, id pgtype.UUID, quantity int32) error {
	v, _ := id.Value()
	pid, _ := v.(string)
	if f.incremented == nil {
		f.incremented = make(map[string]int32)
	}
	f.incremented[pid] += quantity
	return nil
}

func (f *fakeSweepStore) UpdateOrderStatus(ctx context.Context, id pgtype.UUID, update domain.OrderStatusUpdate) (*domain.Order, error) {
	v, _ := id.Value()
	oid, _ := v.(string)
	if update.ExpectStatus != "" {
		if cur, ok := f.current[oid]; ok && cur != update.ExpectStatus {
			return nil, domain.ErrOrderStatusConflict
		}
	}
	if f.updated == nil {
		f.updated = make(map[string]domain.OrderStatusUpdate)
	}
	f.updated[oid] = update
	return &domain.Order{ID: id, Status: update.Status}, nil
}

func (f *fakeSweepStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return f.sessions, nil
}

type capturingPublisher struct {
	published []events.OrderEvent
}

func (p *capturingPublisher) Publish(subject string, event events.OrderEvent) error {
	p.published = append(p.published, event)
	return nil
}

func (p *capturingPublisher) Close() {}

func testWorker(store *fakeSweepStore, pub events.Publisher) *Worker {
	return &Worker{
		config: Config{SweepInterval: time.Minute, TransferPaymentTTL: time.Hour},
		store:  store,
		events: pub,
		logger: slog.New(slog.DiscardHandler),
	}
}

func TestCancelStaleTransferOrders(t *testing.T) {
	ctx := context.Background()

	store := &fakeSweepStore{
		stale: []domain.Order{{
			ID:          mustUUID(t, staleOrderID),
			UserID:      mustUUID(t, staleOrderUID),
			OrderCode:   "ORD-1001",
			Status:      domain.OrderStatusPaymentPending,
			TotalAmount: 209.90,
		}},
		items: map[string][]domain.OrderItem{
			staleOrderID: {{ProductID: mustUUID(t, staleMugID), Quantity: 2}},
		},
	}
	pub := &capturingPublisher{}
	w := testWorker(store, pub)

	n, err := w.cancelStaleTransferOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Stock released and the order cancelled, guarded on PAYMENT_PENDING
	assert.Equal(t, int32(2), store.incremented[staleMugID])
	require.Contains(t, store.updated, staleOrderID)
	assert.Equal(t, domain.OrderStatusCancelled, store.updated[staleOrderID].Status)
	assert.Equal(t, domain.OrderStatusPaymentPending, store.updated[staleOrderID].ExpectStatus)

	// Status change published
	require.Len(t, pub.published, 1)
	assert.Equal(t, "ORD-1001", pub.published[0].OrderCode)
	assert.Equal(t, domain.OrderStatusCancelled, pub.published[0].Status)
	assert.Equal(t, domain.OrderStatusPaymentPending, pub.published[0].PrevStatus)
}

func TestCancelStaleTransferOrders_SkipsOrderPaidMidSweep(t *testing.T) {
	ctx := context.Background()

	// The admin confirms the bank transfer between the stale listing and the
	// cancel. The guarded write must leave the order and its stock alone.
	store := &fakeSweepStore{
		stale: []domain.Order{{
			ID:        mustUUID(t, staleOrderID),
			UserID:    mustUUID(t, staleOrderUID),
			OrderCode: "ORD-1002",
			Status:    domain.OrderStatusPaymentPending,
		}},
		current: map[string]string{staleOrderID: domain.OrderStatusProcessing},
		items: map[string][]domain.OrderItem{
			staleOrderID: {{ProductID: mustUUID(t, staleMugID), Quantity: 3}},
		},
	}
	pub := &capturingPublisher{}
	w := testWorker(store, pub)

	n, err := w.cancelStaleTransferOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Empty(t, store.incremented)
	assert.NotContains(t, store.updated, staleOrderID)
	assert.Empty(t, pub.published)
}

func TestCancelStaleTransferOrders_NoneStale(t *testing.T) {
	store := &fakeSweepStore{}
	pub := &capturingPublisher{}
	w := testWorker(store, pub)

	n, err := w.cancelStaleTransferOrders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, pub.published)
}
