// Package worker runs the periodic maintenance sweeps: cancelling bank
// transfer orders whose payment never arrived and pruning expired sessions.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/events"
	"github.com/denizgunduz/pazar/internal/repository"
	"github.com/denizgunduz/pazar/internal/telemetry"
)

// store is the slice of the repository the sweeps need, including the
// transactional wrapper so cancel-and-restock stays atomic.
type store interface {
	repository.Querier
	ExecTx(ctx context.Context, fn func(repository.Querier) error) error
}

// Config holds worker configuration.
type Config struct {
	// SweepInterval is how often the sweeps run.
	SweepInterval time.Duration

	// TransferPaymentTTL is how long a bank transfer order may sit in
	// PAYMENT_PENDING before it is cancelled and its stock released.
	TransferPaymentTTL time.Duration
}

// Worker runs the maintenance sweeps until its context is cancelled.
type Worker struct {
	config Config
	store  store
	events events.Publisher
	logger *slog.Logger
}

func NewWorker(store *repository.Store, publisher events.Publisher, config Config, logger *slog.Logger) *Worker {
	if config.SweepInterval == 0 {
		config.SweepInterval = 10 * time.Minute
	}
	if config.TransferPaymentTTL == 0 {
		config.TransferPaymentTTL = 72 * time.Hour
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		config: config,
		store:  store,
		events: publisher,
		logger: logger,
	}
}

// Start blocks, running a sweep every interval, until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"sweep_interval", w.config.SweepInterval,
		"transfer_payment_ttl", w.config.TransferPaymentTTL,
	)

	ticker := time.NewTicker(w.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	var staleOrders, sessions int64

	if n, err := w.cancelStaleTransferOrders(ctx); err != nil {
		w.logger.Error("stale order sweep failed", "error", err)
	} else if n > 0 {
		staleOrders = int64(n)
		w.logger.Info("cancelled stale transfer orders", "count", n)
	}

	if n, err := w.store.DeleteExpiredSessions(ctx); err != nil {
		w.logger.Error("session sweep failed", "error", err)
	} else if n > 0 {
		sessions = n
		w.logger.Info("pruned expired sessions", "count", n)
	}

	telemetry.RecordSweep(staleOrders, sessions)
}

// cancelStaleTransferOrders cancels every bank transfer order that has been
// awaiting payment longer than the TTL. Each order is cancelled in its own
// transaction so one failure does not block the rest of the batch.
func (w *Worker) cancelStaleTransferOrders(ctx context.Context) (int, error) {
	var cutoff pgtype.Timestamptz
	if err := cutoff.Scan(time.Now().Add(-w.config.TransferPaymentTTL)); err != nil {
		return 0, err
	}

	stale, err := w.store.ListStaleTransferOrders(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for i := range stale {
		order := &stale[i]
		if err := w.cancelOrder(ctx, order); err != nil {
			// Payment confirmed between the listing and the cancel: the
			// order is no longer ours to touch.
			if errors.Is(err, domain.ErrOrderStatusConflict) {
				w.logger.Info("skipping stale order, status changed mid-sweep",
					"order_code", order.OrderCode,
				)
				continue
			}
			w.logger.Error("failed to cancel stale order",
				"order_code", order.OrderCode,
				"error", err,
			)
			continue
		}
		cancelled++
		w.publish(order)
		telemetry.RecordStatusChange(domain.OrderStatusCancelled)
		telemetry.RecordCancellation("sweep")
	}
	return cancelled, nil
}

func (w *Worker) cancelOrder(ctx context.Context, order *domain.Order) error {
	return w.store.ExecTx(ctx, func(q repository.Querier) error {
		// Compare-and-swap first: the order must still be awaiting payment
		// when the cancel lands, otherwise nothing is restocked.
		if _, err := q.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusUpdate{
			Status:       domain.OrderStatusCancelled,
			ExpectStatus: domain.OrderStatusPaymentPending,
			AdminNotes:   "Cancelled automatically: bank transfer payment not received",
		}); err != nil {
			return err
		}
		items, err := q.ListOrderItems(ctx, order.ID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := q.IncrementProductStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Worker) publish(order *domain.Order) {
	uidValue, _ := order.UserID.Value()
	oidValue, _ := order.ID.Value()
	uid, _ := uidValue.(string)
	oid, _ := oidValue.(string)

	err := w.events.Publish(events.SubjectOrderStatusChanged, events.OrderEvent{
		OrderID:    oid,
		OrderCode:  order.OrderCode,
		UserID:     uid,
		Status:     domain.OrderStatusCancelled,
		PrevStatus: domain.OrderStatusPaymentPending,
		Total:      order.TotalAmount,
		OccurredAt: time.Now(),
	})
	if err != nil {
		w.logger.Warn("failed to publish order event",
			"order_code", order.OrderCode,
			"error", err,
		)
	}
}
