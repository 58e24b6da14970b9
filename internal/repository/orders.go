package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
)

const orderColumns = `id, user_id, order_code, status, payment_method, payment_status,
	subtotal, shipping_cost, discount_amount, total_amount,
	shipping_name, shipping_phone, shipping_city, shipping_address,
	coupon_code, tracking_number, notes, admin_notes,
	created_at, updated_at, paid_at, shipped_at, delivered_at, cancelled_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.UserID, &o.OrderCode, &o.Status, &o.PaymentMethod, &o.PaymentStatus,
		&o.Subtotal, &o.ShippingCost, &o.DiscountAmount, &o.TotalAmount,
		&o.ShippingAddr.FullName, &o.ShippingAddr.Phone, &o.ShippingAddr.City, &o.ShippingAddr.Address,
		&o.CouponCode, &o.TrackingNumber, &o.Notes, &o.AdminNotes,
		&o.CreatedAt, &o.UpdatedAt, &o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CancelledAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (q *Queries) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	o, err := scanOrder(q.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_code, status, payment_method, payment_status,
			subtotal, shipping_cost, discount_amount, total_amount,
			shipping_name, shipping_phone, shipping_city, shipping_address,
			coupon_code, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+orderColumns,
		order.UserID, order.OrderCode, order.Status, order.PaymentMethod, order.PaymentStatus,
		order.Subtotal, order.ShippingCost, order.DiscountAmount, order.TotalAmount,
		order.ShippingAddr.FullName, order.ShippingAddr.Phone, order.ShippingAddr.City, order.ShippingAddr.Address,
		order.CouponCode, order.Notes))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateOrder
		}
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

func (q *Queries) CreateOrderItem(ctx context.Context, item *domain.OrderItem) error {
	if _, err := q.db.Exec(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, price, discount_price, product_name, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.OrderID, item.ProductID, item.Quantity, item.Price, item.DiscountPrice, item.ProductName, item.ImageURL); err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

func (q *Queries) GetOrderByID(ctx context.Context, id pgtype.UUID) (*domain.Order, error) {
	o, err := scanOrder(q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetOrderByCode looks an order up by its client-generated code, scoped to the
// user. Order submission uses this as its idempotency check.
func (q *Queries) GetOrderByCode(ctx context.Context, userID pgtype.UUID, code string) (*domain.Order, error) {
	o, err := scanOrder(q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 AND order_code = $2`, userID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by code: %w", err)
	}
	return o, nil
}

func (q *Queries) ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]domain.OrderItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price, discount_price, product_name, image_url, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.DiscountPrice,
			&it.ProductName, &it.ImageURL, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (q *Queries) ListOrdersByUser(ctx context.Context, userID pgtype.UUID) ([]domain.Order, error) {
	return q.listOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (q *Queries) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		sql += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	sql += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return q.listOrders(ctx, sql, args...)
}

func (q *Queries) listOrders(ctx context.Context, sql string, args ...interface{}) ([]domain.Order, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderCode, &o.Status, &o.PaymentMethod, &o.PaymentStatus,
			&o.Subtotal, &o.ShippingCost, &o.DiscountAmount, &o.TotalAmount,
			&o.ShippingAddr.FullName, &o.ShippingAddr.Phone, &o.ShippingAddr.City, &o.ShippingAddr.Address,
			&o.CouponCode, &o.TrackingNumber, &o.Notes, &o.AdminNotes,
			&o.CreatedAt, &o.UpdatedAt, &o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CancelledAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus writes the new status plus whichever lifecycle timestamp
// the status implies. Empty update fields leave the stored values untouched.
// With ExpectStatus set the write is a compare-and-swap: zero rows means the
// status moved under us (callers look the order up first, so the id exists)
// and the caller gets ErrOrderStatusConflict.
func (q *Queries) UpdateOrderStatus(ctx context.Context, id pgtype.UUID, update domain.OrderStatusUpdate) (*domain.Order, error) {
	o, err := scanOrder(q.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $2,
			payment_status = COALESCE(NULLIF($3, ''), payment_status),
			tracking_number = COALESCE(NULLIF($4, ''), tracking_number),
			admin_notes = COALESCE(NULLIF($5, ''), admin_notes),
			paid_at = CASE WHEN $3 = 'received' AND paid_at IS NULL THEN now() ELSE paid_at END,
			shipped_at = CASE WHEN $2 = 'SHIPPED' AND shipped_at IS NULL THEN now() ELSE shipped_at END,
			delivered_at = CASE WHEN $2 = 'DELIVERED' AND delivered_at IS NULL THEN now() ELSE delivered_at END,
			cancelled_at = CASE WHEN $2 = 'CANCELLED' AND cancelled_at IS NULL THEN now() ELSE cancelled_at END,
			updated_at = now()
		WHERE id = $1 AND ($6 = '' OR status = $6)
		RETURNING `+orderColumns,
		id, update.Status, update.PaymentStatus, update.TrackingNumber, update.AdminNotes, update.ExpectStatus))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if update.ExpectStatus != "" {
				return nil, domain.ErrOrderStatusConflict
			}
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

// ListStaleTransferOrders returns bank transfer orders still awaiting payment
// that were created before the cutoff. The background sweeper cancels these.
func (q *Queries) ListStaleTransferOrders(ctx context.Context, olderThan pgtype.Timestamptz) ([]domain.Order, error) {
	return q.listOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE status = 'PAYMENT_PENDING' AND payment_method = 'bank_transfer' AND created_at < $1
		ORDER BY created_at`, olderThan)
}
