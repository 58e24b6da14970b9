package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/events"
	"github.com/denizgunduz/pazar/internal/pricing"
	"github.com/denizgunduz/pazar/internal/repository"
)

// ============================================================================
// Fakes
// ============================================================================

func testUUID(t *testing.T, s string) pgtype.UUID {
	t.Helper()
	var u pgtype.UUID
	require.NoError(t, u.Scan(s))
	return u
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore implements the slice of checkoutStore the tests exercise.
// Unimplemented Querier methods panic via the embedded nil interface.
type fakeStore struct {
	repository.Querier

	cartItems  []domain.CartItem
	product    *domain.Product
	coupon     *domain.Coupon
	order      *domain.Order
	orderItems []domain.OrderItem

	// statusDrift, when set, flips the stored order to this status right
	// after the next read, simulating a concurrent transition landing
	// between a service's lookup and its guarded write.
	statusDrift string

	decremented map[pgtype.UUID]int32
	incremented map[pgtype.UUID]int32
	cartCleared bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		decremented: make(map[pgtype.UUID]int32),
		incremented: make(map[pgtype.UUID]int32),
	}
}

func (f *fakeStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	return fn(f)
}

func (f *fakeStore) ListCartItems(ctx context.Context, userID pgtype.UUID) ([]domain.CartItem, error) {
	return f.cartItems, nil
}

func (f *fakeStore) GetOrderByCode(ctx context.Context, userID pgtype.UUID, code string) (*domain.Order, error) {
	if f.order != nil && f.order.OrderCode == code {
		return f.order, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id pgtype.UUID) (*domain.Order, error) {
	if f.order != nil && f.order.ID == id {
		cp := *f.order
		if f.statusDrift != "" {
			f.order.Status = f.statusDrift
			f.statusDrift = ""
		}
		return &cp, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	cp := *order
	cp.ID = mustUUID("99999999-9999-9999-9999-999999999999")
	f.order = &cp
	return &cp, nil
}

func (f *fakeStore) CreateOrderItem(ctx context.Context, item *domain.OrderItem) error {
	f.orderItems = append(f.orderItems, *item)
	return nil
}

func (f *fakeStore) ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]domain.OrderItem, error) {
	return f.orderItems, nil
}

func (f *fakeStore) DecrementProductStock(ctx context.Context, id pgtype.UUID, quantity int32) error {
	f.decremented[id] += quantity
	return nil
}

func (f *fakeStore) IncrementProductStock(ctx context.Context, id pgtype.UUID, quantity int32) error {
	f.incremented[id] += quantity
	return nil
}

func (f *fakeStore) ClearCart(ctx context.Context, userID pgtype.UUID) error {
	f.cartCleared = true
	return nil
}

func (f *fakeStore) UpdateOrderStatus(ctx context.Context, id pgtype.UUID, update domain.OrderStatusUpdate) (*domain.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, domain.ErrOrderNotFound
	}
	if update.ExpectStatus != "" && f.order.Status != update.ExpectStatus {
		return nil, domain.ErrOrderStatusConflict
	}
	f.order.Status = update.Status
	if update.PaymentStatus != "" {
		f.order.PaymentStatus = update.PaymentStatus
	}
	if update.TrackingNumber != "" {
		f.order.TrackingNumber = update.TrackingNumber
	}
	cp := *f.order
	return &cp, nil
}

func mustUUID(s string) pgtype.UUID {
	var u pgtype.UUID
	if err := u.Scan(s); err != nil {
		panic(err)
	}
	return u
}

// fakeSettings returns a fixed site configuration.
type fakeSettings struct {
	cfg domain.SiteConfig
}

func (f *fakeSettings) GetSiteConfig(ctx context.Context) (*domain.SiteConfig, error) {
	cfg := f.cfg
	return &cfg, nil
}

func (f *fakeSettings) GetRaw(ctx context.Context) (map[string]string, error) {
	return nil, nil
}

func (f *fakeSettings) UpdateSettings(ctx context.Context, values map[string]string) error {
	return nil
}

// fakeCoupons resolves a single known coupon.
type fakeCoupons struct {
	coupon *domain.Coupon
}

func (f *fakeCoupons) ListActiveCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return nil, nil
}

func (f *fakeCoupons) ValidateCode(ctx context.Context, code string, productsSubtotal float64) (*domain.Coupon, error) {
	if f.coupon == nil || f.coupon.Code != code {
		return nil, domain.ErrCouponNotFound
	}
	if f.coupon.MinSpend > 0 && productsSubtotal < f.coupon.MinSpend {
		return nil, domain.ErrCouponMinSpend
	}
	return f.coupon, nil
}

func (f *fakeCoupons) ListAllCoupons(ctx context.Context) ([]domain.Coupon, error) { return nil, nil }
func (f *fakeCoupons) CreateCoupon(ctx context.Context, input domain.CouponInput) (*domain.Coupon, error) {
	return nil, nil
}
func (f *fakeCoupons) UpdateCoupon(ctx context.Context, id string, input domain.CouponInput) (*domain.Coupon, error) {
	return nil, nil
}
func (f *fakeCoupons) DeleteCoupon(ctx context.Context, id string) error { return nil }

// ============================================================================
// Fixtures
// ============================================================================

const (
	testUserID    = "11111111-1111-1111-1111-111111111111"
	testProductID = "22222222-2222-2222-2222-222222222222"
	testProduct2  = "33333333-3333-3333-3333-333333333333"
)

func defaultConfig() domain.SiteConfig {
	return domain.SiteConfig{
		ShippingFee:             49.90,
		FreeShippingThreshold:   750,
		CODFee:                  29.90,
		TransferDiscountPercent: 5,
	}
}

func newCheckout(store *fakeStore, settings *fakeSettings, coupons *fakeCoupons) domain.CheckoutService {
	return NewCheckoutService(store, settings, coupons, events.NewNoopPublisher(), testLogger())
}

func cartFixture(t *testing.T) []domain.CartItem {
	t.Helper()
	discount := 80.0
	return []domain.CartItem{
		{
			ID:            mustUUID("44444444-4444-4444-4444-444444444444"),
			ProductID:     testUUID(t, testProductID),
			ProductName:   "Ceramic Mug",
			Quantity:      2,
			UnitPrice:     100,
			DiscountPrice: &discount,
			Stock:         10,
		},
		{
			ID:          mustUUID("55555555-5555-5555-5555-555555555555"),
			ProductID:   testUUID(t, testProduct2),
			ProductName: "Out Of Stock Lamp",
			Quantity:    1,
			UnitPrice:   500,
			Stock:       0,
		},
	}
}

func validAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		FullName: "Ada Lovelace",
		Phone:    "5550001122",
		City:     "Ankara",
		Address:  "Analytical Engine St. 1",
	}
}

// ============================================================================
// Quote
// ============================================================================

func TestCheckoutQuote_ExcludesOutOfStockAndPricesDiscount(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	quote, err := svc.Quote(context.Background(), testUserID, domain.QuoteParams{Step: pricing.StepCart})
	require.NoError(t, err)

	// Only the in-stock mug line prices: 2 x 100 gross, 2 x 20 discount.
	assert.Equal(t, 200.0, quote.Breakdown.GrossTotal)
	assert.Equal(t, 40.0, quote.Breakdown.ProductDiscountTotal)
	assert.Equal(t, 160.0, quote.Breakdown.ProductsSubtotal)
	assert.False(t, quote.Breakdown.FreeShipping)
	assert.Equal(t, 49.90, quote.Breakdown.ShippingCost)
	// Cart step: no payment surcharges yet.
	assert.Zero(t, quote.Breakdown.TransferDiscount)
	assert.Zero(t, quote.Breakdown.CODFee)
	assert.InDelta(t, 209.90, quote.Breakdown.FinalTotal, 1e-9)
}

func TestCheckoutQuote_TransferDiscountOnlyAtPaymentStep(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	delivery, err := svc.Quote(context.Background(), testUserID, domain.QuoteParams{
		PaymentMethod: pricing.PaymentTransfer,
		Step:          pricing.StepDelivery,
	})
	require.NoError(t, err)
	assert.Zero(t, delivery.Breakdown.TransferDiscount)

	payment, err := svc.Quote(context.Background(), testUserID, domain.QuoteParams{
		PaymentMethod: pricing.PaymentTransfer,
		Step:          pricing.StepPayment,
	})
	require.NoError(t, err)
	// 5% of the 160 subtotal.
	assert.InDelta(t, 8.0, payment.Breakdown.TransferDiscount, 1e-9)
	assert.InDelta(t, 160-8+49.90, payment.Breakdown.FinalTotal, 1e-9)
}

func TestCheckoutQuote_CouponApplied(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	coupons := &fakeCoupons{coupon: &domain.Coupon{
		Code:           "WELCOME50",
		DiscountAmount: 50,
		MinSpend:       100,
		IsActive:       true,
	}}
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, coupons)

	quote, err := svc.Quote(context.Background(), testUserID, domain.QuoteParams{
		CouponCode: "WELCOME50",
		Step:       pricing.StepCart,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, quote.Breakdown.CouponDiscount)
	require.NotNil(t, quote.Coupon)
	assert.Equal(t, "WELCOME50", quote.Coupon.Code)
	assert.InDelta(t, 160-50+49.90, quote.Breakdown.FinalTotal, 1e-9)
}

func TestCheckoutQuote_CouponBelowMinSpend(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	coupons := &fakeCoupons{coupon: &domain.Coupon{
		Code:           "BIG200",
		DiscountAmount: 200,
		MinSpend:       500,
		IsActive:       true,
	}}
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, coupons)

	_, err := svc.Quote(context.Background(), testUserID, domain.QuoteParams{
		CouponCode: "BIG200",
		Step:       pricing.StepCart,
	})
	assert.ErrorIs(t, err, domain.ErrCouponMinSpend)
}

// ============================================================================
// ValidateDelivery
// ============================================================================

func TestValidateDelivery_EmptyCart(t *testing.T) {
	store := newFakeStore()
	// A cart holding only an out-of-stock line has nothing purchasable.
	store.cartItems = cartFixture(t)[1:]
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	err := svc.ValidateDelivery(context.Background(), testUserID, domain.SubmitOrderParams{
		Address: validAddress(),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestValidateDelivery_IncompleteAddress(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	addr := validAddress()
	addr.Phone = ""
	err := svc.ValidateDelivery(context.Background(), testUserID, domain.SubmitOrderParams{Address: addr})
	assert.ErrorIs(t, err, domain.ErrIncompleteAddress)
}

// ============================================================================
// SubmitOrder
// ============================================================================

func TestSubmitOrder_BankTransfer(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	order, err := svc.SubmitOrder(context.Background(), testUserID, domain.SubmitOrderParams{
		OrderCode:     "ORD-20260831-0001",
		PaymentMethod: pricing.PaymentTransfer,
		Address:       validAddress(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPaymentPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 160.0, order.Subtotal)
	assert.Equal(t, 49.90, order.ShippingCost)
	assert.Equal(t, 8.0, order.DiscountAmount)
	assert.InDelta(t, 201.90, order.TotalAmount, 1e-9)

	// Only the in-stock line was reserved and snapshotted.
	assert.Equal(t, int32(2), store.decremented[testUUID(t, testProductID)])
	assert.NotContains(t, store.decremented, testUUID(t, testProduct2))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Ceramic Mug", order.Items[0].ProductName)
	assert.Equal(t, 100.0, order.Items[0].Price)
	assert.True(t, store.cartCleared)
}

func TestSubmitOrder_CashOnDelivery(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	order, err := svc.SubmitOrder(context.Background(), testUserID, domain.SubmitOrderParams{
		OrderCode:     "ORD-20260831-0002",
		PaymentMethod: pricing.PaymentCOD,
		Address:       validAddress(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, domain.PaymentStatusCOD, order.PaymentStatus)
	assert.Zero(t, order.DiscountAmount)
	assert.InDelta(t, 160+49.90+29.90, order.TotalAmount, 1e-9)
}

func TestSubmitOrder_IdempotentOnOrderCode(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	params := domain.SubmitOrderParams{
		OrderCode:     "ORD-20260831-0003",
		PaymentMethod: pricing.PaymentCOD,
		Address:       validAddress(),
	}
	first, err := svc.SubmitOrder(context.Background(), testUserID, params)
	require.NoError(t, err)

	store.cartCleared = false
	second, err := svc.SubmitOrder(context.Background(), testUserID, params)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TotalAmount, second.TotalAmount)
	// The retry never re-reserved stock or touched the cart.
	assert.Equal(t, int32(2), store.decremented[testUUID(t, testProductID)])
	assert.False(t, store.cartCleared)
}

func TestSubmitOrder_RejectsUnknownMethodAndEmptyCode(t *testing.T) {
	store := newFakeStore()
	store.cartItems = cartFixture(t)
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	_, err := svc.SubmitOrder(context.Background(), testUserID, domain.SubmitOrderParams{
		OrderCode:     "ORD-X",
		PaymentMethod: "credit_card",
		Address:       validAddress(),
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.SubmitOrder(context.Background(), testUserID, domain.SubmitOrderParams{
		PaymentMethod: pricing.PaymentCOD,
		Address:       validAddress(),
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestSubmitOrder_FreeShippingOverThreshold(t *testing.T) {
	store := newFakeStore()
	items := cartFixture(t)
	items[0].Quantity = 10 // 10 x 80 = 800 subtotal, over the 750 threshold
	store.cartItems = items
	svc := newCheckout(store, &fakeSettings{cfg: defaultConfig()}, &fakeCoupons{})

	order, err := svc.SubmitOrder(context.Background(), testUserID, domain.SubmitOrderParams{
		OrderCode:     "ORD-20260831-0004",
		PaymentMethod: pricing.PaymentCOD,
		Address:       validAddress(),
	})
	require.NoError(t, err)
	assert.Zero(t, order.ShippingCost)
	assert.InDelta(t, 800+29.90, order.TotalAmount, 1e-9)
}
