package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/events"
	"github.com/denizgunduz/pazar/internal/pricing"
	"github.com/denizgunduz/pazar/internal/repository"
	"github.com/denizgunduz/pazar/internal/telemetry"
)

// checkoutStore is the repository surface checkout needs: reads plus
// transactional writes for order submission.
type checkoutStore interface {
	repository.Querier
	ExecTx(ctx context.Context, fn func(repository.Querier) error) error
}

type checkoutService struct {
	store    checkoutStore
	settings domain.SettingsService
	coupons  domain.CouponService
	events   events.Publisher
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(store checkoutStore, settings domain.SettingsService, coupons domain.CouponService, publisher events.Publisher, logger *slog.Logger) domain.CheckoutService {
	return &checkoutService{
		store:    store,
		settings: settings,
		coupons:  coupons,
		events:   publisher,
		validate: validator.New(),
		logger:   logger,
	}
}

// pricingLines converts cart rows into pricing lines. The cart keeps
// out-of-stock rows; the engine filters them.
func pricingLines(items []domain.CartItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{
			ProductID:         uuidString(it.ProductID),
			UnitPrice:         it.UnitPrice,
			DiscountUnitPrice: it.DiscountPrice,
			Quantity:          int(it.Quantity),
			Stock:             int(it.Stock),
		})
	}
	return lines
}

func pricingConfig(cfg *domain.SiteConfig) pricing.Config {
	return pricing.Config{
		ShippingFee:             cfg.ShippingFee,
		FreeShippingThreshold:   cfg.FreeShippingThreshold,
		CODFee:                  cfg.CODFee,
		TransferDiscountPercent: cfg.TransferDiscountPercent,
	}
}

func (s *checkoutService) Quote(ctx context.Context, userID string, params domain.QuoteParams) (*domain.Quote, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	if params.Step == 0 {
		params.Step = pricing.StepCart
	}

	items, err := s.store.ListCartItems(ctx, uid)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.GetSiteConfig(ctx)
	if err != nil {
		return nil, err
	}

	lines := pricingLines(items)
	coupon, pc, err := s.resolveCoupon(ctx, params.CouponCode, lines)
	if err != nil {
		return nil, err
	}

	breakdown, err := pricing.Quote(lines, pricingConfig(cfg), pc, params.PaymentMethod, params.Step)
	if err != nil {
		return nil, domain.Internal(err, "checkout.quote", "Failed to price cart")
	}
	telemetry.RecordQuote(params.Step.String())
	return &domain.Quote{Breakdown: breakdown, Coupon: coupon}, nil
}

// resolveCoupon looks a code up and validates it against the current
// products subtotal. An empty code means no coupon.
func (s *checkoutService) resolveCoupon(ctx context.Context, code string, lines []pricing.Line) (*domain.Coupon, *pricing.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil, nil
	}

	valid := pricing.ValidLines(lines)
	subtotal := pricing.GrossTotal(valid) - pricing.ProductDiscountTotal(valid)

	coupon, err := s.coupons.ValidateCode(ctx, code, subtotal)
	if err != nil {
		return nil, nil, err
	}
	return coupon, &pricing.Coupon{
		Code:           coupon.Code,
		DiscountAmount: coupon.DiscountAmount,
		MinSpend:       coupon.MinSpend,
		Active:         coupon.IsActive,
	}, nil
}

func (s *checkoutService) ValidateDelivery(ctx context.Context, userID string, params domain.SubmitOrderParams) error {
	uid, err := parseUUID(userID)
	if err != nil {
		return err
	}

	items, err := s.store.ListCartItems(ctx, uid)
	if err != nil {
		return err
	}
	lines := pricingLines(items)
	if len(pricing.ValidLines(lines)) == 0 {
		return domain.ErrEmptyCart
	}

	if err := s.validate.Struct(params.Address); err != nil {
		return domain.ErrIncompleteAddress
	}

	if _, _, err := s.resolveCoupon(ctx, params.CouponCode, lines); err != nil {
		return err
	}
	return nil
}

func (s *checkoutService) SubmitOrder(ctx context.Context, userID string, params domain.SubmitOrderParams) (*domain.Order, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.OrderCode) == "" {
		return nil, domain.Invalid("checkout.submit", "Order code is required")
	}
	if !params.PaymentMethod.Valid() {
		return nil, domain.Invalid("checkout.submit", "Unknown payment method")
	}
	if err := s.validate.Struct(params.Address); err != nil {
		return nil, domain.ErrIncompleteAddress
	}

	// Retries with the same order code return the already-created order.
	if existing, err := s.store.GetOrderByCode(ctx, uid, params.OrderCode); err == nil {
		return s.loadItems(ctx, existing)
	} else if !errors.Is(err, domain.ErrOrderNotFound) {
		return nil, err
	}

	items, err := s.store.ListCartItems(ctx, uid)
	if err != nil {
		return nil, err
	}
	lines := pricingLines(items)
	if len(pricing.ValidLines(lines)) == 0 {
		return nil, domain.ErrEmptyCart
	}

	cfg, err := s.settings.GetSiteConfig(ctx)
	if err != nil {
		return nil, err
	}
	coupon, pc, err := s.resolveCoupon(ctx, params.CouponCode, lines)
	if err != nil {
		return nil, err
	}

	// Surcharges always apply on submission: the user has chosen a method.
	breakdown, err := pricing.Quote(lines, pricingConfig(cfg), pc, params.PaymentMethod, pricing.StepPayment)
	if err != nil {
		return nil, domain.Internal(err, "checkout.submit", "Failed to price cart")
	}

	order := &domain.Order{
		UserID:        uid,
		OrderCode:     params.OrderCode,
		PaymentMethod: params.PaymentMethod,
		Subtotal:      pricing.Round2(breakdown.ProductsSubtotal),
		ShippingCost:  pricing.Round2(breakdown.ShippingCost),
		// Everything subtracted from the subtotal: coupon plus transfer
		// discount. The COD fee is part of the final total.
		DiscountAmount: pricing.Round2(breakdown.CouponDiscount + breakdown.TransferDiscount),
		TotalAmount:    pricing.Round2(breakdown.FinalTotal),
		ShippingAddr:   params.Address,
		Notes:          params.Note,
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
	}
	switch params.PaymentMethod {
	case pricing.PaymentTransfer:
		order.Status = domain.OrderStatusPaymentPending
		order.PaymentStatus = domain.PaymentStatusPending
	case pricing.PaymentCOD:
		order.Status = domain.OrderStatusProcessing
		order.PaymentStatus = domain.PaymentStatusCOD
	}

	var created *domain.Order
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		for _, it := range items {
			if it.Stock <= 0 {
				continue
			}
			if err := q.DecrementProductStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		created, err = q.CreateOrder(ctx, order)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.Stock <= 0 {
				continue
			}
			if err := q.CreateOrderItem(ctx, &domain.OrderItem{
				OrderID:       created.ID,
				ProductID:     it.ProductID,
				Quantity:      it.Quantity,
				Price:         it.UnitPrice,
				DiscountPrice: it.DiscountPrice,
				ProductName:   it.ProductName,
				ImageURL:      it.ImageURL,
			}); err != nil {
				return err
			}
		}
		return q.ClearCart(ctx, uid)
	})
	if err != nil {
		// A concurrent retry won the race on the order code.
		if errors.Is(err, domain.ErrDuplicateOrder) {
			if existing, getErr := s.store.GetOrderByCode(ctx, uid, params.OrderCode); getErr == nil {
				return s.loadItems(ctx, existing)
			}
		}
		return nil, err
	}

	s.publish(events.SubjectOrderCreated, created, "")
	telemetry.RecordOrderCreated(string(created.PaymentMethod), created.TotalAmount, len(pricing.ValidLines(lines)), coupon != nil)
	return s.loadItems(ctx, created)
}

func (s *checkoutService) loadItems(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, err := s.store.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *checkoutService) publish(subject string, order *domain.Order, prevStatus string) {
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
