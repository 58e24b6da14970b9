package handler

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/pricing"
)

// View types are the JSON wire shapes of the domain models. IDs render as
// UUID strings and timestamps as RFC 3339.

func UUIDString(u pgtype.UUID) string {
	v, err := u.Value()
	if err != nil || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

type CategoryView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"image_url,omitempty"`
	Icon         string `json:"icon,omitempty"`
	DisplayOrder int32  `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

func NewCategoryView(c domain.Category) CategoryView {
	return CategoryView{
		ID:           UUIDString(c.ID),
		Name:         c.Name,
		Slug:         c.Slug,
		ImageURL:     c.ImageURL,
		Icon:         c.Icon,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
}

func NewCategoryViews(categories []domain.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, NewCategoryView(c))
	}
	return views
}

type ProductView struct {
	ID            string             `json:"id"`
	CategoryID    string             `json:"category_id,omitempty"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description,omitempty"`
	Price         float64            `json:"price"`
	DiscountPrice *float64           `json:"discount_price,omitempty"`
	Stock         int32              `json:"stock"`
	ImageURL      string             `json:"image_url,omitempty"`
	Images        []string           `json:"images,omitempty"`
	SKU           string             `json:"sku,omitempty"`
	IsFeatured    bool               `json:"is_featured"`
	IsActive      bool               `json:"is_active"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func NewProductView(p domain.Product) ProductView {
	return ProductView{
		ID:            UUIDString(p.ID),
		CategoryID:    UUIDString(p.CategoryID),
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Stock:         p.Stock,
		ImageURL:      p.ImageURL,
		Images:        p.Images,
		SKU:           p.SKU,
		IsFeatured:    p.IsFeatured,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}

func NewProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}

type CartItemView struct {
	ID            string   `json:"id"`
	ProductID     string   `json:"product_id"`
	ProductName   string   `json:"product_name"`
	UnitPrice     float64  `json:"unit_price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Quantity      int32    `json:"quantity"`
	Stock         int32    `json:"stock"`
	ImageURL      string   `json:"image_url,omitempty"`
}

type CartView struct {
	Items     []CartItemView `json:"items"`
	ItemCount int            `json:"item_count"`
}

func NewCartView(summary *domain.CartSummary) CartView {
	items := make([]CartItemView, 0, len(summary.Items))
	for _, it := range summary.Items {
		items = append(items, CartItemView{
			ID:            UUIDString(it.ID),
			ProductID:     UUIDString(it.ProductID),
			ProductName:   it.ProductName,
			UnitPrice:     it.UnitPrice,
			DiscountPrice: it.DiscountPrice,
			Quantity:      it.Quantity,
			Stock:         it.Stock,
			ImageURL:      it.ImageURL,
		})
	}
	return CartView{Items: items, ItemCount: summary.ItemCount}
}

type CouponView struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Description    string  `json:"description,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`
	MinSpend       float64 `json:"min_spend"`
	IsActive       bool    `json:"is_active"`
}

func NewCouponView(c domain.Coupon) CouponView {
	return CouponView{
		ID:             UUIDString(c.ID),
		Code:           c.Code,
		Description:    c.Description,
		DiscountAmount: c.DiscountAmount,
		MinSpend:       c.MinSpend,
		IsActive:       c.IsActive,
	}
}

func NewCouponViews(coupons []domain.Coupon) []CouponView {
	views := make([]CouponView, 0, len(coupons))
	for _, c := range coupons {
		views = append(views, NewCouponView(c))
	}
	return views
}

type QuoteView struct {
	Breakdown pricing.Breakdown `json:"breakdown"`
	Coupon    *CouponView       `json:"coupon,omitempty"`
}

func NewQuoteView(q *domain.Quote) QuoteView {
	view := QuoteView{Breakdown: q.Breakdown}
	if q.Coupon != nil {
		c := NewCouponView(*q.Coupon)
		view.Coupon = &c
	}
	return view
}

type OrderItemView struct {
	ProductID     string   `json:"product_id"`
	ProductName   string   `json:"product_name"`
	Quantity      int32    `json:"quantity"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
}

type OrderView struct {
	ID             string                 `json:"id"`
	OrderCode      string                 `json:"order_code"`
	UserID         string                 `json:"user_id,omitempty"`
	Status         string                 `json:"status"`
	PaymentMethod  string                 `json:"payment_method"`
	PaymentStatus  string                 `json:"payment_status"`
	Subtotal       float64                `json:"subtotal"`
	ShippingCost   float64                `json:"shipping_cost"`
	DiscountAmount float64                `json:"discount_amount"`
	TotalAmount    float64                `json:"total_amount"`
	ShippingAddr   domain.ShippingAddress `json:"shipping_address"`
	CouponCode     string                 `json:"coupon_code,omitempty"`
	TrackingNumber string                 `json:"tracking_number,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	AdminNotes     string                 `json:"admin_notes,omitempty"`
	CreatedAt      pgtype.Timestamptz     `json:"created_at"`
	PaidAt         pgtype.Timestamptz     `json:"paid_at,omitzero"`
	ShippedAt      pgtype.Timestamptz     `json:"shipped_at,omitzero"`
	DeliveredAt    pgtype.Timestamptz     `json:"delivered_at,omitzero"`
	CancelledAt    pgtype.Timestamptz     `json:"cancelled_at,omitzero"`
	Items          []OrderItemView        `json:"items,omitempty"`
}

func NewOrderView(o *domain.Order, includeAdmin bool) OrderView {
	view := OrderView{
		ID:             UUIDString(o.ID),
		OrderCode:      o.OrderCode,
		Status:         o.Status,
		PaymentMethod:  string(o.PaymentMethod),
		PaymentStatus:  o.PaymentStatus,
		Subtotal:       o.Subtotal,
		ShippingCost:   o.ShippingCost,
		DiscountAmount: o.DiscountAmount,
		TotalAmount:    o.TotalAmount,
		ShippingAddr:   o.ShippingAddr,
		CouponCode:     o.CouponCode,
		TrackingNumber: o.TrackingNumber,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		PaidAt:         o.PaidAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
	}
	if includeAdmin {
		view.UserID = UUIDString(o.UserID)
		view.AdminNotes = o.AdminNotes
	}
	for _, it := range o.Items {
		view.Items = append(view.Items, OrderItemView{
			ProductID:     UUIDString(it.ProductID),
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			Price:         it.Price,
			DiscountPrice: it.DiscountPrice,
			ImageURL:      it.ImageURL,
		})
	}
	return view
}

func NewOrderViews(orders []domain.Order, includeAdmin bool) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, NewOrderView(&orders[i], includeAdmin))
	}
	return views
}

type ReviewView struct {
	ID         string             `json:"id"`
	ProductID  string             `json:"product_id"`
	UserName   string             `json:"user_name,omitempty"`
	Rating     int32              `json:"rating"`
	Comment    string             `json:"comment,omitempty"`
	IsVerified bool               `json:"is_verified"`
	IsApproved bool               `json:"is_approved"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func NewReviewView(r domain.Review) ReviewView {
	return ReviewView{
		ID:         UUIDString(r.ID),
		ProductID:  UUIDString(r.ProductID),
		UserName:   r.UserName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsVerified: r.IsVerified,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
	}
}

func NewReviewViews(reviews []domain.Review) []ReviewView {
	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, NewReviewView(r))
	}
	return views
}

type FavoriteView struct {
	ID      string       `json:"id"`
	Product *ProductView `json:"product,omitempty"`
}

func NewFavoriteViews(favorites []domain.Favorite) []FavoriteView {
	views := make([]FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		view := FavoriteView{ID: UUIDString(f.ID)}
		if f.Product != nil {
			p := NewProductView(*f.Product)
			view.Product = &p
		}
		views = append(views, view)
	}
	return views
}

type UserView struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	FullName  string             `json:"full_name"`
	Phone     string             `json:"phone,omitempty"`
	Gender    string             `json:"gender,omitempty"`
	Role      string             `json:"role"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:        UUIDString(u.ID),
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Gender:    u.Gender,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type AddressView struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Address   string `json:"address"`
	IsDefault bool   `json:"is_default"`
}

func NewAddressView(a *domain.Address) AddressView {
	return AddressView{
		ID:        UUIDString(a.ID),
		FullName:  a.FullName,
		Phone:     a.Phone,
		City:      a.City,
		Address:   a.Address,
		IsDefault: a.IsDefault,
	}
}

func NewAddressViews(addresses []domain.Address) []AddressView {
	views := make([]AddressView, 0, len(addresses))
	for i := range addresses {
		views = append(views, NewAddressView(&addresses[i]))
	}
	return views
}
