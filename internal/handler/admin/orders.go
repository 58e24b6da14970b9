package admin

import (
	"net/http"
	"strconv"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// OrderHandler manages order fulfillment from the back office.
type OrderHandler struct {
	orders domain.OrderService
}

func NewOrderHandler(orders domain.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /api/admin/orders
//
// Query parameters: status, limit.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 {
			handler.ErrorResponse(w, r, domain.Invalid("admin.orders", "limit must be a positive number"))
			return
		}
		filter.Limit = int32(n)
	}

	orders, err := h.orders.ListOrders(r.Context(), filter)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderViews(orders, true))
}

// Get handles GET /api/admin/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderView(order, true))
}

type orderStatusRequest struct {
	Status         string `json:"status"`
	PaymentStatus  string `json:"payment_status"`
	TrackingNumber string `json:"tracking_number"`
	AdminNotes     string `json:"admin_notes"`
}

// UpdateStatus handles PATCH /api/admin/orders/{id}
//
// Fields left empty keep their current value, so marking a payment received
// does not require resending the whole order state.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), r.PathValue("id"), domain.OrderStatusUpdate{
		Status:         req.Status,
		PaymentStatus:  req.PaymentStatus,
		TrackingNumber: req.TrackingNumber,
		AdminNotes:     req.AdminNotes,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderView(order, true))
}
