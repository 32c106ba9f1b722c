package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ArieGerard/OdersApp/internal/models"
	"github.com/ArieGerard/OdersApp/internal/services"
	"github.com/ArieGerard/OdersApp/internal/store"
	"github.com/ArieGerard/OdersApp/internal/web"
)

// OrderHandler serves the orders pages shown to authenticated users.
type OrderHandler struct {
	orders services.OrderServiceProvider
	views  *web.Templates
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders services.OrderServiceProvider, views *web.Templates) *OrderHandler {
	return &OrderHandler{orders: orders, views: views}
}

type orderListPage struct {
	Orders []models.Order
}

type orderDetailPage struct {
	Order models.Order
}

// List shows all orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		return
	}
	renderView(h.views, w, "orders.html", orderListPage{Orders: orders})
}

// Show displays a single order.
func (h *OrderHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}
	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Int64("order_id", id).Msg("Failed to get order")
		http.Error(w, "Failed to get order", http.StatusInternalServerError)
		return
	}
	renderView(h.views, w, "order.html", orderDetailPage{Order: order})
}
