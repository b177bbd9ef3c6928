package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poultryfarm/internal/service/orders"
)

// OrderHandler adapts the order service to HTTP.
type OrderHandler struct {
	svc    *orders.Service
	logger *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter.
func NewOrderHandler(svc *orders.Service, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, logger: logger}
}

// Create runs order fulfillment.
func (h *OrderHandler) Create(c *gin.Context) {
	var req orders.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, h.logger, err)
		return
	}

	order, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Get returns one order.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// List returns orders, optionally scoped by farmId.
func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), c.Query("farmId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStatus advances order and payment status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req orders.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, h.logger, err)
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
