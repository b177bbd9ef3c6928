// Package orders implements order fulfillment against product stock.
//
// Fulfillment runs in two phases because the entity stores offer no
// multi-key transaction: every line item is validated against current
// stock before any decrement is written, so a failing line leaves the
// repository untouched.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
)

// StockNotifier receives a stock update for every product mutated by
// fulfillment or cancellation.
type StockNotifier interface {
	NotifyStockUpdate(update models.StockUpdate)
}

// Service owns order lifecycle and the stock decrements it implies.
type Service struct {
	products repository.Store[models.Product]
	orders   repository.Store[models.Order]
	notifier StockNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new order service. The notifier may be nil.
func NewService(stores *repository.Stores, notifier StockNotifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products: stores.Products,
		orders:   stores.Orders,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateOrderRequest is the fulfillment input.
type CreateOrderRequest struct {
	FarmID     string               `json:"farmId" validate:"required"`
	CustomerID string               `json:"customerId" validate:"required"`
	Products   []models.LineItem    `json:"products" validate:"required,min=1,dive"`
	Delivery   *models.DeliveryInfo `json:"delivery"`
}

// Create reconciles every line item against product stock and, only on
// total success, persists the decrements and the new order. A missing
// product fails with NotFound, a short one with InsufficientStock; in
// both cases no product is mutated.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if err := models.ValidateInput(req); err != nil {
		return nil, err
	}

	// Check phase. Requested quantities are accumulated per product so
	// an order listing the same product twice cannot oversell it.
	requested := make(map[string]int)
	loaded := make(map[string]models.Product)
	sequence := make([]string, 0, len(req.Products))

	for _, line := range req.Products {
		if _, ok := loaded[line.ProductID]; !ok {
			product, err := s.products.Get(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrStoreNotFound) {
					return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, line.ProductID)
				}
				return nil, fmt.Errorf("load product %s: %w", line.ProductID, err)
			}
			loaded[line.ProductID] = product
			sequence = append(sequence, line.ProductID)
		}

		requested[line.ProductID] += line.Quantity
		if available := loaded[line.ProductID].Quantity; available < requested[line.ProductID] {
			return nil, fmt.Errorf("%w: product %s has %d, order requires %d",
				domain.ErrInsufficientStock, line.ProductID, available, requested[line.ProductID])
		}
	}

	// Commit phase. Every line passed, so the decrements cannot drive
	// any quantity negative.
	now := s.now().UTC()
	for _, id := range sequence {
		product := loaded[id]
		product.Quantity -= requested[id]
		product.SyncAvailability()
		product.UpdatedAt = &now
		if err := s.products.Replace(ctx, product); err != nil {
			return nil, fmt.Errorf("persist product %s: %w", id, err)
		}
		s.notifyStock(product)
	}

	var total float64
	for _, line := range req.Products {
		total += float64(line.Quantity) * line.Price
	}

	order := &models.Order{
		ID:            uuid.NewString(),
		FarmID:        req.FarmID,
		CustomerID:    req.CustomerID,
		Products:      req.Products,
		TotalAmount:   total,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
		Delivery:      req.Delivery,
		CreatedAt:     now,
	}
	if err := s.orders.Insert(ctx, *order); err != nil {
		return nil, fmt.Errorf("persist order %s: %w", order.ID, err)
	}

	s.logger.Info("order fulfilled",
		zap.String("order_id", order.ID),
		zap.String("farm_id", order.FarmID),
		zap.Int("line_items", len(order.Products)),
		zap.Float64("total_amount", order.TotalAmount))

	return order, nil
}

// Get returns a single order by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("load order %s: %w", id, err)
	}
	return &order, nil
}

// List returns orders, scoped to one farm when farmID is non-empty.
func (s *Service) List(ctx context.Context, farmID string) ([]models.Order, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if farmID == "" {
		return all, nil
	}

	out := make([]models.Order, 0, len(all))
	for _, order := range all {
		if order.FarmID == farmID {
			out = append(out, order)
		}
	}
	return out, nil
}

// StatusUpdateRequest patches order progress; nil fields are untouched.
type StatusUpdateRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

// UpdateStatus advances an order through its lifecycle. Cancelling an
// order that has not shipped restores the reserved product quantities.
func (s *Service) UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status, err := models.ParseOrderStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if status == models.OrderCancelled && order.Status != status {
			if order.Status == models.OrderShipped || order.Status == models.OrderDelivered {
				return nil, fmt.Errorf("%w: order %s already %s, cannot cancel", domain.ErrInvalidInput, id, order.Status)
			}
			if err := s.restock(ctx, order); err != nil {
				return nil, err
			}
		}
		order.Status = status
	}
	if req.PaymentStatus != nil {
		payment, err := models.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			return nil, err
		}
		order.PaymentStatus = payment
	}

	now := s.now().UTC()
	order.UpdatedAt = &now
	if err := s.orders.Replace(ctx, *order); err != nil {
		return nil, fmt.Errorf("persist order %s: %w", id, err)
	}

	s.logger.Info("order status updated",
		zap.String("order_id", id),
		zap.String("status", string(order.Status)),
		zap.String("payment_status", string(order.PaymentStatus)))

	return order, nil
}

// restock returns the order's quantities to their products. Products
// removed since fulfillment are skipped rather than failing the
// cancellation.
func (s *Service) restock(ctx context.Context, order *models.Order) error {
	returned := make(map[string]int)
	sequence := make([]string, 0, len(order.Products))
	for _, line := range order.Products {
		if _, ok := returned[line.ProductID]; !ok {
			sequence = append(sequence, line.ProductID)
		}
		returned[line.ProductID] += line.Quantity
	}

	now := s.now().UTC()
	for _, id := range sequence {
		product, err := s.products.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrStoreNotFound) {
				s.logger.Warn("restock skipped, product gone",
					zap.String("order_id", order.ID), zap.String("product_id", id))
				continue
			}
			return fmt.Errorf("load product %s: %w", id, err)
		}

		product.Quantity += returned[id]
		product.SyncAvailability()
		product.UpdatedAt = &now
		if err := s.products.Replace(ctx, product); err != nil {
			return fmt.Errorf("persist product %s: %w", id, err)
		}
		s.notifyStock(product)
	}
	return nil
}

func (s *Service) notifyStock(product models.Product) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyStockUpdate(models.StockUpdate{
		ProductID:   product.ID,
		FarmID:      product.FarmID,
		NewQuantity: product.Quantity,
		Available:   product.Available,
	})
}
