// Package alerts answers the low-stock and follow-up queries and turns
// them into outbound notifications during scheduled sweeps.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
)

// TextSender delivers a plain-text notification to one recipient.
type TextSender interface {
	SendText(ctx context.Context, to, body string) error
}

// Service implements the alerting queries. The sender may be nil, in
// which case sweeps only log their findings.
type Service struct {
	farms     repository.Store[models.Farm]
	inventory repository.Store[models.InventoryItem]
	health    repository.Store[models.HealthRecord]
	sender    TextSender
	recipient string
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new alert service instance.
func NewService(stores *repository.Stores, sender TextSender, recipient string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		farms:     stores.Farms,
		inventory: stores.Inventory,
		health:    stores.HealthRecords,
		sender:    sender,
		recipient: recipient,
		logger:    logger,
		now:       time.Now,
	}
}

// LowStockInventory returns the farm's items at or below their reorder
// threshold. Pure filter, no mutation.
func (s *Service) LowStockInventory(ctx context.Context, farmID string) ([]models.InventoryItem, error) {
	if farmID == "" {
		return nil, fmt.Errorf("%w: farm id required", domain.ErrInvalidInput)
	}

	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	out := make([]models.InventoryItem, 0)
	for _, item := range items {
		if item.FarmID == farmID && item.Quantity <= item.MinimumThreshold {
			out = append(out, item)
		}
	}
	return out, nil
}

// LowStockFeeds is the legacy variant: feed items strictly below the
// supplied threshold, across every farm. Intentionally global.
func (s *Service) LowStockFeeds(ctx context.Context, threshold float64) ([]models.InventoryItem, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	out := make([]models.InventoryItem, 0)
	for _, item := range items {
		if item.Type == models.InventoryFeed && item.Quantity < threshold {
			out = append(out, item)
		}
	}
	return out, nil
}

// UpcomingFollowUps returns the farm's health records whose follow-up
// date is still ahead.
func (s *Service) UpcomingFollowUps(ctx context.Context, farmID string) ([]models.HealthRecord, error) {
	if farmID == "" {
		return nil, fmt.Errorf("%w: farm id required", domain.ErrInvalidInput)
	}

	records, err := s.health.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load health records: %w", err)
	}

	now := s.now().UTC()
	out := make([]models.HealthRecord, 0)
	for _, record := range records {
		if record.FarmID == farmID && record.NextFollowUp != nil && record.NextFollowUp.After(now) {
			out = append(out, record)
		}
	}
	return out, nil
}

// Sweep walks every farm, collects its low-stock items and delivers a
// single summary message. Farms with nothing to report are skipped.
func (s *Service) Sweep(ctx context.Context) error {
	farms, err := s.farms.List(ctx)
	if err != nil {
		return fmt.Errorf("load farms: %w", err)
	}

	var lines []string
	for _, farm := range farms {
		items, err := s.LowStockInventory(ctx, farm.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}

		lines = append(lines, fmt.Sprintf("%s:", farm.Name))
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("- %s %.1f%s (reorder at %.1f)", item.Name, item.Quantity, item.Unit, item.MinimumThreshold))
		}
	}

	if len(lines) == 0 {
		s.logger.Debug("low stock sweep clean")
		return nil
	}

	body := "Low stock alert\n" + strings.Join(lines, "\n")
	s.logger.Info("low stock sweep found items", zap.Int("lines", len(lines)))

	if s.sender == nil || s.recipient == "" {
		return nil
	}
	if err := s.sender.SendText(ctx, s.recipient, body); err != nil {
		return fmt.Errorf("deliver low stock alert: %w", err)
	}
	return nil
}
