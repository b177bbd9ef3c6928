// Package registry owns the validated lifecycle of the stored entity
// kinds: creation through the model constructors, partial updates
// through the model patches, and removal. Farm-scoped entities must
// reference an existing farm.
package registry

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
)

// Service exposes CRUD over the entity stores.
type Service struct {
	stores *repository.Stores
	logger *zap.Logger
}

// NewService wires a new registry instance.
func NewService(stores *repository.Stores, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{stores: stores, logger: logger}
}

func fetch[T repository.Entity](ctx context.Context, store repository.Store[T], kind, id string) (T, error) {
	record, err := store.Get(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, domain.ErrStoreNotFound) {
			return zero, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
		}
		return zero, fmt.Errorf("load %s %s: %w", kind, id, err)
	}
	return record, nil
}

func remove[T repository.Entity](ctx context.Context, store repository.Store[T], kind, id string) error {
	if err := store.Remove(ctx, id); err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
		}
		return fmt.Errorf("remove %s %s: %w", kind, id, err)
	}
	return nil
}

func listScoped[T repository.Entity](ctx context.Context, store repository.Store[T], kind, farmID string, farmOf func(T) string) ([]T, error) {
	all, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	if farmID == "" {
		return all, nil
	}

	out := make([]T, 0, len(all))
	for _, record := range all {
		if farmOf(record) == farmID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *Service) requireFarm(ctx context.Context, farmID string) error {
	_, err := fetch(ctx, s.stores.Farms, "farm", farmID)
	return err
}

// --- Farms ---

func (s *Service) CreateFarm(ctx context.Context, in models.FarmInput) (*models.Farm, error) {
	farm, err := models.NewFarm(in)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Farms.Insert(ctx, *farm); err != nil {
		return nil, fmt.Errorf("persist farm %s: %w", farm.ID, err)
	}
	s.logger.Info("farm created", zap.String("farm_id", farm.ID), zap.String("owner_id", farm.OwnerID))
	return farm, nil
}

func (s *Service) GetFarm(ctx context.Context, id string) (*models.Farm, error) {
	farm, err := fetch(ctx, s.stores.Farms, "farm", id)
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

func (s *Service) ListFarms(ctx context.Context) ([]models.Farm, error) {
	farms, err := s.stores.Farms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	return farms, nil
}

func (s *Service) UpdateFarm(ctx context.Context, id string, patch models.FarmPatch) (*models.Farm, error) {
	farm, err := fetch(ctx, s.stores.Farms, "farm", id)
	if err != nil {
		return nil, err
	}
	if err := farm.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.stores.Farms.Replace(ctx, farm); err != nil {
		return nil, fmt.Errorf("persist farm %s: %w", id, err)
	}
	return &farm, nil
}

func (s *Service) DeleteFarm(ctx context.Context, id string) error {
	return remove(ctx, s.stores.Farms, "farm", id)
}

// --- Birds ---

func (s *Service) CreateBird(ctx context.Context, in models.BirdInput) (*models.Bird, error) {
	if err := s.requireFarm(ctx, in.FarmID); err != nil {
		return nil, err
	}
	bird, err := models.NewBird(in)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Birds.Insert(ctx, *bird); err != nil {
		return nil, fmt.Errorf("persist bird %s: %w", bird.ID, err)
	}
	return bird, nil
}

func (s *Service) GetBird(ctx context.Context, id string) (*models.Bird, error) {
	bird, err := fetch(ctx, s.stores.Birds, "bird", id)
	if err != nil {
		return nil, err
	}
	return &bird, nil
}

func (s *Service) ListBirds(ctx context.Context, farmID string) ([]models.Bird, error) {
	return listScoped(ctx, s.stores.Birds, "birds", farmID, func(b models.Bird) string { return b.FarmID })
}

func (s *Service) UpdateBird(ctx context.Context, id string, patch models.BirdPatch) (*models.Bird, error) {
	bird, err := fetch(ctx, s.stores.Birds, "bird", id)
	if err != nil {
		return nil, err
	}
	if err := bird.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.stores.Birds.Replace(ctx, bird); err != nil {
		return nil, fmt.Errorf("persist bird %s: %w", id, err)
	}
	return &bird, nil
}

func (s *Service) DeleteBird(ctx context.Context, id string) error {
	return remove(ctx, s.stores.Birds, "bird", id)
}

// --- Inventory ---

func (s *Service) CreateInventoryItem(ctx context.Context, in models.InventoryInput) (*models.InventoryItem, error) {
	if err := s.requireFarm(ctx, in.FarmID); err != nil {
		return nil, err
	}
	item, err := models.NewInventoryItem(in)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Inventory.Insert(ctx, *item); err != nil {
		return nil, fmt.Errorf("persist inventory item %s: %w", item.ID, err)
	}
	return item, nil
}

func (s *Service) GetInventoryItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	item, err := fetch(ctx, s.stores.Inventory, "inventory item", id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) ListInventory(ctx context.Context, farmID string) ([]models.InventoryItem, error) {
	return listScoped(ctx, s.stores.Inventory, "inventory", farmID, func(i models.InventoryItem) string { return i.FarmID })
}

func (s *Service) UpdateInventoryItem(ctx context.Context, id string, patch models.InventoryPatch) (*models.InventoryItem, error) {
	item, err := fetch(ctx, s.stores.Inventory, "inventory item", id)
	if err != nil {
		return nil, err
	}
	if err := item.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.stores.Inventory.Replace(ctx, item); err != nil {
		return nil, fmt.Errorf("persist inventory item %s: %w", id, err)
	}
	return &item, nil
}

func (s *Service) DeleteInventoryItem(ctx context.Context, id string) error {
	return remove(ctx, s.stores.Inventory, "inventory item", id)
}

// --- Products ---

func (s *Service) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := s.requireFarm(ctx, in.FarmID); err != nil {
		return nil, err
	}
	product, err := models.NewProduct(in)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Products.Insert(ctx, *product); err != nil {
		return nil, fmt.Errorf("persist product %s: %w", product.ID, err)
	}
	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := fetch(ctx, s.stores.Products, "product", id)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) ListProducts(ctx context.Context, farmID string) ([]models.Product, error) {
	return listScoped(ctx, s.stores.Products, "products", farmID, func(p models.Product) string { return p.FarmID })
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	product, err := fetch(ctx, s.stores.Products, "product", id)
	if err != nil {
		return nil, err
	}
	if err := product.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.stores.Products.Replace(ctx, product); err != nil {
		return nil, fmt.Errorf("persist product %s: %w", id, err)
	}
	return &product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return remove(ctx, s.stores.Products, "product", id)
}

// --- Transactions ---

func (s *Service) CreateTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	if err := s.requireFarm(ctx, in.FarmID); err != nil {
		return nil, err
	}
	tx, err := models.NewTransaction(in)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Transactions.Insert(ctx, *tx); err != nil {
		return nil, fmt.Errorf("persist transaction %s: %w", tx.ID, err)
	}
	return tx, nil
}

func (s *Service) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := fetch(ctx, s.stores.Transactions, "transaction", id)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *Service) ListTransactions(ctx context.Context, farmID string) ([]models.Transaction, error) {
	return listScoped(ctx, s.stores.Transactions, "transactions", farmID, func(t models.Transaction) string { return t.FarmID })
}

func (s *Service) UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	tx, err := fetch(ctx, s.stores.Transactions, "transaction", id)
	if err != nil {
		return nil, err
	}
	if err := tx.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.stores.Transactions.Replace(ctx, tx); err != nil {
		return nil, fmt.Errorf("persist transaction %s: %w", id, err)
	}
	return &tx, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	return remove(ctx, s.stores.Transactions, "transaction", id)
}

// --- Health records ---

func (s *Service) CreateHealthRecord(ctx context.Context, in models.HealthRecordInput) (*models.HealthRecord, error) {
	if err := s.requireFarm(ctx, in.FarmID); err != nil {
		return nil, err
	}
	record, err := models.NewHealthRecord(in)
	if err != nil {
		return nil, err
	}
	if err := s.stores.HealthRecords.Insert(ctx, *record); err != nil {
		return nil, fmt.Errorf("persist health record %s: %w", record.ID, err)
	}
	return record, nil
}

func (s *Service) GetHealthRecord(ctx context.Context, id string) (*models.HealthRecord, error) {
	record, err := fetch(ctx, s.stores.HealthRecords, "health record", id)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) ListHealthRecords(ctx context.Context, farmID string) ([]models.HealthRecord, error) {
	return listScoped(ctx, s.stores.HealthRecords, "health records", farmID, func(h models.HealthRecord) string { return h.FarmID })
}

func (s *Service) UpdateHealthRecord(ctx context.Context, id string, patch models.HealthRecordPatch) (*models.HealthRecord, error) {
	record, err := fetch(ctx, s.stores.HealthRecords, "health record", id)
	if err != nil {
		return nil, err
	}
	if err := record.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.stores.HealthRecords.Replace(ctx, record); err != nil {
		return nil, fmt.Errorf("persist health record %s: %w", id, err)
	}
	return &record, nil
}

func (s *Service) DeleteHealthRecord(ctx context.Context, id string) error {
	return remove(ctx, s.stores.HealthRecords, "health record", id)
}
