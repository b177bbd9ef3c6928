// Package repository defines the per-entity-kind store contract the
// services consume. Each entity kind lives in its own keyed collection;
// enumeration follows insertion order, not chronology.
package repository

import (
	"context"

	"poultryfarm/internal/domain/models"
)

// Entity is any record addressable by its opaque string identifier.
type Entity interface {
	Key() string
}

// Store is the durable map holding one entity kind. Implementations
// return domain.ErrStoreNotFound for absent ids and
// domain.ErrStoreDuplicate for insert collisions; writes always replace
// the full record under its key.
type Store[T Entity] interface {
	Get(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, record T) error
	Replace(ctx context.Context, record T) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]T, error)
}

// Stores bundles the per-kind stores the application operates on.
type Stores struct {
	Farms         Store[models.Farm]
	Birds         Store[models.Bird]
	Inventory     Store[models.InventoryItem]
	Products      Store[models.Product]
	Transactions  Store[models.Transaction]
	HealthRecords Store[models.HealthRecord]
	Analytics     Store[models.Analytics]
	Orders        Store[models.Order]
}
