package memory

import (
	"context"
	"errors"
	"testing"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
)

func TestStore_Basic(t *testing.T) {
	ctx := context.Background()
	s := New[models.Product]()

	if err := s.Insert(ctx, models.Product{ID: "p1", Name: "eggs", Quantity: 10}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Insert(ctx, models.Product{ID: "p1"}); !errors.Is(err, domain.ErrStoreDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	got, err := s.Get(ctx, "p1")
	if err != nil || got.Quantity != 10 {
		t.Fatalf("get: %+v %v", got, err)
	}
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	got.Quantity = 6
	if err := s.Replace(ctx, got); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ = s.Get(ctx, "p1")
	if got.Quantity != 6 {
		t.Fatalf("replace not applied: %+v", got)
	}
	if err := s.Replace(ctx, models.Product{ID: "missing"}); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected not found on replace, got %v", err)
	}

	if err := s.Remove(ctx, "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "p1"); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}

func TestStore_ListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New[models.Farm]()

	for _, id := range []string{"c", "a", "b"} {
		if err := s.Insert(ctx, models.Farm{ID: id}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Insert(ctx, models.Farm{ID: "a"}); err != nil {
		t.Fatalf("reinsert: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"c", "b", "a"}
	if len(list) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(list))
	}
	for i, farm := range list {
		if farm.ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], farm.ID)
		}
	}
}

func TestNewStores(t *testing.T) {
	stores := NewStores()
	if stores.Farms == nil || stores.Birds == nil || stores.Inventory == nil || stores.Products == nil ||
		stores.Transactions == nil || stores.HealthRecords == nil || stores.Analytics == nil || stores.Orders == nil {
		t.Fatalf("store bundle incomplete: %+v", stores)
	}
}
