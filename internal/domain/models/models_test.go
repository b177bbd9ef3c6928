package models

import (
	"errors"
	"testing"
	"time"

	"poultryfarm/internal/domain"
)

func TestParseEnums_RejectUnknownValues(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"bird status", func() error { _, err := ParseBirdStatus("zombie"); return err }()},
		{"inventory type", func() error { _, err := ParseInventoryType("furniture"); return err }()},
		{"product type", func() error { _, err := ParseProductType("wool"); return err }()},
		{"product quality", func() error { _, err := ParseProductQuality("luxury"); return err }()},
		{"transaction type", func() error { _, err := ParseTransactionType("donation"); return err }()},
		{"transaction status", func() error { _, err := ParseTransactionStatus("frozen"); return err }()},
		{"health record type", func() error { _, err := ParseHealthRecordType("surgery"); return err }()},
		{"analytics period", func() error { _, err := ParseAnalyticsPeriod("hourly"); return err }()},
		{"order status", func() error { _, err := ParseOrderStatus("lost"); return err }()},
		{"payment status", func() error { _, err := ParsePaymentStatus("iou"); return err }()},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", tc.name, tc.err)
		}
	}
}

func TestNewFarm_StockCapacityInvariant(t *testing.T) {
	if _, err := NewFarm(FarmInput{OwnerID: "o1", Name: "f", Capacity: 10, CurrentStock: 11}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	farm, err := NewFarm(FarmInput{OwnerID: "o1", Name: "f", Capacity: 10, CurrentStock: 10})
	if err != nil {
		t.Fatalf("stock equal to capacity must be allowed: %v", err)
	}
	if farm.ID == "" || farm.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp: %+v", farm)
	}
}

func TestNewProduct_DerivesAvailability(t *testing.T) {
	stocked, err := NewProduct(ProductInput{FarmID: "f1", Name: "eggs", Type: "eggs", Quantity: 12, Price: 1, Quality: "premium"})
	if err != nil {
		t.Fatalf("create stocked: %v", err)
	}
	if !stocked.Available {
		t.Fatalf("positive quantity must be available")
	}

	empty, err := NewProduct(ProductInput{FarmID: "f1", Name: "meat", Type: "meat", Quantity: 0, Price: 5, Quality: "standard"})
	if err != nil {
		t.Fatalf("create empty: %v", err)
	}
	if empty.Available {
		t.Fatalf("zero quantity must not be available")
	}

	quantity := 3
	if err := empty.Apply(ProductPatch{Quantity: &quantity}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !empty.Available {
		t.Fatalf("patched quantity must resync availability")
	}
}

func TestNewTransaction_Defaults(t *testing.T) {
	tx, err := NewTransaction(TransactionInput{FarmID: "f1", Type: "sale", Category: "eggs", Amount: 100, Status: "completed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.Date.IsZero() {
		t.Fatalf("zero input date must default to now")
	}

	explicit := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	tx, err = NewTransaction(TransactionInput{FarmID: "f1", Type: "sale", Category: "eggs", Amount: 100, Status: "completed", Date: explicit})
	if err != nil {
		t.Fatalf("create with date: %v", err)
	}
	if !tx.Date.Equal(explicit) {
		t.Fatalf("explicit date must survive: %v", tx.Date)
	}
}

func TestNewTransaction_RejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []float64{0, -5} {
		if _, err := NewTransaction(TransactionInput{FarmID: "f1", Type: "sale", Category: "eggs", Amount: amount, Status: "completed"}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("amount %v: expected invalid input, got %v", amount, err)
		}
	}
}

func TestBirdApply_StampsUpdatedAt(t *testing.T) {
	bird, err := NewBird(BirdInput{FarmID: "f1", Quantity: 50, Status: "healthy", BatchNumber: "b1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bird.UpdatedAt != nil {
		t.Fatalf("UpdatedAt must start nil")
	}

	quantity := 45
	status := "sick"
	if err := bird.Apply(BirdPatch{Quantity: &quantity, Status: &status}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if bird.Quantity != 45 || bird.Status != BirdSick {
		t.Fatalf("patch not applied: %+v", bird)
	}
	if bird.UpdatedAt == nil {
		t.Fatalf("expected UpdatedAt after patch")
	}

	bad := "zombie"
	if err := bird.Apply(BirdPatch{Status: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad status, got %v", err)
	}
}

func TestValidateInput_WrapsFieldErrors(t *testing.T) {
	err := ValidateInput(FarmInput{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
