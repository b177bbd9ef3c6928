package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"poultryfarm/internal/domain"
)

// InventoryType categorizes stocked supplies.
type InventoryType string

const (
	InventoryFeed      InventoryType = "feed"
	InventoryMedicine  InventoryType = "medicine"
	InventoryEquipment InventoryType = "equipment"
	InventorySupplies  InventoryType = "supplies"
)

// ParseInventoryType validates a raw type value.
func ParseInventoryType(s string) (InventoryType, error) {
	switch InventoryType(s) {
	case InventoryFeed, InventoryMedicine, InventoryEquipment, InventorySupplies:
		return InventoryType(s), nil
	default:
		return "", fmt.Errorf("%w: inventory type %q", domain.ErrInvalidInput, s)
	}
}

// InventoryItem is a stocked supply line. MinimumThreshold is the
// reorder point used by the low-stock queries.
type InventoryItem struct {
	ID               string        `bson:"_id" json:"id"`
	FarmID           string        `bson:"farm_id" json:"farmId"`
	Name             string        `bson:"name" json:"name"`
	Type             InventoryType `bson:"type" json:"type"`
	Quantity         float64       `bson:"quantity" json:"quantity"`
	Unit             string        `bson:"unit" json:"unit"`
	MinimumThreshold float64       `bson:"minimum_threshold" json:"minimumThreshold"`
	Cost             float64       `bson:"cost" json:"cost"`
	CreatedAt        time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt        *time.Time    `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

func (i InventoryItem) Key() string { return i.ID }

// InventoryInput carries every caller-settable field for item creation.
type InventoryInput struct {
	FarmID           string  `json:"farmId" validate:"required"`
	Name             string  `json:"name" validate:"required"`
	Type             string  `json:"type" validate:"required"`
	Quantity         float64 `json:"quantity" validate:"gte=0"`
	Unit             string  `json:"unit"`
	MinimumThreshold float64 `json:"minimumThreshold" validate:"gte=0"`
	Cost             float64 `json:"cost" validate:"gte=0"`
}

// NewInventoryItem validates the input and materializes an item.
func NewInventoryItem(in InventoryInput) (*InventoryItem, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	typ, err := ParseInventoryType(in.Type)
	if err != nil {
		return nil, err
	}

	return &InventoryItem{
		ID:               uuid.NewString(),
		FarmID:           in.FarmID,
		Name:             in.Name,
		Type:             typ,
		Quantity:         in.Quantity,
		Unit:             in.Unit,
		MinimumThreshold: in.MinimumThreshold,
		Cost:             in.Cost,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// InventoryPatch is a partial update; nil fields are left untouched.
type InventoryPatch struct {
	Name             *string  `json:"name"`
	Type             *string  `json:"type"`
	Quantity         *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Unit             *string  `json:"unit"`
	MinimumThreshold *float64 `json:"minimumThreshold" validate:"omitempty,gte=0"`
	Cost             *float64 `json:"cost" validate:"omitempty,gte=0"`
}

// Apply overwrites the patched fields and stamps UpdatedAt.
func (i *InventoryItem) Apply(p InventoryPatch) error {
	if err := checkInput(p); err != nil {
		return err
	}
	if p.Type != nil {
		typ, err := ParseInventoryType(*p.Type)
		if err != nil {
			return err
		}
		i.Type = typ
	}

	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		i.Unit = *p.Unit
	}
	if p.MinimumThreshold != nil {
		i.MinimumThreshold = *p.MinimumThreshold
	}
	if p.Cost != nil {
		i.Cost = *p.Cost
	}

	now := time.Now().UTC()
	i.UpdatedAt = &now
	return nil
}
