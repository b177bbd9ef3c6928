package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"poultryfarm/internal/domain"
)

// Farm represents a single production site. CurrentStock counts birds
// physically on site and may never exceed Capacity.
type Farm struct {
	ID            string     `bson:"_id" json:"id"`
	OwnerID       string     `bson:"owner_id" json:"ownerId"`
	Name          string     `bson:"name" json:"name"`
	Location      string     `bson:"location" json:"location"`
	Capacity      int        `bson:"capacity" json:"capacity"`
	CurrentStock  int        `bson:"current_stock" json:"currentStock"`
	EmployeeCount int        `bson:"employee_count" json:"employeeCount"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt     *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Key returns the store identifier.
func (f Farm) Key() string { return f.ID }

// FarmInput carries every caller-settable field for farm creation.
type FarmInput struct {
	OwnerID       string `json:"ownerId" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Location      string `json:"location"`
	Capacity      int    `json:"capacity" validate:"gte=0"`
	CurrentStock  int    `json:"currentStock" validate:"gte=0"`
	EmployeeCount int    `json:"employeeCount" validate:"gte=0"`
}

// NewFarm validates the input and materializes a farm with a fresh id
// and creation timestamp.
func NewFarm(in FarmInput) (*Farm, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if in.CurrentStock > in.Capacity {
		return nil, fmt.Errorf("%w: current stock %d exceeds capacity %d", domain.ErrInvalidInput, in.CurrentStock, in.Capacity)
	}

	return &Farm{
		ID:            uuid.NewString(),
		OwnerID:       in.OwnerID,
		Name:          in.Name,
		Location:      in.Location,
		Capacity:      in.Capacity,
		CurrentStock:  in.CurrentStock,
		EmployeeCount: in.EmployeeCount,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// FarmPatch is a partial update; nil fields are left untouched.
type FarmPatch struct {
	Name          *string `json:"name"`
	Location      *string `json:"location"`
	Capacity      *int    `json:"capacity" validate:"omitempty,gte=0"`
	CurrentStock  *int    `json:"currentStock" validate:"omitempty,gte=0"`
	EmployeeCount *int    `json:"employeeCount" validate:"omitempty,gte=0"`
}

// Apply overwrites the patched fields and stamps UpdatedAt. The
// stock-versus-capacity invariant is checked against the merged state.
func (f *Farm) Apply(p FarmPatch) error {
	if err := checkInput(p); err != nil {
		return err
	}

	capacity := f.Capacity
	if p.Capacity != nil {
		capacity = *p.Capacity
	}
	stock := f.CurrentStock
	if p.CurrentStock != nil {
		stock = *p.CurrentStock
	}
	if stock > capacity {
		return fmt.Errorf("%w: current stock %d exceeds capacity %d", domain.ErrInvalidInput, stock, capacity)
	}

	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	f.Capacity = capacity
	f.CurrentStock = stock
	if p.EmployeeCount != nil {
		f.EmployeeCount = *p.EmployeeCount
	}

	now := time.Now().UTC()
	f.UpdatedAt = &now
	return nil
}
