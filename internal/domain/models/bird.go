package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"poultryfarm/internal/domain"
)

// BirdStatus tracks the lifecycle of a bird batch.
type BirdStatus string

const (
	BirdHealthy  BirdStatus = "healthy"
	BirdSick     BirdStatus = "sick"
	BirdSold     BirdStatus = "sold"
	BirdDeceased BirdStatus = "deceased"
)

// ParseBirdStatus validates a raw status value.
func ParseBirdStatus(s string) (BirdStatus, error) {
	switch BirdStatus(s) {
	case BirdHealthy, BirdSick, BirdSold, BirdDeceased:
		return BirdStatus(s), nil
	default:
		return "", fmt.Errorf("%w: bird status %q", domain.ErrInvalidInput, s)
	}
}

// Bird is a batch of birds of the same age and origin, not an
// individual animal. Weight is the average per-bird weight in kg and
// FeedConsumption the batch total in kg.
type Bird struct {
	ID              string     `bson:"_id" json:"id"`
	FarmID          string     `bson:"farm_id" json:"farmId"`
	Breed           string     `bson:"breed" json:"breed"`
	Quantity        int        `bson:"quantity" json:"quantity"`
	Age             int        `bson:"age" json:"age"`
	Status          BirdStatus `bson:"status" json:"status"`
	Weight          float64    `bson:"weight" json:"weight"`
	FeedConsumption float64    `bson:"feed_consumption" json:"feedConsumption"`
	BatchNumber     string     `bson:"batch_number" json:"batchNumber"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

func (b Bird) Key() string { return b.ID }

// BirdInput carries every caller-settable field for batch creation.
type BirdInput struct {
	FarmID          string  `json:"farmId" validate:"required"`
	Breed           string  `json:"breed"`
	Quantity        int     `json:"quantity" validate:"gte=0"`
	Age             int     `json:"age" validate:"gte=0"`
	Status          string  `json:"status" validate:"required"`
	Weight          float64 `json:"weight" validate:"gte=0"`
	FeedConsumption float64 `json:"feedConsumption" validate:"gte=0"`
	BatchNumber     string  `json:"batchNumber" validate:"required"`
}

// NewBird validates the input and materializes a bird batch.
func NewBird(in BirdInput) (*Bird, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	status, err := ParseBirdStatus(in.Status)
	if err != nil {
		return nil, err
	}

	return &Bird{
		ID:              uuid.NewString(),
		FarmID:          in.FarmID,
		Breed:           in.Breed,
		Quantity:        in.Quantity,
		Age:             in.Age,
		Status:          status,
		Weight:          in.Weight,
		FeedConsumption: in.FeedConsumption,
		BatchNumber:     in.BatchNumber,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// BirdPatch is a partial update; nil fields are left untouched.
type BirdPatch struct {
	Breed           *string  `json:"breed"`
	Quantity        *int     `json:"quantity" validate:"omitempty,gte=0"`
	Age             *int     `json:"age" validate:"omitempty,gte=0"`
	Status          *string  `json:"status"`
	Weight          *float64 `json:"weight" validate:"omitempty,gte=0"`
	FeedConsumption *float64 `json:"feedConsumption" validate:"omitempty,gte=0"`
	BatchNumber     *string  `json:"batchNumber"`
}

// Apply overwrites the patched fields and stamps UpdatedAt.
func (b *Bird) Apply(p BirdPatch) error {
	if err := checkInput(p); err != nil {
		return err
	}
	if p.Status != nil {
		status, err := ParseBirdStatus(*p.Status)
		if err != nil {
			return err
		}
		b.Status = status
	}

	if p.Breed != nil {
		b.Breed = *p.Breed
	}
	if p.Quantity != nil {
		b.Quantity = *p.Quantity
	}
	if p.Age != nil {
		b.Age = *p.Age
	}
	if p.Weight != nil {
		b.Weight = *p.Weight
	}
	if p.FeedConsumption != nil {
		b.FeedConsumption = *p.FeedConsumption
	}
	if p.BatchNumber != nil {
		b.BatchNumber = *p.BatchNumber
	}

	now := time.Now().UTC()
	b.UpdatedAt = &now
	return nil
}
