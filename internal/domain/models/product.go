package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"poultryfarm/internal/domain"
)

// ProductType categorizes sellable farm output.
type ProductType string

const (
	ProductEggs   ProductType = "eggs"
	ProductMeat   ProductType = "meat"
	ProductChicks ProductType = "chicks"
	ProductManure ProductType = "manure"
)

// ParseProductType validates a raw type value.
func ParseProductType(s string) (ProductType, error) {
	switch ProductType(s) {
	case ProductEggs, ProductMeat, ProductChicks, ProductManure:
		return ProductType(s), nil
	default:
		return "", fmt.Errorf("%w: product type %q", domain.ErrInvalidInput, s)
	}
}

// ProductQuality grades sellable output.
type ProductQuality string

const (
	QualityPremium  ProductQuality = "premium"
	QualityStandard ProductQuality = "standard"
	QualityEconomy  ProductQuality = "economy"
)

// ParseProductQuality validates a raw quality value.
func ParseProductQuality(s string) (ProductQuality, error) {
	switch ProductQuality(s) {
	case QualityPremium, QualityStandard, QualityEconomy:
		return ProductQuality(s), nil
	default:
		return "", fmt.Errorf("%w: product quality %q", domain.ErrInvalidInput, s)
	}
}

// Product is a sellable stock line. Available is derived from Quantity
// and is never set by callers; SyncAvailability keeps the two in step.
type Product struct {
	ID        string         `bson:"_id" json:"id"`
	FarmID    string         `bson:"farm_id" json:"farmId"`
	Name      string         `bson:"name" json:"name"`
	Type      ProductType    `bson:"type" json:"type"`
	Quantity  int            `bson:"quantity" json:"quantity"`
	Price     float64        `bson:"price" json:"price"`
	Available bool           `bson:"available" json:"available"`
	Quality   ProductQuality `bson:"quality" json:"quality"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time     `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

func (p Product) Key() string { return p.ID }

// SyncAvailability recomputes the derived availability flag.
func (p *Product) SyncAvailability() { p.Available = p.Quantity > 0 }

// ProductInput carries every caller-settable field for product creation.
type ProductInput struct {
	FarmID   string  `json:"farmId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Type     string  `json:"type" validate:"required"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quality  string  `json:"quality" validate:"required"`
}

// NewProduct validates the input and materializes a product.
func NewProduct(in ProductInput) (*Product, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	typ, err := ParseProductType(in.Type)
	if err != nil {
		return nil, err
	}
	quality, err := ParseProductQuality(in.Quality)
	if err != nil {
		return nil, err
	}

	p := &Product{
		ID:        uuid.NewString(),
		FarmID:    in.FarmID,
		Name:      in.Name,
		Type:      typ,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Quality:   quality,
		CreatedAt: time.Now().UTC(),
	}
	p.SyncAvailability()
	return p, nil
}

// ProductPatch is a partial update; nil fields are left untouched.
// Availability is recomputed, not patched.
type ProductPatch struct {
	Name     *string  `json:"name"`
	Type     *string  `json:"type"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Quality  *string  `json:"quality"`
}

// Apply overwrites the patched fields, resyncs availability and stamps
// UpdatedAt.
func (p *Product) Apply(patch ProductPatch) error {
	if err := checkInput(patch); err != nil {
		return err
	}
	if patch.Type != nil {
		typ, err := ParseProductType(*patch.Type)
		if err != nil {
			return err
		}
		p.Type = typ
	}
	if patch.Quality != nil {
		quality, err := ParseProductQuality(*patch.Quality)
		if err != nil {
			return err
		}
		p.Quality = quality
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	p.SyncAvailability()

	now := time.Now().UTC()
	p.UpdatedAt = &now
	return nil
}
