package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"poultryfarm/internal/domain"
)

// TransactionType categorizes money movements.
type TransactionType string

const (
	TransactionSale       TransactionType = "sale"
	TransactionPurchase   TransactionType = "purchase"
	TransactionExpense    TransactionType = "expense"
	TransactionInvestment TransactionType = "investment"
)

// ParseTransactionType validates a raw type value.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionSale, TransactionPurchase, TransactionExpense, TransactionInvestment:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("%w: transaction type %q", domain.ErrInvalidInput, s)
	}
}

// TransactionStatus tracks settlement state.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
)

// ParseTransactionStatus validates a raw status value.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TransactionPending, TransactionCompleted, TransactionCancelled:
		return TransactionStatus(s), nil
	default:
		return "", fmt.Errorf("%w: transaction status %q", domain.ErrInvalidInput, s)
	}
}

// Transaction is a single money movement. Date is the accounting date,
// which may differ from CreatedAt when movements are logged late.
type Transaction struct {
	ID          string            `bson:"_id" json:"id"`
	FarmID      string            `bson:"farm_id" json:"farmId"`
	Type        TransactionType   `bson:"type" json:"type"`
	Category    string            `bson:"category" json:"category"`
	Amount      float64           `bson:"amount" json:"amount"`
	Description string            `bson:"description" json:"description"`
	Status      TransactionStatus `bson:"status" json:"status"`
	Date        time.Time         `bson:"date" json:"date"`
	CreatedAt   time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time        `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

func (t Transaction) Key() string { return t.ID }

// TransactionInput carries every caller-settable field. A zero Date
// defaults to the creation time.
type TransactionInput struct {
	FarmID      string    `json:"farmId" validate:"required"`
	Type        string    `json:"type" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	Description string    `json:"description"`
	Status      string    `json:"status" validate:"required"`
	Date        time.Time `json:"date"`
}

// NewTransaction validates the input and materializes a transaction.
func NewTransaction(in TransactionInput) (*Transaction, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	typ, err := ParseTransactionType(in.Type)
	if err != nil {
		return nil, err
	}
	status, err := ParseTransactionStatus(in.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	return &Transaction{
		ID:          uuid.NewString(),
		FarmID:      in.FarmID,
		Type:        typ,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		Status:      status,
		Date:        date,
		CreatedAt:   now,
	}, nil
}

// TransactionPatch is a partial update; nil fields are left untouched.
type TransactionPatch struct {
	Category    *string    `json:"category"`
	Amount      *float64   `json:"amount" validate:"omitempty,gt=0"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Date        *time.Time `json:"date"`
}

// Apply overwrites the patched fields and stamps UpdatedAt.
func (t *Transaction) Apply(p TransactionPatch) error {
	if err := checkInput(p); err != nil {
		return err
	}
	if p.Status != nil {
		status, err := ParseTransactionStatus(*p.Status)
		if err != nil {
			return err
		}
		t.Status = status
	}

	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}

	now := time.Now().UTC()
	t.UpdatedAt = &now
	return nil
}
