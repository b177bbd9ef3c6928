package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"poultryfarm/internal/domain"
)

// HealthRecordType categorizes veterinary interventions.
type HealthRecordType string

const (
	HealthVaccination HealthRecordType = "vaccination"
	HealthMedication  HealthRecordType = "medication"
	HealthInspection  HealthRecordType = "inspection"
	HealthDisease     HealthRecordType = "disease"
)

// ParseHealthRecordType validates a raw type value.
func ParseHealthRecordType(s string) (HealthRecordType, error) {
	switch HealthRecordType(s) {
	case HealthVaccination, HealthMedication, HealthInspection, HealthDisease:
		return HealthRecordType(s), nil
	default:
		return "", fmt.Errorf("%w: health record type %q", domain.ErrInvalidInput, s)
	}
}

// HealthRecord logs a veterinary event against a bird batch. An empty
// Treatment on a disease record marks the disease as still active.
type HealthRecord struct {
	ID            string           `bson:"_id" json:"id"`
	FarmID        string           `bson:"farm_id" json:"farmId"`
	BatchNumber   string           `bson:"batch_number" json:"batchNumber"`
	Type          HealthRecordType `bson:"type" json:"type"`
	Description   string           `bson:"description" json:"description"`
	AffectedCount int              `bson:"affected_count" json:"affectedCount"`
	Treatment     string           `bson:"treatment,omitempty" json:"treatment,omitempty"`
	NextFollowUp  *time.Time       `bson:"next_follow_up,omitempty" json:"nextFollowUp,omitempty"`
	CreatedAt     time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt     *time.Time       `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

func (h HealthRecord) Key() string { return h.ID }

// HealthRecordInput carries every caller-settable field.
type HealthRecordInput struct {
	FarmID        string     `json:"farmId" validate:"required"`
	BatchNumber   string     `json:"batchNumber" validate:"required"`
	Type          string     `json:"type" validate:"required"`
	Description   string     `json:"description"`
	AffectedCount int        `json:"affectedCount" validate:"gte=0"`
	Treatment     string     `json:"treatment"`
	NextFollowUp  *time.Time `json:"nextFollowUp"`
}

// NewHealthRecord validates the input and materializes a record.
func NewHealthRecord(in HealthRecordInput) (*HealthRecord, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	typ, err := ParseHealthRecordType(in.Type)
	if err != nil {
		return nil, err
	}

	return &HealthRecord{
		ID:            uuid.NewString(),
		FarmID:        in.FarmID,
		BatchNumber:   in.BatchNumber,
		Type:          typ,
		Description:   in.Description,
		AffectedCount: in.AffectedCount,
		Treatment:     in.Treatment,
		NextFollowUp:  in.NextFollowUp,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// HealthRecordPatch is a partial update; nil fields are left untouched.
type HealthRecordPatch struct {
	Description   *string    `json:"description"`
	AffectedCount *int       `json:"affectedCount" validate:"omitempty,gte=0"`
	Treatment     *string    `json:"treatment"`
	NextFollowUp  *time.Time `json:"nextFollowUp"`
}

// Apply overwrites the patched fields and stamps UpdatedAt.
func (h *HealthRecord) Apply(p HealthRecordPatch) error {
	if err := checkInput(p); err != nil {
		return err
	}

	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.AffectedCount != nil {
		h.AffectedCount = *p.AffectedCount
	}
	if p.Treatment != nil {
		h.Treatment = *p.Treatment
	}
	if p.NextFollowUp != nil {
		h.NextFollowUp = p.NextFollowUp
	}

	now := time.Now().UTC()
	h.UpdatedAt = &now
	return nil
}
