package models

import (
	"time"

	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// EntityType is the legal form of the business.
type EntityType string

const (
	EntitySoleProprietor EntityType = "SOLE_PROPRIETOR"
	EntityPartnership    EntityType = "PARTNERSHIP"
	EntityPrivateLimited EntityType = "PRIVATE_LIMITED"
	EntityLLP            EntityType = "LLP"
	EntityPublicLimited  EntityType = "PUBLIC_LIMITED"
)

// Valid reports whether the entity type is one of the known legal forms.
func (e EntityType) Valid() bool {
	switch e {
	case EntitySoleProprietor, EntityPartnership, EntityPrivateLimited, EntityLLP, EntityPublicLimited:
		return true
	}
	return false
}

// Business is the aggregate root for a loan-readiness profile.
//
// Invariants:
//   - LegalName, EntityType, Sector, City, State are non-empty
//   - EntityType is one of the enumerated legal forms
//   - Exactly one business per owner
//   - CompletionPercent is a cached value, always the last output of the
//     scoring engine for this business; it is advisory and recomputable
//     from scratch at any time
//
// Optional attributes (BusinessName, PAN, GSTIN, Udyam, BriefDescription)
// are "present" when non-empty. The scoring rules check emptiness exactly;
// whitespace-only strings count as present.
type Business struct {
	ID                id.BusinessID `json:"id"`
	OwnerID           id.UserID     `json:"owner_id"`
	LegalName         string        `json:"legal_name"`
	BusinessName      string        `json:"business_name,omitempty"`
	EntityType        EntityType    `json:"entity_type"`
	PAN               string        `json:"pan,omitempty"`
	GSTIN             string        `json:"gstin,omitempty"`
	Udyam             string        `json:"udyam,omitempty"`
	Sector            string        `json:"sector"`
	City              string        `json:"city"`
	State             string        `json:"state"`
	BriefDescription  string        `json:"brief_description,omitempty"`
	CompletionPercent int           `json:"profile_completion_percent"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// HasCoreInfo reports whether the five required profile fields are all set.
// This is the businessInfo section's full-credit condition.
func (b *Business) HasCoreInfo() bool {
	return b.LegalName != "" &&
		b.EntityType != "" &&
		b.Sector != "" &&
		b.City != "" &&
		b.State != ""
}

// NewBusiness constructs a business profile, enforcing field invariants.
func NewBusiness(businessID id.BusinessID, ownerID id.UserID, fields Fields, now time.Time) (*Business, error) {
	if fields.LegalName == "" || fields.Sector == "" || fields.City == "" || fields.State == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput,
			"missing required fields: legal_name, entity_type, sector, city, state")
	}
	if !fields.EntityType.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid entity_type")
	}
	return &Business{
		ID:               businessID,
		OwnerID:          ownerID,
		LegalName:        fields.LegalName,
		BusinessName:     fields.BusinessName,
		EntityType:       fields.EntityType,
		PAN:              fields.PAN,
		GSTIN:            fields.GSTIN,
		Udyam:            fields.Udyam,
		Sector:           fields.Sector,
		City:             fields.City,
		State:            fields.State,
		BriefDescription: fields.BriefDescription,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Fields carries the caller-settable attributes of a business profile.
type Fields struct {
	LegalName        string     `json:"legal_name"`
	BusinessName     string     `json:"business_name"`
	EntityType       EntityType `json:"entity_type"`
	PAN              string     `json:"pan"`
	GSTIN            string     `json:"gstin"`
	Udyam            string     `json:"udyam"`
	Sector           string     `json:"sector"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	BriefDescription string     `json:"brief_description"`
}

// Update holds a partial update; nil pointers leave fields untouched.
// Owner and ID are never updatable.
type Update struct {
	LegalName        *string     `json:"legal_name"`
	BusinessName     *string     `json:"business_name"`
	EntityType       *EntityType `json:"entity_type"`
	PAN              *string     `json:"pan"`
	GSTIN            *string     `json:"gstin"`
	Udyam            *string     `json:"udyam"`
	Sector           *string     `json:"sector"`
	City             *string     `json:"city"`
	State            *string     `json:"state"`
	BriefDescription *string     `json:"brief_description"`
}

// Apply merges the update into the business, enforcing invariants on the
// resulting state. Required fields may be changed but not cleared.
func (b *Business) Apply(u Update, now time.Time) error {
	next := *b
	if u.LegalName != nil {
		next.LegalName = *u.LegalName
	}
	if u.BusinessName != nil {
		next.BusinessName = *u.BusinessName
	}
	if u.EntityType != nil {
		next.EntityType = *u.EntityType
	}
	if u.PAN != nil {
		next.PAN = *u.PAN
	}
	if u.GSTIN != nil {
		next.GSTIN = *u.GSTIN
	}
	if u.Udyam != nil {
		next.Udyam = *u.Udyam
	}
	if u.Sector != nil {
		next.Sector = *u.Sector
	}
	if u.City != nil {
		next.City = *u.City
	}
	if u.State != nil {
		next.State = *u.State
	}
	if u.BriefDescription != nil {
		next.BriefDescription = *u.BriefDescription
	}

	if next.LegalName == "" || next.Sector == "" || next.City == "" || next.State == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "required fields cannot be cleared")
	}
	if !next.EntityType.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid entity_type")
	}

	next.UpdatedAt = now
	*b = next
	return nil
}
