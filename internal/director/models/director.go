package models

import (
	"time"

	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// Director is a company officer registered under a business.
//
// Invariant: a director contributes to KYC completeness only when both PAN
// and AadhaarNumber are present (non-empty).
type Director struct {
	ID            id.DirectorID `json:"id"`
	BusinessID    id.BusinessID `json:"business_id"`
	Name          string        `json:"name"`
	DOB           string        `json:"dob,omitempty"`
	PAN           string        `json:"pan,omitempty"`
	AadhaarNumber string        `json:"aadhaar_number,omitempty"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Address       string        `json:"address,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// HasCompleteKYC reports whether the identity fields needed for KYC are set.
func (d *Director) HasCompleteKYC() bool {
	return d.PAN != "" && d.AadhaarNumber != ""
}

// NewDirector constructs a director, requiring only a name; identity fields
// may be filled in later as onboarding progresses.
func NewDirector(directorID id.DirectorID, businessID id.BusinessID, fields Fields, now time.Time) (*Director, error) {
	if fields.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "director name is required")
	}
	return &Director{
		ID:            directorID,
		BusinessID:    businessID,
		Name:          fields.Name,
		DOB:           fields.DOB,
		PAN:           fields.PAN,
		AadhaarNumber: fields.AadhaarNumber,
		Email:         fields.Email,
		Phone:         fields.Phone,
		Address:       fields.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Fields carries the caller-settable attributes of a director.
type Fields struct {
	Name          string `json:"name"`
	DOB           string `json:"dob"`
	PAN           string `json:"pan"`
	AadhaarNumber string `json:"aadhaar_number"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// Update holds a partial update; nil pointers leave fields untouched.
type Update struct {
	Name          *string `json:"name"`
	DOB           *string `json:"dob"`
	PAN           *string `json:"pan"`
	AadhaarNumber *string `json:"aadhaar_number"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

// Apply merges the update into the director. The name may be changed but
// not cleared.
func (d *Director) Apply(u Update, now time.Time) error {
	if u.Name != nil {
		if *u.Name == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "director name cannot be cleared")
		}
		d.Name = *u.Name
	}
	if u.DOB != nil {
		d.DOB = *u.DOB
	}
	if u.PAN != nil {
		d.PAN = *u.PAN
	}
	if u.AadhaarNumber != nil {
		d.AadhaarNumber = *u.AadhaarNumber
	}
	if u.Email != nil {
		d.Email = *u.Email
	}
	if u.Phone != nil {
		d.Phone = *u.Phone
	}
	if u.Address != nil {
		d.Address = *u.Address
	}
	d.UpdatedAt = now
	return nil
}
