package models

import (
	"time"

	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// Type is the kind of funding requested.
type Type string

const (
	TypeTermLoan       Type = "TERM_LOAN"
	TypeWorkingCapital Type = "WORKING_CAPITAL"
	TypeAssetFinance   Type = "ASSET_FINANCE"
	TypeSchemeLoan     Type = "SCHEME_LOAN"
)

// Valid reports whether the funding type is one of the known kinds.
func (t Type) Valid() bool {
	switch t {
	case TypeTermLoan, TypeWorkingCapital, TypeAssetFinance, TypeSchemeLoan:
		return true
	}
	return false
}

// Status is the lifecycle state of a funding request.
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
)

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo encodes the lifecycle:
// DRAFT -> SUBMITTED -> UNDER_REVIEW -> APPROVED | REJECTED.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusSubmitted
	case StatusSubmitted:
		return next == StatusUnderReview
	case StatusUnderReview:
		return next == StatusApproved || next == StatusRejected
	}
	return false
}

// Utility is one funding (loan) request under a business.
type Utility struct {
	ID              id.FundingUtilityID `json:"id"`
	BusinessID      id.BusinessID       `json:"business_id"`
	Type            Type                `json:"type"`
	Status          Status              `json:"status"`
	AmountRequested int64               `json:"amount_requested"`
	TenureMonths    int                 `json:"tenure_months,omitempty"`
	Purpose         string              `json:"purpose,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// Fields carries the caller-settable attributes of a funding request.
type Fields struct {
	Type            Type   `json:"type"`
	AmountRequested int64  `json:"amount_requested"`
	TenureMonths    int    `json:"tenure_months"`
	Purpose         string `json:"purpose"`
}

// NewUtility constructs a draft funding request, enforcing field invariants.
func NewUtility(utilityID id.FundingUtilityID, businessID id.BusinessID, fields Fields, now time.Time) (*Utility, error) {
	if !fields.Type.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid funding type")
	}
	if fields.AmountRequested <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "amount_requested must be positive")
	}
	if fields.TenureMonths < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenure_months cannot be negative")
	}
	return &Utility{
		ID:              utilityID,
		BusinessID:      businessID,
		Type:            fields.Type,
		Status:          StatusDraft,
		AmountRequested: fields.AmountRequested,
		TenureMonths:    fields.TenureMonths,
		Purpose:         fields.Purpose,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Transition moves the request to the next lifecycle state.
func (u *Utility) Transition(next Status, now time.Time) error {
	if !next.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid funding status")
	}
	if !u.Status.CanTransitionTo(next) {
		return dErrors.Newf(dErrors.CodeConflict, "cannot move funding request from %s to %s", u.Status, next)
	}
	u.Status = next
	u.UpdatedAt = now
	return nil
}
