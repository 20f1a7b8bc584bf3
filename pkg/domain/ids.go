// Package domain holds the typed identifiers shared across aggregates.
//
// Each aggregate gets its own UUID-backed type so the compiler rejects a
// DirectorID where a BusinessID is expected. Parse helpers enforce the
// invariant that IDs are valid, non-empty, non-nil UUIDs at trust boundaries
// (HTTP path params, JWT claims).
package domain

import (
	"github.com/google/uuid"

	dErrors "fundready/pkg/domain-errors"
)

type (
	// UserID identifies an account holder.
	UserID uuid.UUID
	// BusinessID identifies a business profile.
	BusinessID uuid.UUID
	// DirectorID identifies a director attached to a business.
	DirectorID uuid.UUID
	// DocumentGroupID identifies one of the five per-business document buckets.
	DocumentGroupID uuid.UUID
	// DocumentID identifies an uploaded document's metadata record.
	DocumentID uuid.UUID
	// FundingUtilityID identifies a funding (loan) request.
	FundingUtilityID uuid.UUID
)

func (id UserID) String() string           { return uuid.UUID(id).String() }
func (id BusinessID) String() string       { return uuid.UUID(id).String() }
func (id DirectorID) String() string       { return uuid.UUID(id).String() }
func (id DocumentGroupID) String() string  { return uuid.UUID(id).String() }
func (id DocumentID) String() string       { return uuid.UUID(id).String() }
func (id FundingUtilityID) String() string { return uuid.UUID(id).String() }

// MarshalText renders each ID as its canonical UUID string, so JSON bodies
// carry "id": "..." rather than the raw byte array.
func (id UserID) MarshalText() ([]byte, error)           { return []byte(id.String()), nil }
func (id BusinessID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id DirectorID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id DocumentGroupID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id DocumentID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id FundingUtilityID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *BusinessID) UnmarshalText(text []byte) error {
	parsed, err := ParseBusinessID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DirectorID) UnmarshalText(text []byte) error {
	parsed, err := ParseDirectorID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DocumentGroupID) UnmarshalText(text []byte) error {
	parsed, err := ParseDocumentGroupID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DocumentID) UnmarshalText(text []byte) error {
	parsed, err := ParseDocumentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *FundingUtilityID) UnmarshalText(text []byte) error {
	parsed, err := ParseFundingUtilityID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id UserID) IsNil() bool           { return uuid.UUID(id) == uuid.Nil }
func (id BusinessID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id DirectorID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id DocumentGroupID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id FundingUtilityID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewBusinessID returns a fresh random BusinessID.
func NewBusinessID() BusinessID { return BusinessID(uuid.New()) }

// NewDirectorID returns a fresh random DirectorID.
func NewDirectorID() DirectorID { return DirectorID(uuid.New()) }

// NewDocumentGroupID returns a fresh random DocumentGroupID.
func NewDocumentGroupID() DocumentGroupID { return DocumentGroupID(uuid.New()) }

// NewDocumentID returns a fresh random DocumentID.
func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

// NewFundingUtilityID returns a fresh random FundingUtilityID.
func NewFundingUtilityID() FundingUtilityID { return FundingUtilityID(uuid.New()) }

func parseUUID(raw, what string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" id is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what+" id")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" id cannot be nil")
	}
	return parsed, nil
}

// ParseUserID parses and validates a user ID string.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw, "user")
	return UserID(parsed), err
}

// ParseBusinessID parses and validates a business ID string.
func ParseBusinessID(raw string) (BusinessID, error) {
	parsed, err := parseUUID(raw, "business")
	return BusinessID(parsed), err
}

// ParseDirectorID parses and validates a director ID string.
func ParseDirectorID(raw string) (DirectorID, error) {
	parsed, err := parseUUID(raw, "director")
	return DirectorID(parsed), err
}

// ParseDocumentGroupID parses and validates a document group ID string.
func ParseDocumentGroupID(raw string) (DocumentGroupID, error) {
	parsed, err := parseUUID(raw, "document group")
	return DocumentGroupID(parsed), err
}

// ParseDocumentID parses and validates a document ID string.
func ParseDocumentID(raw string) (DocumentID, error) {
	parsed, err := parseUUID(raw, "document")
	return DocumentID(parsed), err
}

// ParseFundingUtilityID parses and validates a funding utility ID string.
func ParseFundingUtilityID(raw string) (FundingUtilityID, error) {
	parsed, err := parseUUID(raw, "funding utility")
	return FundingUtilityID(parsed), err
}
