package models

import (
	"time"

	id "fundready/pkg/domain"
)

// GroupType enumerates the five per-business document buckets. All five are
// created together when the business profile is created and live for the
// business's whole life.
type GroupType string

const (
	GroupBSPnL        GroupType = "BS_PNL"
	GroupSanction     GroupType = "SANCTION"
	GroupProfile      GroupType = "PROFILE"
	GroupKYCDirector  GroupType = "KYC_DIRECTOR"
	GroupITRDirector  GroupType = "ITR_DIRECTOR"
)

// AllGroupTypes lists the buckets in creation order.
var AllGroupTypes = []GroupType{
	GroupBSPnL,
	GroupSanction,
	GroupProfile,
	GroupKYCDirector,
	GroupITRDirector,
}

// Valid reports whether the group type is one of the five buckets.
func (t GroupType) Valid() bool {
	for _, known := range AllGroupTypes {
		if t == known {
			return true
		}
	}
	return false
}

// GroupStatus is the derived upload state of a bucket.
type GroupStatus string

const (
	StatusNotStarted GroupStatus = "NOT_STARTED"
	StatusInProgress GroupStatus = "IN_PROGRESS"
	StatusComplete   GroupStatus = "COMPLETE"
)

// CompleteThreshold is the document count at which a bucket is COMPLETE.
// A single global threshold applies to every bucket type.
const CompleteThreshold = 3

// StatusForCount derives a bucket's status from its document count.
// Boundaries are exact: 0 is NOT_STARTED, 1 to 2 is IN_PROGRESS, 3 or more
// is COMPLETE.
func StatusForCount(count int) GroupStatus {
	switch {
	case count == 0:
		return StatusNotStarted
	case count < CompleteThreshold:
		return StatusInProgress
	default:
		return StatusComplete
	}
}

// DocumentGroup is one bucket of uploads for a business. Exactly one group
// exists per (business, type) pair.
type DocumentGroup struct {
	ID         id.DocumentGroupID `json:"id"`
	BusinessID id.BusinessID      `json:"business_id"`
	Type       GroupType          `json:"type"`
	Status     GroupStatus        `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// NewGroups builds the five default buckets for a freshly created business,
// all NOT_STARTED.
func NewGroups(businessID id.BusinessID, now time.Time) []DocumentGroup {
	groups := make([]DocumentGroup, 0, len(AllGroupTypes))
	for _, groupType := range AllGroupTypes {
		groups = append(groups, DocumentGroup{
			ID:         id.NewDocumentGroupID(),
			BusinessID: businessID,
			Type:       groupType,
			Status:     StatusNotStarted,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return groups
}

// Document is the metadata record for one uploaded file. The bytes live
// behind FileURL; only existence and count matter to scoring.
type Document struct {
	ID            id.DocumentID      `json:"id"`
	GroupID       id.DocumentGroupID `json:"document_group_id"`
	FileName      string             `json:"file_name"`
	FileURL       string             `json:"file_url"`
	MIMEType      string             `json:"mime_type"`
	FileSizeBytes int64              `json:"file_size_bytes"`
	UploadedAt    time.Time          `json:"uploaded_at"`
}
