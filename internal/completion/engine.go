// Package completion scores how loan-ready a business profile is.
//
// The engine is pure domain logic - no I/O, no side effects. It aggregates
// three kinds of signals (business field presence, document group upload
// status, director KYC completeness) into a weighted 0-100 percentage, a
// per-section breakdown, a qualitative status message, the fundability gate,
// and remediation guidance. The surrounding Service owns fetching and
// persisting; the functions here receive everything as arguments.
package completion

import (
	"bytes"
	"encoding/json"
	"fmt"

	bizmodels "fundready/internal/business/models"
	dirmodels "fundready/internal/director/models"
	docmodels "fundready/internal/document/models"
)

// Section identifies one of the six scored categories. The order is fixed
// and drives next-step emission.
type Section int

const (
	SectionBusinessInfo Section = iota
	SectionFinancials
	SectionSanctions
	SectionBusinessProfile
	SectionKYCDirectors
	SectionITRDirectors

	numSections
)

// sectionKeys are the JSON field names, matching the public API shape.
var sectionKeys = [numSections]string{
	"businessInfo",
	"financials",
	"sanctions",
	"businessProfile",
	"kycDirectors",
	"itrDirectors",
}

// sectionWeights encode the relative importance a lender places on each
// artifact category. They sum to 100.
var sectionWeights = [numSections]int{10, 20, 20, 10, 20, 20}

// Sections lists all sections in scoring order.
func Sections() []Section {
	out := make([]Section, numSections)
	for i := range out {
		out[i] = Section(i)
	}
	return out
}

func (s Section) Key() string { return sectionKeys[s] }

func (s Section) Weight() int { return sectionWeights[s] }

func (s Section) String() string { return sectionKeys[s] }

// descriptionMinLength is the brief_description length above which the
// businessProfile section earns full credit without uploads.
const descriptionMinLength = 50

// FundableThreshold is the completion percentage gating funding requests.
const FundableThreshold = 70

// SectionScore is one section's contribution to the breakdown.
//
// Completed mirrors the full-credit condition exactly and drives next-step
// guidance; Percentage carries partial credit and drives the total score.
// The two are deliberately independent: an IN_PROGRESS bucket earns half
// weight while remaining not-completed.
type SectionScore struct {
	Weight     int  `json:"weight"`
	Completed  bool `json:"completed"`
	Percentage int  `json:"percentage"`
}

// Breakdown is the per-section scoring snapshot. It is derived on demand and
// never persisted; indexing by Section keeps iteration structurally
// exhaustive.
type Breakdown [numSections]SectionScore

// Score sums the section percentages. Weights naturally sum to 100; the cap
// is a defensive upper bound.
func (b Breakdown) Score() int {
	total := 0
	for _, section := range b {
		total += section.Percentage
	}
	if total > 100 {
		return 100
	}
	return total
}

// AllComplete reports whether every section met its full-credit condition.
func (b Breakdown) AllComplete() bool {
	for _, section := range b {
		if !section.Completed {
			return false
		}
	}
	return true
}

// MarshalJSON renders the breakdown as an object keyed by section name,
// preserving section order.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, section := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", sectionKeys[i])
		encoded, err := json.Marshal(section)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the keyed-object form produced by MarshalJSON.
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	var raw map[string]SectionScore
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, key := range sectionKeys {
		if section, ok := raw[key]; ok {
			b[i] = section
		}
	}
	return nil
}

// ComputeBreakdown applies the scoring rules to a snapshot of a business,
// its document groups, and its directors. Pure function: recomputing on
// unchanged inputs yields identical output.
func ComputeBreakdown(business *bizmodels.Business, groups []docmodels.DocumentGroup, directors []dirmodels.Director) Breakdown {
	byType := make(map[docmodels.GroupType]docmodels.GroupStatus, len(groups))
	for _, group := range groups {
		byType[group.Type] = group.Status
	}

	var b Breakdown
	for i := range b {
		b[i].Weight = sectionWeights[i]
	}

	// businessInfo: binary on the five required fields.
	if business.HasCoreInfo() {
		b[SectionBusinessInfo].Completed = true
		b[SectionBusinessInfo].Percentage = b[SectionBusinessInfo].Weight
	}

	// financials and sanctions: full weight on COMPLETE, half on IN_PROGRESS.
	b[SectionFinancials] = uploadSectionScore(byType[docmodels.GroupBSPnL], b[SectionFinancials].Weight)
	b[SectionSanctions] = uploadSectionScore(byType[docmodels.GroupSanction], b[SectionSanctions].Weight)

	// businessProfile: a long enough description substitutes for uploads.
	profileStatus := byType[docmodels.GroupProfile]
	hasDescription := len(business.BriefDescription) > descriptionMinLength
	profile := &b[SectionBusinessProfile]
	profile.Completed = profileStatus == docmodels.StatusComplete || hasDescription
	switch {
	case profile.Completed:
		profile.Percentage = profile.Weight
	case profileStatus == docmodels.StatusInProgress:
		profile.Percentage = profile.Weight / 2
	}

	// kycDirectors: couples director field completeness with the KYC upload
	// bucket. Either signal alone is an incomplete proxy - PAN and Aadhaar
	// text can be entered without the corroborating document uploaded.
	kycStatus := byType[docmodels.GroupKYCDirector]
	allKYC := AllDirectorsComplete(directors)
	kyc := &b[SectionKYCDirectors]
	kyc.Completed = allKYC && kycStatus == docmodels.StatusComplete
	if allKYC {
		if kycStatus == docmodels.StatusComplete {
			kyc.Percentage = kyc.Weight
		} else {
			kyc.Percentage = kyc.Weight / 2
		}
	}

	// itrDirectors: no credit at all without directors.
	itrStatus := byType[docmodels.GroupITRDirector]
	itr := &b[SectionITRDirectors]
	itr.Completed = len(directors) > 0 && itrStatus == docmodels.StatusComplete
	if len(directors) > 0 {
		switch itrStatus {
		case docmodels.StatusComplete:
			itr.Percentage = itr.Weight
		case docmodels.StatusInProgress:
			itr.Percentage = itr.Weight / 2
		}
	}

	return b
}

func uploadSectionScore(status docmodels.GroupStatus, weight int) SectionScore {
	score := SectionScore{Weight: weight}
	switch status {
	case docmodels.StatusComplete:
		score.Completed = true
		score.Percentage = weight
	case docmodels.StatusInProgress:
		score.Percentage = weight / 2
	}
	return score
}

// StatusMessage maps a completion percentage to its qualitative label.
func StatusMessage(percent int) string {
	switch {
	case percent <= 20:
		return "Just getting started"
	case percent <= 50:
		return "Halfway there"
	case percent <= 69:
		return "Almost ready"
	case percent <= 89:
		return "Ready to share with banks"
	default:
		return "Bank-ready profile"
	}
}

// IsFundable reports whether the profile may create funding requests.
// The boundary is inclusive at 70.
func IsFundable(percent int) bool {
	return percent >= FundableThreshold
}

// nextStepMessages are the per-section remediation strings, in section order.
var nextStepMessages = [numSections]string{
	"Complete basic business information",
	"Upload Balance Sheet & P&L statements",
	"Upload bank sanction letters",
	"Add business profile documents or description",
	"Complete director KYC documents",
	"Upload director ITR documents",
}

// profileCompleteMessage is emitted instead of an empty list when every
// section is complete.
const profileCompleteMessage = "Profile complete! You can now access funding options"

// NextSteps derives remediation guidance from the breakdown: one fixed
// string per incomplete section, in section order.
func NextSteps(b Breakdown) []string {
	var steps []string
	for i, section := range b {
		if !section.Completed {
			steps = append(steps, nextStepMessages[i])
		}
	}
	if len(steps) == 0 {
		steps = append(steps, profileCompleteMessage)
	}
	return steps
}
