package completion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bizmodels "fundready/internal/business/models"
	dirmodels "fundready/internal/director/models"
	docmodels "fundready/internal/document/models"
	id "fundready/pkg/domain"
)

func completeBusiness() *bizmodels.Business {
	return &bizmodels.Business{
		ID:         id.NewBusinessID(),
		OwnerID:    id.NewUserID(),
		LegalName:  "Acme Forgings Pvt Ltd",
		EntityType: bizmodels.EntityPrivateLimited,
		Sector:     "Manufacturing",
		City:       "Pune",
		State:      "Maharashtra",
	}
}

func groupsWithStatus(status docmodels.GroupStatus) []docmodels.DocumentGroup {
	var groups []docmodels.DocumentGroup
	for _, groupType := range docmodels.AllGroupTypes {
		groups = append(groups, docmodels.DocumentGroup{
			ID:     id.NewDocumentGroupID(),
			Type:   groupType,
			Status: status,
		})
	}
	return groups
}

func setGroupStatus(groups []docmodels.DocumentGroup, groupType docmodels.GroupType, status docmodels.GroupStatus) {
	for i := range groups {
		if groups[i].Type == groupType {
			groups[i].Status = status
		}
	}
}

func kycCompleteDirector() dirmodels.Director {
	return dirmodels.Director{
		ID:            id.NewDirectorID(),
		Name:          "R. Sharma",
		DOB:           "1975-03-12",
		PAN:           "ABCPS1234F",
		AadhaarNumber: "123412341234",
	}
}

func TestComputeBreakdown_FullyComplete(t *testing.T) {
	business := completeBusiness()
	groups := groupsWithStatus(docmodels.StatusComplete)
	directors := []dirmodels.Director{kycCompleteDirector()}

	breakdown := ComputeBreakdown(business, groups, directors)

	assert.Equal(t, 100, breakdown.Score())
	assert.True(t, breakdown.AllComplete())
	assert.True(t, IsFundable(breakdown.Score()))
	assert.Equal(t, []string{"Profile complete! You can now access funding options"}, NextSteps(breakdown))

	for _, section := range Sections() {
		assert.True(t, breakdown[section].Completed, "section %s", section)
		assert.Equal(t, breakdown[section].Weight, breakdown[section].Percentage, "section %s", section)
	}
}

func TestComputeBreakdown_OnlyBusinessInfo(t *testing.T) {
	business := completeBusiness()
	groups := groupsWithStatus(docmodels.StatusNotStarted)

	breakdown := ComputeBreakdown(business, groups, nil)

	assert.Equal(t, 10, breakdown.Score())
	assert.True(t, breakdown[SectionBusinessInfo].Completed)
	assert.Equal(t, 10, breakdown[SectionBusinessInfo].Percentage)

	steps := NextSteps(breakdown)
	require.Len(t, steps, 5)
	assert.Equal(t, []string{
		"Upload Balance Sheet & P&L statements",
		"Upload bank sanction letters",
		"Add business profile documents or description",
		"Complete director KYC documents",
		"Upload director ITR documents",
	}, steps)
}

func TestComputeBreakdown_BusinessInfoIncomplete(t *testing.T) {
	business := completeBusiness()
	business.City = ""

	breakdown := ComputeBreakdown(business, groupsWithStatus(docmodels.StatusNotStarted), nil)

	assert.False(t, breakdown[SectionBusinessInfo].Completed)
	assert.Equal(t, 0, breakdown[SectionBusinessInfo].Percentage)
	assert.Equal(t, 0, breakdown.Score())
	assert.Contains(t, NextSteps(breakdown), "Complete basic business information")
}

func TestComputeBreakdown_PartialCredit(t *testing.T) {
	t.Run("financials in progress earns half weight", func(t *testing.T) {
		business := completeBusiness()
		business.LegalName = "" // knock out businessInfo to isolate financials
		groups := groupsWithStatus(docmodels.StatusNotStarted)
		setGroupStatus(groups, docmodels.GroupBSPnL, docmodels.StatusInProgress)

		breakdown := ComputeBreakdown(business, groups, nil)

		assert.Equal(t, 10, breakdown[SectionFinancials].Percentage)
		assert.False(t, breakdown[SectionFinancials].Completed)
		assert.Equal(t, 10, breakdown.Score())
	})

	t.Run("sanctions in progress earns half weight", func(t *testing.T) {
		business := completeBusiness()
		business.LegalName = ""
		groups := groupsWithStatus(docmodels.StatusNotStarted)
		setGroupStatus(groups, docmodels.GroupSanction, docmodels.StatusInProgress)

		breakdown := ComputeBreakdown(business, groups, nil)

		assert.Equal(t, 10, breakdown[SectionSanctions].Percentage)
		assert.False(t, breakdown[SectionSanctions].Completed)
	})

	t.Run("profile in progress earns half weight without description", func(t *testing.T) {
		business := completeBusiness()
		groups := groupsWithStatus(docmodels.StatusNotStarted)
		setGroupStatus(groups, docmodels.GroupProfile, docmodels.StatusInProgress)

		breakdown := ComputeBreakdown(business, groups, nil)

		assert.Equal(t, 5, breakdown[SectionBusinessProfile].Percentage)
		assert.False(t, breakdown[SectionBusinessProfile].Completed)
	})
}

func TestComputeBreakdown_BusinessProfileDescription(t *testing.T) {
	t.Run("long description completes section without uploads", func(t *testing.T) {
		business := completeBusiness()
		business.BriefDescription = "We manufacture precision forged components for the automotive industry since 1998."
		groups := groupsWithStatus(docmodels.StatusNotStarted)

		breakdown := ComputeBreakdown(business, groups, nil)

		assert.True(t, breakdown[SectionBusinessProfile].Completed)
		assert.Equal(t, 10, breakdown[SectionBusinessProfile].Percentage)
	})

	t.Run("fifty characters is not long enough", func(t *testing.T) {
		business := completeBusiness()
		business.BriefDescription = "12345678901234567890123456789012345678901234567890" // exactly 50
		groups := groupsWithStatus(docmodels.StatusNotStarted)

		breakdown := ComputeBreakdown(business, groups, nil)

		assert.False(t, breakdown[SectionBusinessProfile].Completed)
		assert.Equal(t, 0, breakdown[SectionBusinessProfile].Percentage)
	})

	t.Run("fifty-one characters is long enough", func(t *testing.T) {
		business := completeBusiness()
		business.BriefDescription = "123456789012345678901234567890123456789012345678901" // 51
		groups := groupsWithStatus(docmodels.StatusNotStarted)

		breakdown := ComputeBreakdown(business, groups, nil)

		assert.True(t, breakdown[SectionBusinessProfile].Completed)
	})
}

func TestComputeBreakdown_KYCDirectors(t *testing.T) {
	t.Run("zero directors never complete regardless of uploads", func(t *testing.T) {
		business := completeBusiness()
		groups := groupsWithStatus(docmodels.StatusComplete)

		breakdown := ComputeBreakdown(business, groups, nil)

		assert.False(t, breakdown[SectionKYCDirectors].Completed)
		assert.Equal(t, 0, breakdown[SectionKYCDirectors].Percentage)
		assert.False(t, breakdown[SectionITRDirectors].Completed)
		assert.Equal(t, 0, breakdown[SectionITRDirectors].Percentage)
	})

	t.Run("complete directors with incomplete uploads earn half weight", func(t *testing.T) {
		business := completeBusiness()
		groups := groupsWithStatus(docmodels.StatusNotStarted)
		directors := []dirmodels.Director{kycCompleteDirector()}

		breakdown := ComputeBreakdown(business, groups, directors)

		assert.False(t, breakdown[SectionKYCDirectors].Completed)
		assert.Equal(t, 10, breakdown[SectionKYCDirectors].Percentage)
	})

	t.Run("requires both director fields and complete uploads", func(t *testing.T) {
		business := completeBusiness()
		groups := groupsWithStatus(docmodels.StatusNotStarted)
		setGroupStatus(groups, docmodels.GroupKYCDirector, docmodels.StatusComplete)
		directors := []dirmodels.Director{kycCompleteDirector()}

		breakdown := ComputeBreakdown(business, groups, directors)

		assert.True(t, breakdown[SectionKYCDirectors].Completed)
		assert.Equal(t, 20, breakdown[SectionKYCDirectors].Percentage)
	})

	t.Run("one director missing aadhaar blocks all credit", func(t *testing.T) {
		business := completeBusiness()
		groups := groupsWithStatus(docmodels.StatusComplete)
		incomplete := kycCompleteDirector()
		incomplete.AadhaarNumber = ""
		directors := []dirmodels.Director{kycCompleteDirector(), incomplete}

		breakdown := ComputeBreakdown(business, groups, directors)

		assert.False(t, breakdown[SectionKYCDirectors].Completed)
		assert.Equal(t, 0, breakdown[SectionKYCDirectors].Percentage)
	})
}

func TestComputeBreakdown_ITRDirectors(t *testing.T) {
	t.Run("in progress with directors earns half weight", func(t *testing.T) {
		business := completeBusiness()
		groups := groupsWithStatus(docmodels.StatusNotStarted)
		setGroupStatus(groups, docmodels.GroupITRDirector, docmodels.StatusInProgress)
		directors := []dirmodels.Director{kycCompleteDirector()}

		breakdown := ComputeBreakdown(business, groups, directors)

		assert.False(t, breakdown[SectionITRDirectors].Completed)
		assert.Equal(t, 10, breakdown[SectionITRDirectors].Percentage)
	})

	t.Run("complete uploads without directors earn nothing", func(t *testing.T) {
		business := completeBusiness()
		groups := groupsWithStatus(docmodels.StatusNotStarted)
		setGroupStatus(groups, docmodels.GroupITRDirector, docmodels.StatusComplete)

		breakdown := ComputeBreakdown(business, groups, nil)

		assert.False(t, breakdown[SectionITRDirectors].Completed)
		assert.Equal(t, 0, breakdown[SectionITRDirectors].Percentage)
	})
}

func TestComputeBreakdown_Deterministic(t *testing.T) {
	business := completeBusiness()
	business.BriefDescription = "A long enough description of the business to earn the profile section credit."
	groups := groupsWithStatus(docmodels.StatusInProgress)
	directors := []dirmodels.Director{kycCompleteDirector()}

	first := ComputeBreakdown(business, groups, directors)
	second := ComputeBreakdown(business, groups, directors)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestComputeBreakdown_ScoreBounds(t *testing.T) {
	statuses := []docmodels.GroupStatus{
		docmodels.StatusNotStarted,
		docmodels.StatusInProgress,
		docmodels.StatusComplete,
	}
	directorSets := [][]dirmodels.Director{
		nil,
		{kycCompleteDirector()},
		{{ID: id.NewDirectorID(), Name: "No KYC"}},
	}

	for _, status := range statuses {
		for _, directors := range directorSets {
			business := completeBusiness()
			score := ComputeBreakdown(business, groupsWithStatus(status), directors).Score()
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestBreakdown_Weights(t *testing.T) {
	total := 0
	for _, section := range Sections() {
		total += section.Weight()
	}
	assert.Equal(t, 100, total)
}

func TestBreakdown_JSONShape(t *testing.T) {
	breakdown := ComputeBreakdown(completeBusiness(), groupsWithStatus(docmodels.StatusNotStarted), nil)

	encoded, err := json.Marshal(breakdown)
	require.NoError(t, err)

	var decoded map[string]SectionScore
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Len(t, decoded, 6)
	for _, key := range []string{"businessInfo", "financials", "sanctions", "businessProfile", "kycDirectors", "itrDirectors"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, 10, decoded["businessInfo"].Weight)
	assert.Equal(t, 20, decoded["financials"].Weight)

	var roundTripped Breakdown
	require.NoError(t, json.Unmarshal(encoded, &roundTripped))
	assert.Equal(t, breakdown, roundTripped)
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{0, "Just getting started"},
		{20, "Just getting started"},
		{21, "Halfway there"},
		{50, "Halfway there"},
		{51, "Almost ready"},
		{69, "Almost ready"},
		{70, "Ready to share with banks"},
		{89, "Ready to share with banks"},
		{90, "Bank-ready profile"},
		{100, "Bank-ready profile"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusMessage(tt.percent), "percent=%d", tt.percent)
	}
}

func TestIsFundable(t *testing.T) {
	assert.False(t, IsFundable(0))
	assert.False(t, IsFundable(69))
	assert.True(t, IsFundable(70))
	assert.True(t, IsFundable(100))
}
