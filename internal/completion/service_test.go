package completion_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bizmodels "fundready/internal/business/models"
	bizstore "fundready/internal/business/store"
	"fundready/internal/completion"
	dirmodels "fundready/internal/director/models"
	dirstore "fundready/internal/director/store"
	docmodels "fundready/internal/document/models"
	docstore "fundready/internal/document/store"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite

	businesses *bizstore.InMemory
	groups     *docstore.InMemory
	directors  *dirstore.InMemory
	service    *completion.Service
}

func (s *ServiceSuite) SetupTest() {
	s.businesses = bizstore.NewInMemory()
	s.groups = docstore.NewInMemory()
	s.directors = dirstore.NewInMemory()
	s.service = completion.NewService(
		s.businesses, s.groups, s.directors,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
	)
}

func (s *ServiceSuite) seedBusiness() id.BusinessID {
	now := time.Now()
	business, err := bizmodels.NewBusiness(id.NewBusinessID(), id.NewUserID(), bizmodels.Fields{
		LegalName:  "Nimbus Textiles",
		EntityType: bizmodels.EntityPartnership,
		Sector:     "Textiles",
		City:       "Surat",
		State:      "Gujarat",
	}, now)
	s.Require().NoError(err)
	s.Require().NoError(s.businesses.Create(context.Background(), business))
	s.Require().NoError(s.groups.CreateGroups(context.Background(), docmodels.NewGroups(business.ID, now)))
	return business.ID
}

func (s *ServiceSuite) setGroupStatus(businessID id.BusinessID, groupType docmodels.GroupType, status docmodels.GroupStatus) {
	group, err := s.groups.FindGroupByType(context.Background(), businessID, groupType)
	s.Require().NoError(err)
	s.Require().NoError(s.groups.UpdateGroupStatus(context.Background(), group.ID, status))
}

func (s *ServiceSuite) TestCalculatePersistsPercent() {
	businessID := s.seedBusiness()

	percent, err := s.service.Calculate(context.Background(), businessID)
	s.Require().NoError(err)
	s.Equal(10, percent)

	business, err := s.businesses.FindByID(context.Background(), businessID)
	s.Require().NoError(err)
	s.Equal(10, business.CompletionPercent)
}

func (s *ServiceSuite) TestCalculateUnknownBusiness() {
	_, err := s.service.Calculate(context.Background(), id.NewBusinessID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestBreakdownDoesNotPersist() {
	businessID := s.seedBusiness()
	s.setGroupStatus(businessID, docmodels.GroupBSPnL, docmodels.StatusComplete)

	breakdown, err := s.service.Breakdown(context.Background(), businessID)
	s.Require().NoError(err)
	s.Equal(30, breakdown.Score())

	business, err := s.businesses.FindByID(context.Background(), businessID)
	s.Require().NoError(err)
	s.Equal(0, business.CompletionPercent)
}

func (s *ServiceSuite) TestOverview() {
	businessID := s.seedBusiness()
	for _, groupType := range docmodels.AllGroupTypes {
		s.setGroupStatus(businessID, groupType, docmodels.StatusComplete)
	}
	director, err := dirmodels.NewDirector(id.NewDirectorID(), businessID, dirmodels.Fields{
		Name:          "K. Patel",
		PAN:           "ABCPK1234L",
		AadhaarNumber: "432143214321",
	}, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.directors.Create(context.Background(), director))

	overview, err := s.service.Overview(context.Background(), businessID)
	s.Require().NoError(err)
	s.Equal(100, overview.Percent)
	s.Equal("Bank-ready profile", overview.StatusMessage)
	s.True(overview.IsFundable)
	s.Equal([]string{"Profile complete! You can now access funding options"}, overview.NextSteps)
	s.True(overview.Breakdown.AllComplete())

	business, err := s.businesses.FindByID(context.Background(), businessID)
	s.Require().NoError(err)
	s.Equal(100, business.CompletionPercent)
}

func (s *ServiceSuite) TestNextStepsOrder() {
	businessID := s.seedBusiness()
	s.setGroupStatus(businessID, docmodels.GroupSanction, docmodels.StatusComplete)

	steps, err := s.service.NextSteps(context.Background(), businessID)
	s.Require().NoError(err)
	s.Equal([]string{
		"Upload Balance Sheet & P&L statements",
		"Add business profile documents or description",
		"Complete director KYC documents",
		"Upload director ITR documents",
	}, steps)
}

func (s *ServiceSuite) TestRecalculateSwallowsErrors() {
	// Unknown business: the recompute fails, Recalculate only logs.
	s.service.Recalculate(context.Background(), id.NewBusinessID())
}

func (s *ServiceSuite) TestRecalculateRefreshesCache() {
	businessID := s.seedBusiness()
	s.setGroupStatus(businessID, docmodels.GroupBSPnL, docmodels.StatusInProgress)

	s.service.Recalculate(context.Background(), businessID)

	business, err := s.businesses.FindByID(context.Background(), businessID)
	s.Require().NoError(err)
	s.Equal(20, business.CompletionPercent)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
