package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"fundready/internal/business/models"
	"fundready/internal/business/service"
	bizstore "fundready/internal/business/store"
	"fundready/internal/completion"
	dirstore "fundready/internal/director/store"
	docmodels "fundready/internal/document/models"
	docstore "fundready/internal/document/store"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
	"fundready/pkg/platform/tx"
)

type ServiceSuite struct {
	suite.Suite

	businesses *bizstore.InMemory
	groups     *docstore.InMemory
	service    *service.Service
}

func (s *ServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.businesses = bizstore.NewInMemory()
	s.groups = docstore.NewInMemory()
	completionSvc := completion.NewService(s.businesses, s.groups, dirstore.NewInMemory(), logger, nil)
	s.service = service.NewService(s.businesses, s.groups, completionSvc, tx.NoopRunner{}, logger, nil)
}

func validFields() models.Fields {
	return models.Fields{
		LegalName:  "Vega Agro Exports",
		EntityType: models.EntityLLP,
		Sector:     "Agriculture",
		City:       "Nashik",
		State:      "Maharashtra",
	}
}

func (s *ServiceSuite) TestCreate() {
	ownerID := id.NewUserID()

	business, err := s.service.Create(context.Background(), ownerID, validFields())
	s.Require().NoError(err)
	s.Equal(ownerID, business.OwnerID)
	s.False(business.ID.IsNil())

	s.Run("seeds the five buckets", func() {
		groups, err := s.groups.ListGroupsByBusiness(context.Background(), business.ID)
		s.Require().NoError(err)
		s.Require().Len(groups, 5)
		for _, group := range groups {
			s.Equal(docmodels.StatusNotStarted, group.Status)
			s.Equal(business.ID, group.BusinessID)
		}
	})

	s.Run("computes the initial score", func() {
		s.Equal(10, business.CompletionPercent)
	})

	s.Run("second business for the same owner conflicts", func() {
		_, err := s.service.Create(context.Background(), ownerID, validFields())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestCreateValidation() {
	fields := validFields()
	fields.LegalName = ""
	_, err := s.service.Create(context.Background(), id.NewUserID(), fields)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	fields = validFields()
	fields.EntityType = "COOPERATIVE"
	_, err = s.service.Create(context.Background(), id.NewUserID(), fields)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestProfileByOwner() {
	ownerID := id.NewUserID()
	created, err := s.service.Create(context.Background(), ownerID, validFields())
	s.Require().NoError(err)

	profile, err := s.service.ProfileByOwner(context.Background(), ownerID)
	s.Require().NoError(err)
	s.Equal(created.ID, profile.Business.ID)
	s.Len(profile.Groups, 5)

	_, err = s.service.ProfileByOwner(context.Background(), id.NewUserID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetEnforcesOwnership() {
	business, err := s.service.Create(context.Background(), id.NewUserID(), validFields())
	s.Require().NoError(err)

	_, err = s.service.Get(context.Background(), business.ID, id.NewUserID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	got, err := s.service.Get(context.Background(), business.ID, business.OwnerID)
	s.Require().NoError(err)
	s.Equal(business.ID, got.ID)
}

func (s *ServiceSuite) TestUpdate() {
	business, err := s.service.Create(context.Background(), id.NewUserID(), validFields())
	s.Require().NoError(err)

	longDescription := "Exporter of grapes and pomegranates with cold-chain logistics across three states."
	updated, err := s.service.Update(context.Background(), business.ID, business.OwnerID, models.Update{
		BriefDescription: &longDescription,
	})
	s.Require().NoError(err)
	s.Equal(longDescription, updated.BriefDescription)

	s.Run("recomputes the cached percent", func() {
		// businessInfo 10 + businessProfile 10 via the description.
		s.Equal(20, updated.CompletionPercent)
	})

	s.Run("required fields cannot be cleared", func() {
		empty := ""
		_, err := s.service.Update(context.Background(), business.ID, business.OwnerID, models.Update{
			Sector: &empty,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("non-owner is rejected", func() {
		name := "Renamed"
		_, err := s.service.Update(context.Background(), business.ID, id.NewUserID(), models.Update{
			BusinessName: &name,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *ServiceSuite) TestCompletion() {
	business, err := s.service.Create(context.Background(), id.NewUserID(), validFields())
	s.Require().NoError(err)

	overview, err := s.service.Completion(context.Background(), business.ID, business.OwnerID)
	s.Require().NoError(err)
	s.Equal(10, overview.Percent)
	s.Equal("Just getting started", overview.StatusMessage)
	s.False(overview.IsFundable)
	s.Len(overview.NextSteps, 5)

	_, err = s.service.Completion(context.Background(), business.ID, id.NewUserID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
