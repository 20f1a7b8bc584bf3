package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	bizmodels "fundready/internal/business/models"
	bizstore "fundready/internal/business/store"
	"fundready/internal/completion"
	dirmodels "fundready/internal/director/models"
	dirstore "fundready/internal/director/store"
	docmodels "fundready/internal/document/models"
	docstore "fundready/internal/document/store"
	"fundready/internal/funding/models"
	"fundready/internal/funding/service"
	fundstore "fundready/internal/funding/store"
	"fundready/internal/platform/middleware"
	id "fundready/pkg/domain"
	"fundready/pkg/testutil"
)

type staticValidator struct {
	userID id.UserID
}

func (v staticValidator) ValidateToken(string) (*middleware.JWTClaims, error) {
	return &middleware.JWTClaims{UserID: v.userID}, nil
}

type HandlerSuite struct {
	suite.Suite

	userID     id.UserID
	businessID id.BusinessID
	groups     *docstore.InMemory
	directors  *dirstore.InMemory
	router     chi.Router
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	businesses := bizstore.NewInMemory()
	s.groups = docstore.NewInMemory()
	s.directors = dirstore.NewInMemory()
	completionSvc := completion.NewService(businesses, s.groups, s.directors, logger, nil)
	svc := service.NewService(fundstore.NewInMemory(), businesses, completionSvc, logger, nil)

	now := time.Now()
	s.userID = id.NewUserID()
	business, err := bizmodels.NewBusiness(id.NewBusinessID(), s.userID, bizmodels.Fields{
		LegalName:  "Meridian Packaging",
		EntityType: bizmodels.EntityLLP,
		Sector:     "Packaging",
		City:       "Noida",
		State:      "Uttar Pradesh",
	}, now)
	s.Require().NoError(err)
	s.Require().NoError(businesses.Create(context.Background(), business))
	s.Require().NoError(s.groups.CreateGroups(context.Background(), docmodels.NewGroups(business.ID, now)))
	s.businessID = business.ID

	s.router = chi.NewRouter()
	New(svc, logger, staticValidator{userID: s.userID}).Register(s.router)
}

func (s *HandlerSuite) do(req *http.Request) *http.Response {
	req.Header.Set("Authorization", "Bearer test-token")
	return testutil.DoRequest(s.router, req).Result()
}

func (s *HandlerSuite) makeFundable() {
	ctx := context.Background()
	groups, err := s.groups.ListGroupsByBusiness(ctx, s.businessID)
	s.Require().NoError(err)
	for _, group := range groups {
		s.Require().NoError(s.groups.UpdateGroupStatus(ctx, group.ID, docmodels.StatusComplete))
	}
	director, err := dirmodels.NewDirector(id.NewDirectorID(), s.businessID, dirmodels.Fields{
		Name:          "V. Kapoor",
		PAN:           "ABCPV4321V",
		AadhaarNumber: "888877776666",
	}, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.directors.Create(ctx, director))
}

func (s *HandlerSuite) TestCreateBelowGate() {
	resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/funding-utilities", models.Fields{
		Type:            models.TypeTermLoan,
		AmountRequested: 1_000_000,
	}))
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("not_fundable", body.Error)
	s.Contains(body.ErrorDescription, "at least 70% complete")
}

func (s *HandlerSuite) TestCreateListSubmit() {
	s.makeFundable()

	resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/funding-utilities", models.Fields{
		Type:            models.TypeWorkingCapital,
		AmountRequested: 750_000,
		Purpose:         "Inventory build-up before festival season",
	}))
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var utility models.Utility
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&utility))
	s.Equal(models.StatusDraft, utility.Status)

	resp = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/funding-utilities"))
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var listing struct {
		Utilities            []models.Utility `json:"funding_utilities"`
		TotalRequestedAmount int64            `json:"total_requested_amount"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&listing))
	s.Len(listing.Utilities, 1)
	s.Equal(int64(750_000), listing.TotalRequestedAmount)

	resp = s.do(testutil.NewRequest(s.T(), http.MethodPost, "/funding-utilities/submit"))
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var submitted map[string]int
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&submitted))
	s.Equal(1, submitted["submitted"])
}

func (s *HandlerSuite) TestUpdateStatus() {
	s.makeFundable()

	resp := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/funding-utilities", models.Fields{
		Type:            models.TypeAssetFinance,
		AmountRequested: 300_000,
	}))
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var utility models.Utility
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&utility))

	resp = s.do(testutil.NewJSONRequest(s.T(), http.MethodPatch,
		"/funding-utilities/"+utility.ID.String()+"/status",
		map[string]string{"status": "SUBMITTED"},
	))
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(testutil.NewJSONRequest(s.T(), http.MethodPatch,
		"/funding-utilities/"+utility.ID.String()+"/status",
		map[string]string{"status": "APPROVED"},
	))
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}
