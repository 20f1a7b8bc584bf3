package completion

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	bizmodels "fundready/internal/business/models"
	dirmodels "fundready/internal/director/models"
	docmodels "fundready/internal/document/models"
	"fundready/internal/platform/metrics"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
	"fundready/pkg/platform/sentinel"
)

// BusinessStore is the slice of the business store the engine needs: one
// read, one write-back of the cached percentage.
type BusinessStore interface {
	FindByID(ctx context.Context, businessID id.BusinessID) (*bizmodels.Business, error)
	SetCompletionPercent(ctx context.Context, businessID id.BusinessID, percent int) error
}

// GroupReader lists a business's document groups.
type GroupReader interface {
	ListGroupsByBusiness(ctx context.Context, businessID id.BusinessID) ([]docmodels.DocumentGroup, error)
}

// DirectorReader lists a business's directors.
type DirectorReader interface {
	ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]dirmodels.Director, error)
}

// Service orchestrates the scoring engine: it snapshots persisted state,
// runs the pure computation, and writes the cached percentage back.
type Service struct {
	businesses BusinessStore
	groups     GroupReader
	directors  DirectorReader
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewService(businesses BusinessStore, groups GroupReader, directors DirectorReader, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		businesses: businesses,
		groups:     groups,
		directors:  directors,
		logger:     logger,
		metrics:    m,
	}
}

// snapshot fetches the three scoring inputs. The reads are independent, so
// they run concurrently; each mutation's recomputation sees its own
// consistent-enough snapshot and last-write-wins on the cached value.
func (s *Service) snapshot(ctx context.Context, businessID id.BusinessID) (*bizmodels.Business, []docmodels.DocumentGroup, []dirmodels.Director, error) {
	var (
		business  *bizmodels.Business
		groups    []docmodels.DocumentGroup
		directors []dirmodels.Director
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		business, err = s.businesses.FindByID(gctx, businessID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "business not found")
		}
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = s.groups.ListGroupsByBusiness(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		directors, err = s.directors.ListByBusiness(gctx, businessID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return business, groups, directors, nil
}

// Calculate recomputes the completion percentage from scratch and persists
// it as the business's cached value.
func (s *Service) Calculate(ctx context.Context, businessID id.BusinessID) (int, error) {
	business, groups, directors, err := s.snapshot(ctx, businessID)
	if err != nil {
		return 0, err
	}

	percent := ComputeBreakdown(business, groups, directors).Score()
	if err := s.businesses.SetCompletionPercent(ctx, businessID, percent); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist completion percent")
	}
	if s.metrics != nil {
		s.metrics.ObserveScore(percent)
	}
	return percent, nil
}

// Breakdown computes the per-section snapshot without persisting anything.
func (s *Service) Breakdown(ctx context.Context, businessID id.BusinessID) (Breakdown, error) {
	business, groups, directors, err := s.snapshot(ctx, businessID)
	if err != nil {
		return Breakdown{}, err
	}
	return ComputeBreakdown(business, groups, directors), nil
}

// NextSteps derives remediation guidance from the current persisted state.
func (s *Service) NextSteps(ctx context.Context, businessID id.BusinessID) ([]string, error) {
	breakdown, err := s.Breakdown(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return NextSteps(breakdown), nil
}

// Overview is the full completion view served to clients: one snapshot, one
// computation, and a persisted refresh of the cached percentage.
type Overview struct {
	Percent       int       `json:"percent"`
	Breakdown     Breakdown `json:"breakdown"`
	StatusMessage string    `json:"statusMessage"`
	IsFundable    bool      `json:"isFundable"`
	NextSteps     []string  `json:"nextSteps"`
}

func (s *Service) Overview(ctx context.Context, businessID id.BusinessID) (*Overview, error) {
	business, groups, directors, err := s.snapshot(ctx, businessID)
	if err != nil {
		return nil, err
	}

	breakdown := ComputeBreakdown(business, groups, directors)
	percent := breakdown.Score()

	if err := s.businesses.SetCompletionPercent(ctx, businessID, percent); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist completion percent")
	}
	if s.metrics != nil {
		s.metrics.ObserveScore(percent)
	}

	return &Overview{
		Percent:       percent,
		Breakdown:     breakdown,
		StatusMessage: StatusMessage(percent),
		IsFundable:    IsFundable(percent),
		NextSteps:     NextSteps(breakdown),
	}, nil
}

// Recalculate refreshes the cached percentage after a mutation. Failure is
// logged, not returned: the mutation's primary effect already succeeded and
// the stale cache corrects itself on the next successful recomputation.
func (s *Service) Recalculate(ctx context.Context, businessID id.BusinessID) {
	if _, err := s.Calculate(ctx, businessID); err != nil {
		s.logger.WarnContext(ctx, "completion recompute failed, cached percent is stale",
			"business_id", businessID.String(),
			"error", err.Error(),
		)
	}
}
