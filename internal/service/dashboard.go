package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	apperrors "github.com/3issane/PFETRACKCODE212/internal/errors"
	obserrors "github.com/3issane/PFETRACKCODE212/internal/observability/errors"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

// UpcomingEventsLimit bounds the schedule preview on the student dashboard.
const UpcomingEventsLimit = 5

// TopicSource is the topic catalogue used by dashboards.
type TopicSource interface {
	List(ctx context.Context, filter model.TopicFilter) ([]model.Topic, error)
	Available(ctx context.Context) ([]model.Topic, error)
	MyApplications(ctx context.Context) ([]model.TopicApplication, error)
}

// ReportSource lists reports for the caller or for everyone.
type ReportSource interface {
	Mine(ctx context.Context, filter model.ReportFilter) ([]model.Report, error)
	All(ctx context.Context, filter model.ReportFilter) ([]model.Report, error)
}

// GradeSource exposes grade summaries.
type GradeSource interface {
	Stats(ctx context.Context) (model.GradeStats, error)
}

// EventSource exposes the schedule.
type EventSource interface {
	Upcoming(ctx context.Context, limit int) ([]model.Event, error)
	Stats(ctx context.Context) (model.EventStats, error)
}

// DashboardSources groups the feature APIs a dashboard reads from.
type DashboardSources struct {
	Topics  TopicSource
	Reports ReportSource
	Grades  GradeSource
	Events  EventSource
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Sources  DashboardSources    // Required
	Sessions ports.SessionReader // Required
	Logger   *slog.Logger        // Optional
}

// DashboardService assembles role dashboards from several feature calls.
// Sections are fetched concurrently; a failing section is reported in Errors
// and left empty rather than filled with placeholder data.
type DashboardService struct {
	sources  DashboardSources
	sessions ports.SessionReader
	logger   *slog.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Sessions == nil {
		panic("service: DashboardService requires a session reader")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		sources:  opts.Sources,
		sessions: opts.Sessions,
		logger:   logger.With("component", "dashboard"),
	}
}

// StudentDashboard is the student landing view.
type StudentDashboard struct {
	User            *domainauth.UserIdentity `json:"user"`
	AvailableTopics []model.Topic            `json:"availableTopics"`
	Applications    []model.TopicApplication `json:"applications"`
	Reports         []model.Report           `json:"reports"`
	GradeStats      *model.GradeStats        `json:"gradeStats,omitempty"`
	UpcomingEvents  []model.Event            `json:"upcomingEvents"`
	Errors          map[string]string        `json:"errors,omitempty"`
}

// AdminDashboard is the administrator landing view.
type AdminDashboard struct {
	User           *domainauth.UserIdentity `json:"user"`
	Topics         []model.Topic            `json:"topics"`
	Reports        []model.Report           `json:"reports"`
	PendingReports int                      `json:"pendingReports"`
	EventStats     *model.EventStats        `json:"eventStats,omitempty"`
	Errors         map[string]string        `json:"errors,omitempty"`
}

// sectionErrors collects per-section failures from concurrent fetches.
type sectionErrors struct {
	mu   sync.Mutex
	errs map[string]string
}

func (s *sectionErrors) add(section string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errs == nil {
		s.errs = make(map[string]string)
	}
	s.errs[section] = err.Error()
}

// Student fetches the student dashboard for the signed-in user.
func (s *DashboardService) Student(ctx context.Context) (*StudentDashboard, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	out := &StudentDashboard{User: user}
	var failed sectionErrors
	g, gctx := errgroup.WithContext(ctx)

	s.section(gctx, g, &failed, "availableTopics", func(ctx context.Context) (err error) {
		out.AvailableTopics, err = s.sources.Topics.Available(ctx)
		return err
	})
	s.section(gctx, g, &failed, "applications", func(ctx context.Context) (err error) {
		out.Applications, err = s.sources.Topics.MyApplications(ctx)
		return err
	})
	s.section(gctx, g, &failed, "reports", func(ctx context.Context) (err error) {
		out.Reports, err = s.sources.Reports.Mine(ctx, model.ReportFilter{})
		return err
	})
	s.section(gctx, g, &failed, "gradeStats", func(ctx context.Context) error {
		stats, err := s.sources.Grades.Stats(ctx)
		if err == nil {
			out.GradeStats = &stats
		}
		return err
	})
	s.section(gctx, g, &failed, "upcomingEvents", func(ctx context.Context) (err error) {
		out.UpcomingEvents, err = s.sources.Events.Upcoming(ctx, UpcomingEventsLimit)
		return err
	})

	_ = g.Wait()
	out.Errors = failed.errs
	return out, nil
}

// Admin fetches the administrator dashboard. The caller must hold ROLE_ADMIN.
func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	if !user.HasRole(domainauth.RoleAdmin) {
		return nil, apperrors.Unauthorized("administrator role required")
	}

	out := &AdminDashboard{User: user}
	var failed sectionErrors
	g, gctx := errgroup.WithContext(ctx)

	s.section(gctx, g, &failed, "topics", func(ctx context.Context) (err error) {
		out.Topics, err = s.sources.Topics.List(ctx, model.TopicFilter{})
		return err
	})
	s.section(gctx, g, &failed, "reports", func(ctx context.Context) error {
		reports, err := s.sources.Reports.All(ctx, model.ReportFilter{})
		if err != nil {
			return err
		}
		out.Reports = reports
		for _, r := range reports {
			if r.Status == model.ReportSubmitted {
				out.PendingReports++
			}
		}
		return nil
	})
	s.section(gctx, g, &failed, "eventStats", func(ctx context.Context) error {
		stats, err := s.sources.Events.Stats(ctx)
		if err == nil {
			out.EventStats = &stats
		}
		return err
	})

	_ = g.Wait()
	out.Errors = failed.errs
	return out, nil
}

// section runs fetch in the group. Failures are recorded, never returned, so
// one broken endpoint does not cancel its siblings.
func (s *DashboardService) section(ctx context.Context, g *errgroup.Group, failed *sectionErrors, name string, fetch func(context.Context) error) {
	g.Go(func() error {
		if err := fetch(ctx); err != nil {
			s.logger.WarnContext(ctx, "dashboard section failed",
				"section", name, "error_class", obserrors.Classify(err))
			failed.add(name, err)
		}
		return nil
	})
}

func (s *DashboardService) requireUser() (*domainauth.UserIdentity, error) {
	snap := s.sessions.Snapshot()
	if snap.Loading || !snap.IsAuthenticated() {
		return nil, apperrors.Unauthorized("sign in required")
	}
	return snap.CurrentUser, nil
}
