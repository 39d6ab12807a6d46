package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/domain/model"
	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
	"github.com/skillhub/skills-dashboard/internal/ports"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	API    ports.DashboardAPI // Required: session-bound dashboard feeds
	Users  ports.UsersAPI     // Required: user records for the employee view and reports
	Logger *slog.Logger       // Optional
}

// DashboardService assembles dashboard view models from the backend feeds.
type DashboardService struct {
	api    ports.DashboardAPI
	users  ports.UsersAPI
	logger *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.API == nil || opts.Users == nil {
		panic("DashboardService requires API and Users")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{api: opts.API, users: opts.Users, logger: logger}
}

// DashboardQuery selects and filters a dashboard.
type DashboardQuery struct {
	Dashboard  domainauth.Dashboard
	UserID     domainauth.ID
	Search     string
	Department string
}

// EmployeeDashboard is the employee view.
type EmployeeDashboard struct {
	Profile           *model.Employee        `json:"profile,omitempty"`
	Overview          model.EmployeeOverview `json:"overview"`
	Tickets           []model.Ticket         `json:"tickets"`
	TicketCounts      model.TicketCounts     `json:"ticketCounts"`
	CompletionPercent int                    `json:"completionPercent"`
	Directory         []model.Skill          `json:"directory"`
}

// ManagerDashboard is the manager view.
type ManagerDashboard struct {
	Members      []model.TeamMember     `json:"members"`
	TeamSize     int                    `json:"teamSize"`
	Skills       []model.TeamSkill      `json:"skills"`
	Distribution model.GapDistribution  `json:"distribution"`
	Own          model.EmployeeOverview `json:"own"`
}

// AdminDashboard is the admin view.
type AdminDashboard struct {
	Metrics      model.AdminMetrics    `json:"metrics"`
	Matrix       model.SkillMatrix     `json:"matrix"`
	Distribution model.GapDistribution `json:"distribution"`
	Departments  []string              `json:"departments"`
	Directory    []model.Skill         `json:"directory"`
}

// DashboardView is the response of the dashboard endpoint. Exactly one of the
// variant fields is set.
type DashboardView struct {
	Dashboard     domainauth.Dashboard `json:"dashboard"`
	CanSwitchView bool                 `json:"canSwitchView"`
	Employee      *EmployeeDashboard   `json:"employee,omitempty"`
	Manager       *ManagerDashboard    `json:"manager,omitempty"`
	Admin         *AdminDashboard      `json:"admin,omitempty"`
}

// Build fetches the feeds of the requested dashboard concurrently. The first
// failing feed cancels the others and its error is returned.
func (s *DashboardService) Build(ctx context.Context, q DashboardQuery) (*DashboardView, error) {
	view := &DashboardView{Dashboard: q.Dashboard}
	var err error
	switch q.Dashboard {
	case domainauth.DashboardEmployee:
		view.Employee, err = s.employee(ctx, q.UserID)
	case domainauth.DashboardManager:
		view.Manager, err = s.manager(ctx, q.Search)
	case domainauth.DashboardAdmin:
		view.Admin, err = s.admin(ctx, model.MatrixFilter{Search: q.Search, Department: q.Department})
	default:
		return nil, apperrors.Validation(fmt.Sprintf("unknown dashboard %q", q.Dashboard))
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *DashboardService) employee(ctx context.Context, userID domainauth.ID) (*EmployeeDashboard, error) {
	out := &EmployeeDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ov, err := s.api.EmployeeOverview(gctx)
		if err != nil {
			return fmt.Errorf("employee overview: %w", err)
		}
		out.Overview = ov
		return nil
	})
	g.Go(func() error {
		tickets, err := s.api.EmployeeTickets(gctx)
		if err != nil {
			return fmt.Errorf("employee tickets: %w", err)
		}
		out.Tickets = tickets
		return nil
	})
	g.Go(func() error {
		dir, err := s.api.SkillDirectory(gctx)
		if err != nil {
			return fmt.Errorf("skill directory: %w", err)
		}
		out.Directory = dir
		return nil
	})
	if !userID.IsZero() {
		g.Go(func() error {
			profile, err := s.users.GetUser(gctx, userID)
			if err != nil {
				return fmt.Errorf("profile: %w", err)
			}
			out.Profile = &profile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.Tickets == nil {
		out.Tickets = out.Overview.Tickets
	}
	out.TicketCounts = model.CountTickets(out.Tickets)
	out.CompletionPercent = out.Overview.Progress.CompletionPercent()
	return out, nil
}

func (s *DashboardService) manager(ctx context.Context, search string) (*ManagerDashboard, error) {
	out := &ManagerDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members, err := s.api.TeamMembers(gctx)
		if err != nil {
			return fmt.Errorf("team members: %w", err)
		}
		out.Members = members
		return nil
	})
	g.Go(func() error {
		skills, err := s.api.TeamSkills(gctx)
		if err != nil {
			return fmt.Errorf("team skills: %w", err)
		}
		out.Skills = skills
		return nil
	})
	g.Go(func() error {
		own, err := s.api.EmployeeOverview(gctx)
		if err != nil {
			return fmt.Errorf("employee overview: %w", err)
		}
		out.Own = own
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.TeamSize = len(out.Members)
	for _, m := range out.Members {
		for _, a := range m.SkillAssessments {
			out.Distribution.Add(a.Gap())
		}
	}
	out.Members = model.FilterTeam(out.Members, search)
	return out, nil
}

func (s *DashboardService) admin(ctx context.Context, f model.MatrixFilter) (*AdminDashboard, error) {
	out := &AdminDashboard{}
	var employees []model.MatrixEmployee
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.api.AdminMetrics(gctx)
		if err != nil {
			return fmt.Errorf("admin metrics: %w", err)
		}
		out.Metrics = m
		return nil
	})
	g.Go(func() error {
		e, err := s.api.EmployeeMatrix(gctx)
		if err != nil {
			return fmt.Errorf("employee matrix: %w", err)
		}
		employees = e
		return nil
	})
	g.Go(func() error {
		dir, err := s.api.SkillDirectory(gctx)
		if err != nil {
			return fmt.Errorf("skill directory: %w", err)
		}
		out.Directory = dir
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Departments = model.Departments(employees)
	out.Distribution = model.MatrixDistribution(model.BuildSkillMatrix(employees))
	f.Normalize()
	out.Matrix = model.BuildSkillMatrix(model.FilterMatrix(employees, f))
	return out, nil
}

// UserReport is a printable summary of one user.
type UserReport struct {
	User         model.Employee        `json:"user"`
	Assessments  []ReportLine          `json:"assessments"`
	Distribution model.GapDistribution `json:"distribution"`
}

// ReportLine is one assessed skill in a user report.
type ReportLine struct {
	Skill             string          `json:"skill"`
	CurrentLevel      model.Level     `json:"currentLevel"`
	ExpectedLevel     model.Level     `json:"expectedLevel"`
	Gap               model.GapStatus `json:"gap"`
	CertificationName string          `json:"certificationName,omitempty"`
	CertificationURL  string          `json:"certificationUrl,omitempty"`
}

// UserReport loads a user and summarises their assessments.
func (s *DashboardService) UserReport(ctx context.Context, id domainauth.ID) (*UserReport, error) {
	if id.IsZero() {
		return nil, apperrors.ValidationField("id", "user id is required")
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	rep := &UserReport{
		User:         user,
		Assessments:  make([]ReportLine, 0, len(user.SkillAssessments)),
		Distribution: model.DistributionOf(user.SkillAssessments),
	}
	for _, a := range user.SkillAssessments {
		rep.Assessments = append(rep.Assessments, ReportLine{
			Skill:             a.SkillName(),
			CurrentLevel:      a.CurrentLevel,
			ExpectedLevel:     a.Expected(),
			Gap:               a.Gap(),
			CertificationName: a.CertificationName,
			CertificationURL:  a.CertificationURL,
		})
	}
	return rep, nil
}
