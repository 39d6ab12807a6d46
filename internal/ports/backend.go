package ports

import (
	"context"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/domain/model"
)

// AuthAPI covers the anonymous authentication endpoints.
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (domainauth.LoginResponse, error)
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) (model.VerifyOTPResponse, error)
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error
	Register(ctx context.Context, req model.RegisterRequest) (model.Employee, error)
	Designations(ctx context.Context) ([]model.Designation, error)
}

// UsersAPI covers user records.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]model.Employee, error)
	GetUser(ctx context.Context, id domainauth.ID) (model.Employee, error)
	UpdateUser(ctx context.Context, id domainauth.ID, req model.UpdateUserRequest) (model.Employee, error)
	UpdateTeamMemberSkill(ctx context.Context, memberID, skillID domainauth.ID, req model.UpdateExpectedLevelRequest) error
}

// DashboardAPI covers the role-specific dashboard feeds.
type DashboardAPI interface {
	EmployeeOverview(ctx context.Context) (model.EmployeeOverview, error)
	EmployeeTickets(ctx context.Context) ([]model.Ticket, error)
	AdminMetrics(ctx context.Context) (model.AdminMetrics, error)
	EmployeeMatrix(ctx context.Context) ([]model.MatrixEmployee, error)
	TeamMembers(ctx context.Context) ([]model.TeamMember, error)
	TeamSkills(ctx context.Context) ([]model.TeamSkill, error)
	SkillDirectory(ctx context.Context) ([]model.Skill, error)
}

// SkillsAPI covers the skill catalogue and assessments.
type SkillsAPI interface {
	CreateSkill(ctx context.Context, req model.CreateSkillRequest) (model.Skill, error)
	CreateAssessment(ctx context.Context, req model.CreateAssessmentRequest) (model.Assessment, error)
}

// HelpdeskAPI covers helpdesk tickets.
type HelpdeskAPI interface {
	ListTickets(ctx context.Context, f model.TicketFilter) ([]model.Ticket, error)
	CreateTicket(ctx context.Context, req model.CreateTicketRequest) (model.Ticket, error)
	UpdateTicket(ctx context.Context, id domainauth.ID, req model.UpdateTicketRequest) (model.Ticket, error)
}

// BackendAPI is the full skills backend surface used by the HTTP layer.
type BackendAPI interface {
	AuthAPI
	UsersAPI
	DashboardAPI
	SkillsAPI
	HelpdeskAPI
}
