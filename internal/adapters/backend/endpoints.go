package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/domain/model"
)

// --- auth (anonymous) ---

// Login exchanges credentials for an access token and user.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (domainauth.LoginResponse, error) {
	const endpoint = "/auth/login"
	var body []byte
	if err := c.do(anonymous(ctx), call{
		method: http.MethodPost, endpoint: endpoint, path: endpoint, body: req, out: &body,
	}); err != nil {
		return domainauth.LoginResponse{}, err
	}
	resp, err := c.login.extract(body)
	if err != nil {
		return domainauth.LoginResponse{}, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return resp, nil
}

// ForgotPassword requests a one-time password by email.
func (c *Client) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	const endpoint = "/auth/forgot-password"
	return c.do(anonymous(ctx), call{method: http.MethodPost, endpoint: endpoint, path: endpoint, body: req})
}

// VerifyOTP exchanges the one-time password for a reset token.
func (c *Client) VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) (model.VerifyOTPResponse, error) {
	const endpoint = "/auth/verify-otp"
	var out model.VerifyOTPResponse
	if err := c.do(anonymous(ctx), call{
		method: http.MethodPost, endpoint: endpoint, path: endpoint, body: req, out: &out,
	}); err != nil {
		return model.VerifyOTPResponse{}, err
	}
	return out, validate(endpoint, &out)
}

// ResetPassword sets a new password using the reset token.
func (c *Client) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	const endpoint = "/auth/reset-password"
	return c.do(anonymous(ctx), call{method: http.MethodPost, endpoint: endpoint, path: endpoint, body: req})
}

// Register creates a user account. The response body is optional.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.Employee, error) {
	const endpoint = "/users"
	var raw []byte
	if err := c.do(anonymous(ctx), call{
		method: http.MethodPost, endpoint: endpoint, path: endpoint, body: req, out: &raw,
	}); err != nil {
		return model.Employee{}, err
	}
	var out model.Employee
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.Employee{}, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return out, nil
}

// Designations lists the designations offered at registration.
func (c *Client) Designations(ctx context.Context) ([]model.Designation, error) {
	const endpoint = "/designations"
	var out []model.Designation
	if err := c.do(anonymous(ctx), call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// --- users ---

// ListUsers returns every user visible to the caller.
func (c *Client) ListUsers(ctx context.Context) ([]model.Employee, error) {
	const endpoint = "/users"
	var out []model.Employee
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return nil, err
	}
	return out, validateEach(endpoint, out)
}

// GetUser returns one user.
func (c *Client) GetUser(ctx context.Context, id domainauth.ID) (model.Employee, error) {
	var out model.Employee
	if err := c.do(ctx, call{
		method: http.MethodGet, endpoint: "/users/:id", path: "/users/" + pathID(id), out: &out,
	}); err != nil {
		return model.Employee{}, err
	}
	return out, validate("/users/:id", &out)
}

// UpdateUser patches a user and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, id domainauth.ID, req model.UpdateUserRequest) (model.Employee, error) {
	var out model.Employee
	if err := c.do(ctx, call{
		method: http.MethodPatch, endpoint: "/users/:id", path: "/users/" + pathID(id), body: req, out: &out,
	}); err != nil {
		return model.Employee{}, err
	}
	return out, validate("/users/:id", &out)
}

// UpdateTeamMemberSkill changes the expected level of one skill for a team member.
func (c *Client) UpdateTeamMemberSkill(
	ctx context.Context,
	memberID, skillID domainauth.ID,
	req model.UpdateExpectedLevelRequest,
) error {
	return c.do(ctx, call{
		method:   http.MethodPatch,
		endpoint: "/users/team-members/:id/skills/:skillId",
		path:     "/users/team-members/" + pathID(memberID) + "/skills/" + pathID(skillID),
		body:     req,
	})
}

// --- dashboards ---

// EmployeeOverview returns the signed-in employee's skills and progress.
func (c *Client) EmployeeOverview(ctx context.Context) (model.EmployeeOverview, error) {
	const endpoint = "/dashboard/employee/overview"
	var out model.EmployeeOverview
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return model.EmployeeOverview{}, err
	}
	return out, validate(endpoint, &out)
}

// EmployeeTickets returns the signed-in employee's helpdesk tickets.
func (c *Client) EmployeeTickets(ctx context.Context) ([]model.Ticket, error) {
	const endpoint = "/dashboard/employee/tickets"
	var out []model.Ticket
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return nil, err
	}
	return out, validateEach(endpoint, out)
}

// AdminMetrics returns the organisation-wide headline numbers.
func (c *Client) AdminMetrics(ctx context.Context) (model.AdminMetrics, error) {
	const endpoint = "/dashboard/admin/metrics"
	var out model.AdminMetrics
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return model.AdminMetrics{}, err
	}
	return out, validate(endpoint, &out)
}

// EmployeeMatrix returns every employee with their assessments.
func (c *Client) EmployeeMatrix(ctx context.Context) ([]model.MatrixEmployee, error) {
	const endpoint = "/dashboard/admin/employee-matrix"
	var out []model.MatrixEmployee
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamMembers returns the manager's direct reports.
func (c *Client) TeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	const endpoint = "/dashboard/manager/team-members"
	var out []model.TeamMember
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamSkills returns the skills held across the manager's team.
func (c *Client) TeamSkills(ctx context.Context) ([]model.TeamSkill, error) {
	const endpoint = "/dashboard/manager/team-skills"
	var out []model.TeamSkill
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// SkillDirectory returns the skill catalogue.
func (c *Client) SkillDirectory(ctx context.Context) ([]model.Skill, error) {
	const endpoint = "/dashboard/skill-directory"
	var out []model.Skill
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, out: &out}); err != nil {
		return nil, err
	}
	return out, validateEach(endpoint, out)
}

// --- skills ---

// CreateSkill adds a skill to the catalogue.
func (c *Client) CreateSkill(ctx context.Context, req model.CreateSkillRequest) (model.Skill, error) {
	const endpoint = "/skills"
	var out model.Skill
	if err := c.do(ctx, call{method: http.MethodPost, endpoint: endpoint, path: endpoint, body: req, out: &out}); err != nil {
		return model.Skill{}, err
	}
	return out, validate(endpoint, &out)
}

// CreateAssessment records a self-assessment for the signed-in user.
func (c *Client) CreateAssessment(ctx context.Context, req model.CreateAssessmentRequest) (model.Assessment, error) {
	const endpoint = "/skills/assessments"
	var out model.Assessment
	if err := c.do(ctx, call{method: http.MethodPost, endpoint: endpoint, path: endpoint, body: req, out: &out}); err != nil {
		return model.Assessment{}, err
	}
	return out, nil
}

// --- helpdesk ---

// ListTickets returns tickets matching the filter.
func (c *Client) ListTickets(ctx context.Context, f model.TicketFilter) ([]model.Ticket, error) {
	const endpoint = "/helpdesk/tickets"
	f.Normalize()
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.QueryType != "" {
		q.Set("queryType", f.QueryType)
	}
	var out []model.Ticket
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: endpoint, query: q, out: &out}); err != nil {
		return nil, err
	}
	return out, validateEach(endpoint, out)
}

// CreateTicket opens a helpdesk ticket.
func (c *Client) CreateTicket(ctx context.Context, req model.CreateTicketRequest) (model.Ticket, error) {
	const endpoint = "/helpdesk/tickets"
	var out model.Ticket
	if err := c.do(ctx, call{method: http.MethodPost, endpoint: endpoint, path: endpoint, body: req, out: &out}); err != nil {
		return model.Ticket{}, err
	}
	return out, validate(endpoint, &out)
}

// UpdateTicket changes a ticket's status and admin notes.
func (c *Client) UpdateTicket(ctx context.Context, id domainauth.ID, req model.UpdateTicketRequest) (model.Ticket, error) {
	var out model.Ticket
	if err := c.do(ctx, call{
		method: http.MethodPatch, endpoint: "/helpdesk/tickets/:id", path: "/helpdesk/tickets/" + pathID(id), body: req, out: &out,
	}); err != nil {
		return model.Ticket{}, err
	}
	return out, validate("/helpdesk/tickets/:id", &out)
}
