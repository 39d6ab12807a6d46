//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"errors"
	"net/mail"
	"strings"

	"github.com/skillhub/skills-dashboard/internal/domain/auth"
)

// Employee is the full user record returned by /users endpoints.
type Employee struct {
	ID               auth.ID         `json:"id"`
	EmployeeCode     string          `json:"employeeCode"`
	EmployeeName     string          `json:"employeeName"`
	BusinessUnit     string          `json:"businessUnit,omitempty"`
	Department       string          `json:"department,omitempty"`
	OfficialEmail    string          `json:"officialEmail"`
	Designation      string          `json:"designation,omitempty"`
	Gender           string          `json:"gender,omitempty"`
	Role             auth.Role       `json:"role"`
	DateOfJoining    string          `json:"dateOfJoining,omitempty"`
	IsActive         bool            `json:"isActive"`
	ReportingManager *ManagerRef     `json:"reportingManager,omitempty"`
	Roles            json.RawMessage `json:"roles,omitempty"`
	SkillAssessments []Assessment    `json:"skillAssessments,omitempty"`
}

// ManagerRef is the reporting manager summary embedded in a user record.
type ManagerRef struct {
	ID            auth.ID `json:"id"`
	EmployeeName  string  `json:"employeeName"`
	Designation   string  `json:"designation,omitempty"`
	OfficialEmail string  `json:"officialEmail,omitempty"`
}

// Validate checks the fields the dashboards depend on.
func (e *Employee) Validate() error {
	if e.ID.IsZero() {
		return errors.New("id must be positive")
	}
	if strings.TrimSpace(e.EmployeeName) == "" && strings.TrimSpace(e.EmployeeCode) == "" {
		return errors.New("employeeName or employeeCode is required")
	}
	return nil
}

// UpdateUserRequest is the PATCH /users/:id payload.
type UpdateUserRequest struct {
	EmployeeName *string `json:"employeeName,omitempty"`
	Designation  *string `json:"designation,omitempty"`
	Password     *string `json:"password,omitempty"`
}

// Normalize trims the UpdateUserRequest fields.
func (r *UpdateUserRequest) Normalize() {
	if r.EmployeeName != nil {
		n := strings.TrimSpace(*r.EmployeeName)
		r.EmployeeName = &n
	}
	if r.Designation != nil {
		d := strings.TrimSpace(*r.Designation)
		r.Designation = &d
	}
}

// Validate ensures at least one field is updated and none is blank.
func (r *UpdateUserRequest) Validate() error {
	if r.EmployeeName == nil && r.Designation == nil && r.Password == nil {
		return errors.New("at least one field must be updated")
	}
	if r.EmployeeName != nil && *r.EmployeeName == "" {
		return errors.New("employeeName cannot be empty")
	}
	if r.Password != nil && len(*r.Password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// RegisterRequest is the POST /users payload used by self-registration.
type RegisterRequest struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	EmployeeID    string  `json:"employeeId"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	DesignationID auth.ID `json:"designationId"`
}

// Normalize trims the RegisterRequest fields.
func (r *RegisterRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate validates the RegisterRequest fields.
func (r *RegisterRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("firstName and lastName are required")
	}
	if r.EmployeeID == "" {
		return errors.New("employeeId is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	if r.DesignationID.IsZero() {
		return errors.New("designationId is required")
	}
	return nil
}

// Designation is an entry of GET /designations.
type Designation struct {
	ID   auth.ID `json:"id"`
	Name string  `json:"name"`
}

const minPasswordLen = 6

func validateEmail(s string) error {
	if s == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return errors.New("email is invalid")
	}
	return nil
}
