package auth

// Package auth contains domain-level types for sessions, route guarding and
// dashboard selection. It is pure and free of framework/adapter concerns.

import (
	"encoding/json"
	"strings"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
	// RoleHRTeam is accepted from the backend but carries no extra privileges.
	RoleHRTeam Role = "hr_team"
)

// ParseRole normalises a backend role string. Unknown values map to RoleEmployee.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleManager, RoleAdmin, RoleHRTeam, RoleEmployee:
		return r
	default:
		return RoleEmployee
	}
}

// UnmarshalJSON accepts any casing and falls back to employee for unknown roles.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// Privileged reports whether the role may switch dashboards.
func (r Role) Privileged() bool { return r == RoleManager || r == RoleAdmin }

// User is the identity returned by the backend at login.
type User struct {
	ID            ID     `json:"id"`
	EmployeeCode  string `json:"employeeCode"`
	EmployeeName  string `json:"employeeName"`
	OfficialEmail string `json:"officialEmail"`
	Role          Role   `json:"role"`
}

// LoginResponse is the body of a successful /auth/login call.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// AuthRecord is the combined record persisted under StorageKeyAuth.
type AuthRecord struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

// Durable storage keys and cookie names shared by the session components.
const (
	StorageKeyAuth     = "auth"
	StorageKeyUserData = "userdata"
	TokenCookieName    = "access_token"
)
