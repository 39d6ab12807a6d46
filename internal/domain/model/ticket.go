//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/skillhub/skills-dashboard/internal/domain/auth"
)

// TicketStatus is the lifecycle state of a helpdesk ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// ParseTicketStatus normalises casing and the hyphenated in-progress spelling.
func ParseTicketStatus(s string) TicketStatus {
	v := strings.ToLower(strings.TrimSpace(s))
	return TicketStatus(strings.ReplaceAll(v, "-", "_"))
}

// Valid reports whether the status is known.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	default:
		return false
	}
}

// UnmarshalJSON normalises the status on decode.
func (s *TicketStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = ParseTicketStatus(v)
	return nil
}

// TicketPriority ranks helpdesk tickets.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// Valid reports whether the priority is known.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Ticket is a helpdesk ticket.
type Ticket struct {
	ID            auth.ID         `json:"id"`
	TicketID      string          `json:"ticketId"`
	SubmittedBy   json.RawMessage `json:"submittedBy,omitempty"`
	Status        TicketStatus    `json:"status"`
	Priority      TicketPriority  `json:"priority"`
	AssignedAdmin json.RawMessage `json:"assignedAdmin,omitempty"`
	Description   string          `json:"description"`
	QueryType     string          `json:"queryType"`
	AdminNotes    string          `json:"adminNotes,omitempty"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// Validate checks that the ticket has an identifier.
func (t *Ticket) Validate() error {
	if t.ID.IsZero() && t.TicketID == "" {
		return errors.New("ticket id is required")
	}
	return nil
}

// TicketFilter holds the optional query parameters of GET /helpdesk/tickets.
type TicketFilter struct {
	Search    string
	Status    string
	QueryType string
}

// Normalize trims the filter values and normalises the status.
func (f *TicketFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	f.QueryType = strings.TrimSpace(f.QueryType)
	if s := strings.TrimSpace(f.Status); s != "" && !strings.EqualFold(s, "all") {
		f.Status = string(ParseTicketStatus(s))
	} else {
		f.Status = ""
	}
}

const maxTicketDescriptionLen = 5000

// CreateTicketRequest is the POST /helpdesk/tickets payload.
type CreateTicketRequest struct {
	QueryType   string         `json:"queryType"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
}

// Normalize trims fields and defaults the priority to low.
func (r *CreateTicketRequest) Normalize() {
	r.QueryType = strings.TrimSpace(r.QueryType)
	r.Description = strings.TrimSpace(r.Description)
	r.Priority = TicketPriority(strings.ToLower(strings.TrimSpace(string(r.Priority))))
	if r.Priority == "" {
		r.Priority = PriorityLow
	}
}

// Validate validates the CreateTicketRequest fields.
func (r *CreateTicketRequest) Validate() error {
	if r.QueryType == "" {
		return errors.New("queryType is required")
	}
	if r.Description == "" {
		return errors.New("description is required")
	}
	if utf8.RuneCountInString(r.Description) > maxTicketDescriptionLen {
		return errors.New("description cannot exceed 5000 characters")
	}
	if !r.Priority.Valid() {
		return errors.New("priority must be one of low, medium, high")
	}
	return nil
}

// UpdateTicketRequest is the PATCH /helpdesk/tickets/:id payload.
type UpdateTicketRequest struct {
	Status     TicketStatus `json:"status"`
	AdminNotes string       `json:"adminNotes,omitempty"`
}

// Normalize trims admin notes. Status is normalised on decode.
func (r *UpdateTicketRequest) Normalize() {
	r.Status = ParseTicketStatus(string(r.Status))
	r.AdminNotes = strings.TrimSpace(r.AdminNotes)
}

// Validate validates the UpdateTicketRequest fields.
func (r *UpdateTicketRequest) Validate() error {
	if !r.Status.Valid() {
		return errors.New("status must be one of open, in_progress, resolved, closed")
	}
	return nil
}

// TicketCounts tallies tickets per status.
type TicketCounts struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// CountTickets tallies tickets by status. Unknown statuses count toward Total only.
func CountTickets(tickets []Ticket) TicketCounts {
	c := TicketCounts{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case TicketOpen:
			c.Open++
		case TicketInProgress:
			c.InProgress++
		case TicketResolved:
			c.Resolved++
		case TicketClosed:
			c.Closed++
		}
	}
	return c
}
