package httpx

import (
	"net/http"

	"github.com/skillhub/skills-dashboard/internal/domain/model"
)

// HelpdeskHandlers proxies helpdesk tickets.
type HelpdeskHandlers struct{}

type ticketList struct {
	Tickets []model.Ticket     `json:"tickets"`
	Counts  model.TicketCounts `json:"counts"`
}

// List returns tickets matching ?search=&status=&queryType= with per-status counts.
// GET /helpdesk/tickets.
func (h *HelpdeskHandlers) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	f := model.TicketFilter{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		QueryType: q.Get("queryType"),
	}
	f.Normalize()

	tickets, err := sc.api.ListTickets(r.Context(), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	tickets = nonNil(tickets)
	WriteJSON(w, http.StatusOK, ticketList{Tickets: tickets, Counts: model.CountTickets(tickets)})
}

// Create opens a ticket.
// POST /helpdesk/tickets.
func (h *HelpdeskHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req model.CreateTicketRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	t, err := sc.api.CreateTicket(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, t)
}

// Update changes a ticket's status and admin notes.
// PATCH /helpdesk/tickets/{id}.
func (h *HelpdeskHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req model.UpdateTicketRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	t, err := sc.api.UpdateTicket(r.Context(), pathID(r, "id"), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, t)
}
