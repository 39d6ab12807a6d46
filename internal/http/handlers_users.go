package httpx

import (
	"net/http"

	"github.com/skillhub/skills-dashboard/internal/domain/model"
)

// UserHandlers proxies user records.
type UserHandlers struct{}

// List returns every user visible to the caller.
// GET /users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	users, err := sc.api.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, nonNil(users))
}

// Get returns one user.
// GET /users/{id}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	user, err := sc.api.GetUser(r.Context(), pathID(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Update patches a user.
// PATCH /users/{id}.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req model.UpdateUserRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	user, err := sc.api.UpdateUser(r.Context(), pathID(r, "id"), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// UpdateMemberSkill changes the expected level a manager set for a team member.
// PATCH /users/team-members/{id}/skills/{skillId}.
func (h *UserHandlers) UpdateMemberSkill(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req model.UpdateExpectedLevelRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	if err := sc.api.UpdateTeamMemberSkill(r.Context(), pathID(r, "id"), pathID(r, "skillId"), req); err != nil {
		respondError(w, r, err)
		return
	}
	writeStatus(w, http.StatusOK, "updated")
}
