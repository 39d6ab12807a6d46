package httpx

import (
	"net/http"

	"github.com/skillhub/skills-dashboard/internal/domain/model"
)

// SkillHandlers proxies the skill catalogue and assessments.
type SkillHandlers struct{}

// Directory lists the skill catalogue.
// GET /skills.
func (h *SkillHandlers) Directory(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	skills, err := sc.api.SkillDirectory(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, nonNil(skills))
}

// Create adds a skill to the catalogue.
// POST /skills.
func (h *SkillHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req model.CreateSkillRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	skill, err := sc.api.CreateSkill(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, skill)
}

// Assess records a self-assessment.
// POST /skills/assessments.
func (h *SkillHandlers) Assess(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req model.CreateAssessmentRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	a, err := sc.api.CreateAssessment(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, a)
}
