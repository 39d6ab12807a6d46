//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/skillhub/skills-dashboard/internal/domain/auth"
)

const (
	maxSkillNameLen        = 255
	maxSkillDescriptionLen = 2000
)

// Skill is a catalogue entry.
type Skill struct {
	ID            auth.ID    `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category,omitempty"`
	Description   string     `json:"description,omitempty"`
	ExpectedLevel Level      `json:"expectedLevel,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks that the skill can be displayed and grouped.
func (s *Skill) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("skill name is required")
	}
	return nil
}

// CreateSkillRequest is the POST /skills payload.
type CreateSkillRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	ExpectedLevel Level  `json:"expectedLevel"`
}

// Normalize trims fields and canonicalises the level.
func (r *CreateSkillRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.ExpectedLevel = r.ExpectedLevel.Canonical()
}

// Validate validates the CreateSkillRequest fields.
func (r *CreateSkillRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxSkillNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if r.Category == "" {
		return errors.New("category is required")
	}
	if utf8.RuneCountInString(r.Description) > maxSkillDescriptionLen {
		return errors.New("description cannot exceed 2000 characters")
	}
	if !r.ExpectedLevel.Valid() {
		return errors.New("expectedLevel must be one of Beginner, Intermediate, Advanced, Expert")
	}
	return nil
}

// Assessment is a user's self-assessment of one skill.
type Assessment struct {
	ID                auth.ID    `json:"id"`
	UserID            auth.ID    `json:"userId"`
	SkillID           auth.ID    `json:"skillId"`
	CurrentLevel      Level      `json:"currentLevel"`
	ExpectedLevel     Level      `json:"expectedLevel,omitempty"`
	Status            string     `json:"status,omitempty"`
	Feedback          string     `json:"feedback,omitempty"`
	CertificationName string     `json:"certificationName,omitempty"`
	CertificationURL  string     `json:"certificationUrl,omitempty"`
	AssessmentDate    *time.Time `json:"assessmentDate,omitempty"`
	Skill             *Skill     `json:"skill,omitempty"`
}

// SkillName returns the embedded skill name, or "" if absent.
func (a Assessment) SkillName() string {
	if a.Skill == nil {
		return ""
	}
	return a.Skill.Name
}

// Expected returns the assessment's expected level, falling back to the skill's.
func (a Assessment) Expected() Level {
	if a.ExpectedLevel != "" {
		return a.ExpectedLevel
	}
	if a.Skill != nil {
		return a.Skill.ExpectedLevel
	}
	return ""
}

// Gap classifies the assessment's current level against its expected level.
func (a Assessment) Gap() GapStatus { return ClassifyGap(a.CurrentLevel, a.Expected()) }

// CreateAssessmentRequest is the POST /skills/assessments payload.
type CreateAssessmentRequest struct {
	SkillID           auth.ID `json:"skillId"`
	CurrentLevel      Level   `json:"currentLevel"`
	CertificationName string  `json:"certificationName,omitempty"`
	CertificationURL  string  `json:"certificationUrl,omitempty"`
}

// Normalize trims fields and canonicalises the level.
func (r *CreateAssessmentRequest) Normalize() {
	r.CurrentLevel = r.CurrentLevel.Canonical()
	r.CertificationName = strings.TrimSpace(r.CertificationName)
	r.CertificationURL = strings.TrimSpace(r.CertificationURL)
}

// Validate validates the CreateAssessmentRequest fields.
func (r *CreateAssessmentRequest) Validate() error {
	if r.SkillID.IsZero() {
		return errors.New("skillId is required")
	}
	if !r.CurrentLevel.Valid() {
		return errors.New("currentLevel must be one of Beginner, Intermediate, Advanced, Expert")
	}
	if r.CertificationURL != "" {
		u, err := url.Parse(r.CertificationURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("certificationUrl must be an absolute http(s) URL")
		}
	}
	return nil
}

// UpdateExpectedLevelRequest is the PATCH /users/team-members/:id/skills/:skillId payload.
type UpdateExpectedLevelRequest struct {
	ExpectedLevel Level `json:"expectedLevel"`
}

// Normalize canonicalises the level.
func (r *UpdateExpectedLevelRequest) Normalize() { r.ExpectedLevel = r.ExpectedLevel.Canonical() }

// Validate validates the UpdateExpectedLevelRequest fields.
func (r *UpdateExpectedLevelRequest) Validate() error {
	if !r.ExpectedLevel.Valid() {
		return errors.New("expectedLevel must be one of Beginner, Intermediate, Advanced, Expert")
	}
	return nil
}
