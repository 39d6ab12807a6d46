//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"

	"github.com/skillhub/skills-dashboard/internal/domain/auth"
)

// OverviewSkill is one row of the employee overview skill list.
type OverviewSkill struct {
	SkillName          string `json:"skillName"`
	CurrentLevel       Level  `json:"currentLevel"`
	ExpectedLevel      Level  `json:"expectedLevel"`
	CertificationName  string `json:"certificationName,omitempty"`
	CertificationURL   string `json:"certificationUrl,omitempty"`
	ProgressPercentage int    `json:"progressPercentage"`
}

// Progress summarises an employee's skill completion.
type Progress struct {
	TotalSkills      int `json:"totalSkills"`
	CompletedSkills  int `json:"completedSkills"`
	InProgressSkills int `json:"inProgressSkills"`
}

// CompletionPercent returns completed/total as a rounded percentage.
func (p Progress) CompletionPercent() int { return Percent(p.CompletedSkills, p.TotalSkills) }

// EmployeeOverview is the body of GET /dashboard/employee/overview.
type EmployeeOverview struct {
	Skills   []OverviewSkill `json:"skills"`
	Tickets  []Ticket        `json:"tickets"`
	Progress Progress        `json:"progress"`
}

// Validate rejects impossible progress counts.
func (o *EmployeeOverview) Validate() error {
	p := o.Progress
	if p.TotalSkills < 0 || p.CompletedSkills < 0 || p.InProgressSkills < 0 {
		return errNegativeCount
	}
	return nil
}

// AdminMetrics is the body of GET /dashboard/admin/metrics.
type AdminMetrics struct {
	TotalEmployees                int     `json:"totalEmployees"`
	TotalSkills                   int     `json:"totalSkills"`
	PercentageMeetingExpectations float64 `json:"percentageMeetingExpectations"`
	TotalBusinessUnits            int     `json:"totalBusinessUnits"`
}

// Validate rejects negative totals and out-of-range percentages.
func (m *AdminMetrics) Validate() error {
	if m.TotalEmployees < 0 || m.TotalSkills < 0 || m.TotalBusinessUnits < 0 {
		return errNegativeCount
	}
	if m.PercentageMeetingExpectations < 0 || m.PercentageMeetingExpectations > 100 {
		return errPercentRange
	}
	return nil
}

// MatrixEmployee is one entry of GET /dashboard/admin/employee-matrix.
type MatrixEmployee struct {
	Name             string       `json:"name"`
	Role             string       `json:"role"`
	Department       string       `json:"department"`
	SkillAssessments []Assessment `json:"skillAssessments"`
}

// TeamMember is one entry of GET /dashboard/manager/team-members.
type TeamMember struct {
	Employee
	SkillNames string `json:"skillNames,omitempty"`
}

// TeamSkill is one entry of GET /dashboard/manager/team-skills.
type TeamSkill struct {
	SkillID    auth.ID `json:"skillId"`
	SkillName  string  `json:"skillName"`
	UsersCount int     `json:"usersCount"`
}

// MatrixCell is a single employee/skill intersection in the skill matrix.
type MatrixCell struct {
	CurrentLevel  Level     `json:"currentLevel"`
	ExpectedLevel Level     `json:"expectedLevel"`
	Gap           GapStatus `json:"gap"`
}

// MatrixRow is an employee row with assessments keyed by skill name.
type MatrixRow struct {
	Name       string                `json:"name"`
	Role       string                `json:"role"`
	Department string                `json:"department"`
	Skills     map[string]MatrixCell `json:"skills"`
}

// SkillMatrix is the grouped matrix: one column per skill name in first-seen order.
type SkillMatrix struct {
	Columns []string    `json:"columns"`
	Rows    []MatrixRow `json:"rows"`
}

// BuildSkillMatrix groups each employee's assessments by skill name. When an
// employee has several assessments for the same skill the first one wins.
// Assessments without an embedded skill are skipped.
func BuildSkillMatrix(employees []MatrixEmployee) SkillMatrix {
	m := SkillMatrix{Columns: []string{}, Rows: make([]MatrixRow, 0, len(employees))}
	seen := map[string]bool{}
	for _, e := range employees {
		row := MatrixRow{
			Name:       e.Name,
			Role:       e.Role,
			Department: e.Department,
			Skills:     make(map[string]MatrixCell, len(e.SkillAssessments)),
		}
		for _, a := range e.SkillAssessments {
			name := a.SkillName()
			if name == "" {
				continue
			}
			if !seen[name] {
				seen[name] = true
				m.Columns = append(m.Columns, name)
			}
			if _, dup := row.Skills[name]; dup {
				continue
			}
			row.Skills[name] = MatrixCell{
				CurrentLevel:  a.CurrentLevel,
				ExpectedLevel: a.Expected(),
				Gap:           a.Gap(),
			}
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

// MatrixFilter narrows the employee matrix.
type MatrixFilter struct {
	Search     string
	Department string
}

// Normalize trims the filter and treats "all" as no department filter.
func (f *MatrixFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	f.Department = strings.TrimSpace(f.Department)
	if strings.EqualFold(f.Department, "all") {
		f.Department = ""
	}
}

// FilterMatrix keeps employees whose name, role or department contains the
// search text (case-insensitive) and whose department equals the filter.
func FilterMatrix(employees []MatrixEmployee, f MatrixFilter) []MatrixEmployee {
	out := make([]MatrixEmployee, 0, len(employees))
	for _, e := range employees {
		if !containsFold(f.Search, e.Name, e.Role, e.Department) {
			continue
		}
		if f.Department != "" && e.Department != f.Department {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTeam keeps members whose name, designation or department contains the
// search text (case-insensitive).
func FilterTeam(members []TeamMember, search string) []TeamMember {
	search = strings.TrimSpace(search)
	out := make([]TeamMember, 0, len(members))
	for _, m := range members {
		if containsFold(search, m.EmployeeName, m.Designation, m.Department) {
			out = append(out, m)
		}
	}
	return out
}

// Departments returns the distinct non-empty departments in first-seen order.
func Departments(employees []MatrixEmployee) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, e := range employees {
		if e.Department == "" || seen[e.Department] {
			continue
		}
		seen[e.Department] = true
		out = append(out, e.Department)
	}
	return out
}

// GapDistribution counts assessments per gap status.
type GapDistribution struct {
	Total            int `json:"total"`
	Below            int `json:"below"`
	Meeting          int `json:"meeting"`
	Exceeding        int `json:"exceeding"`
	BelowPercent     int `json:"belowPercent"`
	MeetingPercent   int `json:"meetingPercent"`
	ExceedingPercent int `json:"exceedingPercent"`
}

// Add records one gap status.
func (d *GapDistribution) Add(g GapStatus) {
	d.Total++
	switch g {
	case GapBelow:
		d.Below++
	case GapExceeding:
		d.Exceeding++
	default:
		d.Meeting++
	}
	d.BelowPercent = Percent(d.Below, d.Total)
	d.MeetingPercent = Percent(d.Meeting, d.Total)
	d.ExceedingPercent = Percent(d.Exceeding, d.Total)
}

// DistributionOf tallies the gap status of every assessment.
func DistributionOf(assessments []Assessment) GapDistribution {
	var d GapDistribution
	for _, a := range assessments {
		d.Add(a.Gap())
	}
	return d
}

// MatrixDistribution tallies the gap status of every cell in the matrix.
func MatrixDistribution(m SkillMatrix) GapDistribution {
	var d GapDistribution
	for _, row := range m.Rows {
		for _, col := range m.Columns {
			if c, ok := row.Skills[col]; ok {
				d.Add(c.Gap)
			}
		}
	}
	return d
}

func containsFold(needle string, haystack ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
