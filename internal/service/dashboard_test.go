package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/domain/model"
	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
	"github.com/skillhub/skills-dashboard/internal/mocks"
)

func newDashboardService(t *testing.T) (*DashboardService, *mocks.MockDashboardAPI, *mocks.MockUsersAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockDashboardAPI(ctrl)
	users := mocks.NewMockUsersAPI(ctrl)
	return NewDashboardService(DashboardServiceOptions{API: api, Users: users}), api, users
}

func assessment(skill string, current, expected model.Level) model.Assessment {
	return model.Assessment{
		CurrentLevel: current,
		Skill:        &model.Skill{Name: skill, ExpectedLevel: expected},
	}
}

func TestNewDashboardService_RequiresDeps(t *testing.T) {
	assert.Panics(t, func() { NewDashboardService(DashboardServiceOptions{}) })
}

func TestDashboardService_Employee(t *testing.T) {
	svc, api, users := newDashboardService(t)
	ctx := context.Background()

	api.EXPECT().EmployeeOverview(gomock.Any()).Return(model.EmployeeOverview{
		Progress: model.Progress{TotalSkills: 3, CompletedSkills: 2},
	}, nil)
	api.EXPECT().EmployeeTickets(gomock.Any()).Return([]model.Ticket{
		{ID: "1", Status: model.TicketOpen},
		{ID: "2", Status: model.TicketInProgress},
		{ID: "3", Status: model.TicketOpen},
	}, nil)
	api.EXPECT().SkillDirectory(gomock.Any()).Return([]model.Skill{{ID: "9", Name: "Go"}}, nil)
	users.EXPECT().GetUser(gomock.Any(), domainauth.ID("42")).Return(model.Employee{ID: "42", EmployeeName: "Ada"}, nil)

	view, err := svc.Build(ctx, DashboardQuery{Dashboard: domainauth.DashboardEmployee, UserID: "42"})
	require.NoError(t, err)
	require.NotNil(t, view.Employee)
	assert.Nil(t, view.Manager)
	assert.Nil(t, view.Admin)

	assert.Equal(t, 67, view.Employee.CompletionPercent)
	assert.Equal(t, 3, view.Employee.TicketCounts.Total)
	assert.Equal(t, 2, view.Employee.TicketCounts.Open)
	assert.Equal(t, "Ada", view.Employee.Profile.EmployeeName)
	assert.Len(t, view.Employee.Directory, 1)
}

func TestDashboardService_EmployeeWithoutUserSkipsProfile(t *testing.T) {
	svc, api, _ := newDashboardService(t)

	api.EXPECT().EmployeeOverview(gomock.Any()).Return(model.EmployeeOverview{
		Tickets: []model.Ticket{{ID: "5", Status: model.TicketClosed}},
	}, nil)
	api.EXPECT().EmployeeTickets(gomock.Any()).Return(nil, nil)
	api.EXPECT().SkillDirectory(gomock.Any()).Return(nil, nil)

	view, err := svc.Build(context.Background(), DashboardQuery{Dashboard: domainauth.DashboardEmployee})
	require.NoError(t, err)
	assert.Nil(t, view.Employee.Profile)
	assert.Equal(t, 1, view.Employee.TicketCounts.Closed)
	assert.Equal(t, 0, view.Employee.CompletionPercent)
}

func TestDashboardService_Manager(t *testing.T) {
	svc, api, _ := newDashboardService(t)

	members := []model.TeamMember{
		{Employee: model.Employee{ID: "1", EmployeeName: "Ada", Designation: "Engineer", SkillAssessments: []model.Assessment{
			assessment("Go", model.LevelBeginner, model.LevelAdvanced),
			assessment("SQL", model.LevelExpert, model.LevelAdvanced),
		}}},
		{Employee: model.Employee{ID: "2", EmployeeName: "Linus", Designation: "Analyst", SkillAssessments: []model.Assessment{
			assessment("Go", model.LevelAdvanced, model.LevelAdvanced),
		}}},
	}
	api.EXPECT().TeamMembers(gomock.Any()).Return(members, nil)
	api.EXPECT().TeamSkills(gomock.Any()).Return([]model.TeamSkill{{SkillID: "1", SkillName: "Go", UsersCount: 2}}, nil)
	api.EXPECT().EmployeeOverview(gomock.Any()).Return(model.EmployeeOverview{}, nil)

	view, err := svc.Build(context.Background(), DashboardQuery{Dashboard: domainauth.DashboardManager, Search: "analyst"})
	require.NoError(t, err)
	require.NotNil(t, view.Manager)

	assert.Equal(t, 2, view.Manager.TeamSize)
	require.Len(t, view.Manager.Members, 1)
	assert.Equal(t, "Linus", view.Manager.Members[0].EmployeeName)
	assert.Equal(t, 3, view.Manager.Distribution.Total)
	assert.Equal(t, 1, view.Manager.Distribution.Below)
	assert.Equal(t, 1, view.Manager.Distribution.Meeting)
	assert.Equal(t, 1, view.Manager.Distribution.Exceeding)
}

func TestDashboardService_AdminFiltersMatrix(t *testing.T) {
	svc, api, _ := newDashboardService(t)

	employees := []model.MatrixEmployee{
		{Name: "Ada", Role: "Engineer", Department: "R&D", SkillAssessments: []model.Assessment{
			assessment("Go", model.LevelExpert, model.LevelAdvanced),
		}},
		{Name: "Grace", Role: "Manager", Department: "Ops", SkillAssessments: []model.Assessment{
			assessment("SQL", model.LevelBeginner, model.LevelIntermediate),
		}},
	}
	api.EXPECT().AdminMetrics(gomock.Any()).Return(model.AdminMetrics{TotalEmployees: 2}, nil)
	api.EXPECT().EmployeeMatrix(gomock.Any()).Return(employees, nil)
	api.EXPECT().SkillDirectory(gomock.Any()).Return([]model.Skill{{ID: "1", Name: "Go"}, {ID: "2", Name: "SQL"}}, nil)

	view, err := svc.Build(context.Background(), DashboardQuery{
		Dashboard:  domainauth.DashboardAdmin,
		Department: "Ops",
	})
	require.NoError(t, err)
	require.NotNil(t, view.Admin)

	assert.Equal(t, 2, view.Admin.Metrics.TotalEmployees)
	assert.Equal(t, []string{"R&D", "Ops"}, view.Admin.Departments)
	require.Len(t, view.Admin.Matrix.Rows, 1)
	assert.Equal(t, "Grace", view.Admin.Matrix.Rows[0].Name)
	assert.Equal(t, []string{"SQL"}, view.Admin.Matrix.Columns)
	assert.Equal(t, 2, view.Admin.Distribution.Total, "distribution covers the unfiltered matrix")
}

func TestDashboardService_FirstErrorWins(t *testing.T) {
	svc, api, _ := newDashboardService(t)
	boom := errors.New("backend exploded")

	api.EXPECT().AdminMetrics(gomock.Any()).Return(model.AdminMetrics{}, boom)
	api.EXPECT().EmployeeMatrix(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]model.MatrixEmployee, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	api.EXPECT().SkillDirectory(gomock.Any()).Return(nil, nil)

	_, err := svc.Build(context.Background(), DashboardQuery{Dashboard: domainauth.DashboardAdmin})
	require.ErrorIs(t, err, boom)
}

func TestDashboardService_UnknownDashboard(t *testing.T) {
	svc, _, _ := newDashboardService(t)
	_, err := svc.Build(context.Background(), DashboardQuery{Dashboard: "hr"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDashboardService_UserReport(t *testing.T) {
	svc, _, users := newDashboardService(t)

	users.EXPECT().GetUser(gomock.Any(), domainauth.ID("7")).Return(model.Employee{
		ID:           "7",
		EmployeeName: "Ada",
		SkillAssessments: []model.Assessment{
			assessment("Go", model.LevelAdvanced, model.LevelAdvanced),
			{CurrentLevel: model.LevelBeginner, ExpectedLevel: model.LevelExpert, CertificationName: "CKA"},
		},
	}, nil)

	rep, err := svc.UserReport(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Ada", rep.User.EmployeeName)
	require.Len(t, rep.Assessments, 2)
	assert.Equal(t, "Go", rep.Assessments[0].Skill)
	assert.Equal(t, model.GapMeeting, rep.Assessments[0].Gap)
	assert.Equal(t, model.GapBelow, rep.Assessments[1].Gap)
	assert.Equal(t, "CKA", rep.Assessments[1].CertificationName)
	assert.Equal(t, 50, rep.Distribution.BelowPercent)

	_, err = svc.UserReport(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDashboardService_UserReportPropagatesErrors(t *testing.T) {
	svc, _, users := newDashboardService(t)
	users.EXPECT().GetUser(gomock.Any(), domainauth.ID("7")).Return(model.Employee{}, apperrors.NotFoundf("user %s", "7"))

	_, err := svc.UserReport(context.Background(), "7")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
