// Package mocks provides mock implementations of the session and backend ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// Hand-written doubles for browser side effects live in the auth subpackage.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockDashboardAPI(ctrl)
//	api.EXPECT().AdminMetrics(gomock.Any()).Return(model.AdminMetrics{}, nil)
package mocks

// Generate mock for DurableStorage interface from internal/ports package.
// This creates MockDurableStorage with methods: Get, Set, Remove
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=durable_storage_mock.go github.com/skillhub/skills-dashboard/internal/ports DurableStorage

// Generate mock for TokenVerifier interface from internal/ports package.
// This creates MockTokenVerifier with methods: Verify
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_verifier_mock.go github.com/skillhub/skills-dashboard/internal/ports TokenVerifier

// Generate mock for DashboardAPI interface from internal/ports package.
// This creates MockDashboardAPI with methods for every dashboard feed:
// EmployeeOverview, EmployeeTickets, AdminMetrics, EmployeeMatrix, TeamMembers, TeamSkills, SkillDirectory
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=dashboard_api_mock.go github.com/skillhub/skills-dashboard/internal/ports DashboardAPI

// Generate mock for UsersAPI interface from internal/ports package.
// This creates MockUsersAPI with methods: ListUsers, GetUser, UpdateUser, UpdateTeamMemberSkill
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=users_api_mock.go github.com/skillhub/skills-dashboard/internal/ports UsersAPI
