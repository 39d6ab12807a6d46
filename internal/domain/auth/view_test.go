package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDashboard(t *testing.T) {
	tests := []struct {
		role Role
		want Dashboard
	}{
		{RoleEmployee, DashboardEmployee},
		{RoleManager, DashboardManager},
		{RoleAdmin, DashboardAdmin},
		{RoleHRTeam, DashboardEmployee},
		{Role("unknown"), DashboardEmployee},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultDashboard(tt.role))
		})
	}
}

func TestResolveDashboard(t *testing.T) {
	admin := DashboardAdmin
	employee := DashboardEmployee
	bogus := Dashboard("finance")

	assert.Equal(t, DashboardManager, ResolveDashboard(RoleManager, nil))
	assert.Equal(t, DashboardEmployee, ResolveDashboard(RoleManager, &employee))
	assert.Equal(t, DashboardAdmin, ResolveDashboard(RoleManager, &admin))
	assert.Equal(t, DashboardAdmin, ResolveDashboard(RoleAdmin, &bogus))

	// Employees are never offered the switch.
	assert.Equal(t, DashboardEmployee, ResolveDashboard(RoleEmployee, &admin))
	assert.Equal(t, DashboardEmployee, ResolveDashboard(RoleHRTeam, &admin))
}

func TestCanSwitchView(t *testing.T) {
	assert.True(t, CanSwitchView(RoleAdmin))
	assert.True(t, CanSwitchView(RoleManager))
	assert.False(t, CanSwitchView(RoleEmployee))
}
