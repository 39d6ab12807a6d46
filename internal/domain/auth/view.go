package auth

// Dashboard names a role-specific dashboard variant.
type Dashboard string

const (
	DashboardEmployee Dashboard = "employee"
	DashboardManager  Dashboard = "manager"
	DashboardAdmin    Dashboard = "admin"
)

// Valid reports whether d is one of the known dashboard variants.
func (d Dashboard) Valid() bool {
	switch d {
	case DashboardEmployee, DashboardManager, DashboardAdmin:
		return true
	default:
		return false
	}
}

// DefaultDashboard returns the dashboard a user lands on after login or reload.
func DefaultDashboard(role Role) Dashboard {
	switch role {
	case RoleAdmin:
		return DashboardAdmin
	case RoleManager:
		return DashboardManager
	default:
		return DashboardEmployee
	}
}

// CanSwitchView reports whether the role is offered the dashboard switch control.
func CanSwitchView(role Role) bool { return role.Privileged() }

// ResolveDashboard picks the dashboard to render. A requested variant is honoured
// only for roles that may switch; everything else gets the role default.
func ResolveDashboard(role Role, requested *Dashboard) Dashboard {
	if requested == nil || !requested.Valid() || !CanSwitchView(role) {
		return DefaultDashboard(role)
	}
	return *requested
}
