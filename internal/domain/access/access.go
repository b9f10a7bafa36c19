// Package access maps the dashboard role selector onto the views a caller
// may see. It is a presentation switch, not authentication: nothing here
// proves who the caller is.
package access

import "strings"

// Role is the dashboard audience.
type Role string

// Known roles.
const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Capabilities are the view flags handed to the presentation layer.
type Capabilities struct {
	TaskMatching bool `json:"task_matching"`
	Insights     bool `json:"insights"`
	AllProfiles  bool `json:"all_profiles"`
	SelfProfile  bool `json:"self_profile"`
}

// ParseRole reads a role case-insensitively. Anything unrecognised is
// treated as an employee, the narrower view.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleEmployee
	}
}

// CapabilitiesFor returns the views available to role.
func CapabilitiesFor(role Role) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{TaskMatching: true, Insights: true, AllProfiles: true, SelfProfile: true}
	default:
		return Capabilities{SelfProfile: true}
	}
}
