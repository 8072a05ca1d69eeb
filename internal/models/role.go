package models

const (
	RoleUser           = "user"
	RoleAdmin          = "admin"
	RoleProjectManager = "project_manager"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleProjectManager:
		return true
	}
	return false
}
