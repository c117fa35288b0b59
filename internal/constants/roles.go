package constants

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func IsValidUserRole(role string) bool {
	switch UserRole(role) {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}
