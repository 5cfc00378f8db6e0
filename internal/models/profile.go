package models

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleCollector = "collector"
)

// Profile extends a User with the role tag that drives authorization.
// Every user row has exactly one profile row, written in the same
// transaction as the user itself.
type Profile struct {
	UserID  string `json:"user_id"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleCollector:
		return true
	}
	return false
}
