// Package profile manages dashboard users: their profile record, their
// role and the admin login flow.
package profile

// Role classifies a dashboard user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// UserProfile is the editable identity record shown in the dashboard.
type UserProfile struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	UpdatedAt int64  `json:"updatedAt"`
}
