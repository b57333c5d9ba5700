package response

import "github.com/google/uuid"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HeroStats backs the landing-page counters.
type HeroStats struct {
	TotalFields   int `json:"totalFields"`
	TotalBookings int `json:"totalBookings"`
	TotalUsers    int `json:"totalUsers"`
}
