package model

import "time"

// Role is a user's access role.
type Role string

const (
	RoleFarmer    Role = "farmer"
	RoleInspector Role = "inspector"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleInspector, RoleAdmin:
		return true
	}
	return false
}

// User is an account that records treatments or reviews compliance.
// Password holds the externally-produced hash; the API never returns it.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	FarmID    *string   `json:"farmId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InsertUser is the payload for creating a user.
type InsertUser struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName string  `json:"fullName"`
	Role     Role    `json:"role"`
	Email    string  `json:"email"`
	FarmID   *string `json:"farmId,omitempty"`
}
