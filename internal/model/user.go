package model

// Role names in use. Reference data seeded at startup.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Firstname    string `json:"firstname" gorm:"size:50;not null"`
	Lastname     string `json:"lastname" gorm:"size:50;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string `json:"-" gorm:"size:150;not null"` // Never the raw password
	Roles        []Role `json:"roles,omitempty" gorm:"many2many:users_roles"`
}

// Role is a named authorization grant. A user may hold several.
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null"`
}

// RoleNames returns the names of the user's loaded roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
