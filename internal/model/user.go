package model

import "gorm.io/gorm"

// User status values. LEFT users stay in the table so historical leave
// requests keep pointing at a real row.
const (
	StatusActive = "ACTIVE"
	StatusLeft   = "LEFT"
)

type User struct {
	gorm.Model
	ManagerID  *uint  `json:"manager_id"` // Self-reference, null for top of hierarchy
	Username   string `json:"username" gorm:"unique;not null"`
	Password   string `json:"-"`
	RealName   string `json:"real_name"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	HireDate   string `json:"hire_date"`
	Status     string `json:"status" gorm:"default:ACTIVE"`

	// Relations
	Manager      *User  `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Subordinates []User `json:"-" gorm:"foreignKey:ManagerID"`
	Roles        []Role `json:"roles" gorm:"many2many:user_roles;"`
}

// RoleNames flattens the role relation into the closed set of names the
// middleware and client work with.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole is a set-membership test over the user's role names.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (u *User) IsActive() bool {
	return u.Status != StatusLeft
}
