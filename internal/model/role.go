package model

import "gorm.io/gorm"

// Closed role set. Role rows are seeded once and never created from
// client input.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

type Role struct {
	gorm.Model
	Name  string `json:"name" gorm:"unique;not null"`
	Users []User `json:"-" gorm:"many2many:user_roles;"`
}

// ValidRole reports whether name is part of the closed role set.
func ValidRole(name string) bool {
	return name == RoleAdmin || name == RoleEmployee
}
