package testfixtures

import (
	"oa-portal/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// AddUser seeds a user with a bcrypt-hashed password (min cost, tests only)
// and a single role.
func AddUser(repo *UserRepo, username, password, role string, managerID *uint) *model.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	roleRow, _ := repo.FindRoleByName(role)
	user := &model.User{
		Username:  username,
		Password:  string(hashed),
		RealName:  username,
		Status:    model.StatusActive,
		ManagerID: managerID,
		Roles:     []model.Role{*roleRow},
	}
	_ = repo.Create(user)
	return user
}

// UintPtr is a literal helper for optional ids.
func UintPtr(v uint) *uint {
	return &v
}
