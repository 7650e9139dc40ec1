package database

import (
	"log"

	"oa-portal/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll creates the role rows and the first accounts. Safe to run on
// every boot: existing rows are left alone.
func SeedAll(db *gorm.DB) {
	// 1. Roles (closed set)
	for _, name := range []string{model.RoleAdmin, model.RoleEmployee} {
		r := model.Role{Name: name}
		db.FirstOrCreate(&r, model.Role{Name: name})
	}

	var adminRole, employeeRole model.Role
	db.Where("name = ?", model.RoleAdmin).First(&adminRole)
	db.Where("name = ?", model.RoleEmployee).First(&employeeRole)

	// 2. First admin account
	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	admin := model.User{
		Username: "admin",
		Password: string(hashed),
		RealName: "Administrator",
		Status:   model.StatusActive,
		Roles:    []model.Role{adminRole},
	}
	if err := db.Where("username = ?", admin.Username).First(&model.User{}).Error; err == gorm.ErrRecordNotFound {
		if err := db.Create(&admin).Error; err != nil {
			log.Println("seed admin failed:", err)
		} else {
			log.Println("seeded admin account")
		}
	}

	// 3. Sample employee reporting to the admin
	var adminRow model.User
	if err := db.Where("username = ?", "admin").First(&adminRow).Error; err != nil {
		return
	}
	emp := model.User{
		Username:  "emp",
		Password:  string(hashed),
		RealName:  "Employee A",
		Status:    model.StatusActive,
		ManagerID: &adminRow.ID,
		Roles:     []model.Role{employeeRole},
	}
	if err := db.Where("username = ?", emp.Username).First(&model.User{}).Error; err == gorm.ErrRecordNotFound {
		if err := db.Create(&emp).Error; err != nil {
			log.Println("seed employee failed:", err)
		} else {
			log.Println("seeded sample employee")
		}
	}
}
