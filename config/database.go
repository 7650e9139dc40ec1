package config

import (
	"fmt"

	"oa-portal/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "oa_portal"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	// Auto migration keeps the schema in sync with the models.
	db.AutoMigrate(&model.Role{})
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Session{})
	db.AutoMigrate(&model.LeaveRequest{})
	db.AutoMigrate(&model.AttendanceRecord{})
	db.AutoMigrate(&model.Announcement{})

	DB = db
}
