package repository

import (
	"oa-portal/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	GetByUserAndDate(userID uint, date string) (*model.AttendanceRecord, error)
	Create(record *model.AttendanceRecord) error
	Update(record *model.AttendanceRecord) error
	GetRange(userID uint, from, to string) ([]model.AttendanceRecord, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) GetByUserAndDate(userID uint, date string) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&record).Error
	return &record, err
}

func (r *attendanceRepository) Create(record *model.AttendanceRecord) error {
	return r.db.Create(record).Error
}

func (r *attendanceRepository) Update(record *model.AttendanceRecord) error {
	return r.db.Save(record).Error
}

func (r *attendanceRepository) GetRange(userID uint, from, to string) ([]model.AttendanceRecord, error) {
	var list []model.AttendanceRecord
	err := r.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date desc").
		Find(&list).Error
	return list, err
}
