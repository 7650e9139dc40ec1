package repository

import (
	"oa-portal/internal/model"

	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(a *model.Announcement) error
	GetAll() ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db}
}

func (r *announcementRepository) Create(a *model.Announcement) error {
	return r.db.Create(a).Error
}

func (r *announcementRepository) GetAll() ([]model.Announcement, error) {
	var list []model.Announcement
	err := r.db.Order("created_at desc").Find(&list).Error
	return list, err
}
