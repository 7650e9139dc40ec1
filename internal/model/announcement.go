package model

import "gorm.io/gorm"

type Announcement struct {
	gorm.Model
	Title     string `json:"title" gorm:"not null"`
	Content   string `json:"content" gorm:"type:text"`
	CreatorID uint   `json:"creator_id"`
}
