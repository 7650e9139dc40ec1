package model

import "gorm.io/gorm"

// Attendance status derived from the check-in/check-out pair.
const (
	AttendanceNormal = "NORMAL"
	AttendanceLate   = "LATE"
)

// AttendanceRecord holds one row per (user, date). Check-in creates it,
// check-out mutates the same row.
type AttendanceRecord struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index:idx_user_date,unique"`
	Date         string `json:"date" gorm:"index:idx_user_date,unique"` // YYYY-MM-DD
	CheckInTime  string `json:"check_in_time"`                          // HH:MM:SS, empty until check-in
	CheckOutTime string `json:"check_out_time"`
	Status       string `json:"status"`
}
