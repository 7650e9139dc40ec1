package usecase

import (
	"errors"
	"fmt"
	"time"

	"oa-portal/internal/apperr"
	"oa-portal/internal/model"
	"oa-portal/internal/repository"

	"gorm.io/gorm"
)

// AttendanceUsecase keeps one record per (user, day): check-in creates it,
// check-out fills the same row.
type AttendanceUsecase struct {
	records   repository.AttendanceRepository
	workStart string // "HH:MM", check-ins after this are LATE
}

func NewAttendanceUsecase(records repository.AttendanceRepository, workStart string) *AttendanceUsecase {
	if workStart == "" {
		workStart = "09:00"
	}
	return &AttendanceUsecase{records: records, workStart: workStart}
}

func (a *AttendanceUsecase) CheckIn(userID uint) (*model.AttendanceRecord, error) {
	now := time.Now()
	today := now.Format(dateLayout)

	record, err := a.records.GetByUserAndDate(userID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	if err == nil && record.CheckInTime != "" {
		return nil, apperr.ErrAlreadyCheckedIn
	}

	status := model.AttendanceNormal
	if a.isLate(now) {
		status = model.AttendanceLate
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = &model.AttendanceRecord{
			UserID: userID,
			Date:   today,
		}
		record.CheckInTime = now.Format("15:04:05")
		record.Status = status
		if err := a.records.Create(record); err != nil {
			return nil, fmt.Errorf("create attendance: %w", err)
		}
		return record, nil
	}

	record.CheckInTime = now.Format("15:04:05")
	record.Status = status
	if err := a.records.Update(record); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return record, nil
}

func (a *AttendanceUsecase) CheckOut(userID uint) (*model.AttendanceRecord, error) {
	now := time.Now()
	today := now.Format(dateLayout)

	record, err := a.records.GetByUserAndDate(userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNoCheckInYet
		}
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	if record.CheckInTime == "" {
		return nil, apperr.ErrNoCheckInYet
	}
	if record.CheckOutTime != "" {
		return nil, apperr.ErrAlreadyCheckedOut
	}

	record.CheckOutTime = now.Format("15:04:05")
	// Status stays LATE when the check-in was late, NORMAL otherwise; the
	// completed pair never downgrades to an error state.
	if record.Status == "" {
		record.Status = model.AttendanceNormal
	}
	if err := a.records.Update(record); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return record, nil
}

// My returns the user's records between from and to (inclusive), both
// optional; the default window is the last 30 days.
func (a *AttendanceUsecase) My(userID uint, from, to string) ([]model.AttendanceRecord, error) {
	today := time.Now()
	if to == "" {
		to = today.Format(dateLayout)
	}
	if from == "" {
		from = today.AddDate(0, 0, -30).Format(dateLayout)
	}
	for _, d := range []string{from, to} {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, fmt.Errorf("%w: bad date %q", apperr.ErrValidation, d)
		}
	}
	return a.records.GetRange(userID, from, to)
}

func (a *AttendanceUsecase) isLate(now time.Time) bool {
	start, err := time.Parse("15:04", a.workStart)
	if err != nil {
		start, _ = time.Parse("15:04", "09:00")
	}
	limit := time.Date(now.Year(), now.Month(), now.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
	return now.After(limit)
}
