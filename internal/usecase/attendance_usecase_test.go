package usecase

import (
	"errors"
	"testing"
	"time"

	"oa-portal/internal/apperr"
	"oa-portal/internal/testfixtures"
)

func TestCheckOutBeforeCheckIn(t *testing.T) {
	uc := NewAttendanceUsecase(testfixtures.NewAttendanceRepo(), "09:00")

	if _, err := uc.CheckOut(1); !errors.Is(err, apperr.ErrNoCheckInYet) {
		t.Fatalf("got %v, want ErrNoCheckInYet", err)
	}
}

func TestCheckInThenOut(t *testing.T) {
	uc := NewAttendanceUsecase(testfixtures.NewAttendanceRepo(), "09:00")

	record, err := uc.CheckIn(1)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if record.CheckInTime == "" {
		t.Fatal("check-in time not recorded")
	}
	if record.Date != time.Now().Format("2006-01-02") {
		t.Fatalf("record dated %q, want today", record.Date)
	}

	if _, err := uc.CheckIn(1); !errors.Is(err, apperr.ErrAlreadyCheckedIn) {
		t.Fatalf("second check-in: got %v, want ErrAlreadyCheckedIn", err)
	}

	record, err = uc.CheckOut(1)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if record.CheckOutTime == "" {
		t.Fatal("check-out time not recorded")
	}

	if _, err := uc.CheckOut(1); !errors.Is(err, apperr.ErrAlreadyCheckedOut) {
		t.Fatalf("second check-out: got %v, want ErrAlreadyCheckedOut", err)
	}
}

func TestCheckInLateness(t *testing.T) {
	// Work start at midnight: every check-in is late.
	late := NewAttendanceUsecase(testfixtures.NewAttendanceRepo(), "00:00")
	record, err := late.CheckIn(1)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if record.Status != "LATE" {
		t.Fatalf("status %q, want LATE", record.Status)
	}

	// Work start just before midnight: practically never late.
	onTime := NewAttendanceUsecase(testfixtures.NewAttendanceRepo(), "23:59")
	record, err = onTime.CheckIn(2)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if record.Status != "NORMAL" {
		t.Fatalf("status %q, want NORMAL", record.Status)
	}
}

func TestAttendanceRecordsAreDaily(t *testing.T) {
	repo := testfixtures.NewAttendanceRepo()
	uc := NewAttendanceUsecase(repo, "09:00")

	if _, err := uc.CheckIn(1); err != nil {
		t.Fatalf("CheckIn user 1: %v", err)
	}
	if _, err := uc.CheckIn(2); err != nil {
		t.Fatalf("CheckIn user 2: %v", err)
	}
	if len(repo.Records) != 2 {
		t.Fatalf("%d records, want one per user", len(repo.Records))
	}

	// Check-out mutates the same row rather than adding one.
	if _, err := uc.CheckOut(1); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if len(repo.Records) != 2 {
		t.Fatalf("check-out added a row, have %d", len(repo.Records))
	}
}

func TestMyWindow(t *testing.T) {
	uc := NewAttendanceUsecase(testfixtures.NewAttendanceRepo(), "09:00")

	if _, err := uc.CheckIn(1); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	list, err := uc.My(1, "", "")
	if err != nil {
		t.Fatalf("My: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("default window returned %d rows, want 1", len(list))
	}

	if _, err := uc.My(1, "yesterday", ""); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad date: got %v, want ErrValidation", err)
	}
}
