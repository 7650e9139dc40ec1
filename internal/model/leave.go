package model

import (
	"time"

	"gorm.io/gorm"
)

// Leave request status. PENDING is the only non-terminal state; a request
// leaves it exactly once.
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

// Leave types accepted at submission.
const (
	LeaveAnnual   = "ANNUAL"
	LeaveSick     = "SICK"
	LeavePersonal = "PERSONAL"
)

type LeaveRequest struct {
	gorm.Model
	ApplicantID uint   `json:"applicant_id"`
	// ApproverID is resolved to the applicant's manager at submission time
	// and never retargeted afterwards; requests stranded by a manager change
	// stay decidable through the admin override.
	ApproverID      *uint      `json:"approver_id"`
	Type            string     `json:"type"`
	StartDate       string     `json:"start_date"` // YYYY-MM-DD
	EndDate         string     `json:"end_date"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status" gorm:"default:PENDING"`
	ApproverComment string     `json:"approver_comment"`
	DecidedAt       *time.Time `json:"decided_at"`

	Applicant *User `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID"`
	Approver  *User `json:"approver,omitempty" gorm:"foreignKey:ApproverID"`
}

// ValidLeaveType reports whether t is one of the accepted leave types.
func ValidLeaveType(t string) bool {
	return t == LeaveAnnual || t == LeaveSick || t == LeavePersonal
}
