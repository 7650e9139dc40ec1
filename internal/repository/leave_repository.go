package repository

import (
	"time"

	"oa-portal/internal/model"

	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(req *model.LeaveRequest) error
	GetByID(id uint) (*model.LeaveRequest, error)
	GetByApplicantID(applicantID uint) ([]model.LeaveRequest, error)
	GetPendingByApproverID(approverID uint) ([]model.LeaveRequest, error)
	GetAllPending() ([]model.LeaveRequest, error)
	// Decide performs the conditional transition out of PENDING. It reports
	// false when the row was no longer PENDING, which is how a racing second
	// decision loses.
	Decide(id uint, status, comment string, decidedAt time.Time) (bool, error)
	ExistsForUser(userID uint) (bool, error)
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db}
}

func (r *leaveRepository) Create(req *model.LeaveRequest) error {
	return r.db.Create(req).Error
}

func (r *leaveRepository) GetByID(id uint) (*model.LeaveRequest, error) {
	var req model.LeaveRequest
	err := r.db.Preload("Applicant").Preload("Approver").First(&req, id).Error
	return &req, err
}

func (r *leaveRepository) GetByApplicantID(applicantID uint) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	err := r.db.Where("applicant_id = ?", applicantID).
		Preload("Approver").
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *leaveRepository) GetPendingByApproverID(approverID uint) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	err := r.db.Where("approver_id = ? AND status = ?", approverID, model.LeavePending).
		Preload("Applicant").
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *leaveRepository) GetAllPending() ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	err := r.db.Where("status = ?", model.LeavePending).
		Preload("Applicant").Preload("Approver").
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *leaveRepository) Decide(id uint, status, comment string, decidedAt time.Time) (bool, error) {
	// Single conditional UPDATE: the WHERE on status makes the transition
	// atomic, so two concurrent decisions cannot both succeed.
	result := r.db.Model(&model.LeaveRequest{}).
		Where("id = ? AND status = ?", id, model.LeavePending).
		Updates(map[string]interface{}{
			"status":           status,
			"approver_comment": comment,
			"decided_at":       decidedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *leaveRepository) ExistsForUser(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.LeaveRequest{}).
		Where("applicant_id = ? OR approver_id = ?", userID, userID).
		Count(&count).Error
	return count > 0, err
}
