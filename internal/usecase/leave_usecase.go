package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"oa-portal/internal/apperr"
	"oa-portal/internal/model"
	"oa-portal/internal/repository"

	"gorm.io/gorm"
)

// Notifier is told about decided requests. Implementations must be safe to
// call from a goroutine; failures are logged by the implementation and never
// reach the caller.
type Notifier interface {
	LeaveDecided(req *model.LeaveRequest, applicant *model.User)
}

// LeaveUsecase owns the leave state machine: PENDING -> APPROVED|REJECTED,
// exactly once, decided only by the resolved approver or an admin.
type LeaveUsecase struct {
	leaves   repository.LeaveRepository
	users    repository.UserRepository
	notifier Notifier // optional
}

func NewLeaveUsecase(leaves repository.LeaveRepository, users repository.UserRepository, notifier Notifier) *LeaveUsecase {
	return &LeaveUsecase{leaves: leaves, users: users, notifier: notifier}
}

const dateLayout = "2006-01-02"

type SubmitLeaveInput struct {
	Type      string
	StartDate string
	EndDate   string
	Reason    string
}

func (l *LeaveUsecase) Submit(applicantID uint, in SubmitLeaveInput) (*model.LeaveRequest, error) {
	if !model.ValidLeaveType(in.Type) {
		return nil, fmt.Errorf("%w: unknown leave type %q", apperr.ErrValidation, in.Type)
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", apperr.ErrValidation)
	}

	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", apperr.ErrValidation, in.StartDate)
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date %q", apperr.ErrValidation, in.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", apperr.ErrValidation)
	}

	applicant, err := l.users.FindByID(applicantID)
	if err != nil {
		return nil, fmt.Errorf("find applicant: %w", err)
	}
	approverID, err := l.resolveApprover(applicant)
	if err != nil {
		return nil, err
	}

	req := model.LeaveRequest{
		ApplicantID: applicantID,
		ApproverID:  &approverID,
		Type:        in.Type,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Reason:      in.Reason,
		Status:      model.LeavePending,
	}
	if err := l.leaves.Create(&req); err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return &req, nil
}

// resolveApprover fixes the approver to the applicant's current immediate
// manager. A missing, dangling or LEFT manager all fail the submission:
// better than persisting a request nobody can ever approve.
func (l *LeaveUsecase) resolveApprover(applicant *model.User) (uint, error) {
	if applicant.ManagerID == nil {
		return 0, apperr.ErrNoManagerAssigned
	}
	manager, err := l.users.FindByID(*applicant.ManagerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.ErrNoManagerAssigned
		}
		return 0, fmt.Errorf("find manager: %w", err)
	}
	if !manager.IsActive() {
		return 0, apperr.ErrNoManagerAssigned
	}
	return manager.ID, nil
}

// Decide transitions a request out of PENDING. Authorization and the state
// machine are checked together: only the resolved approver may act, except
// that ADMIN satisfies the approver check unconditionally. The transition
// itself is a conditional update, so of two racing calls exactly one wins
// and the other gets ErrAlreadyDecided.
func (l *LeaveUsecase) Decide(actorID uint, actorRoles []string, requestID uint, approve bool, comment string) (*model.LeaveRequest, error) {
	req, err := l.leaves.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("find leave request: %w", err)
	}

	isApprover := req.ApproverID != nil && *req.ApproverID == actorID
	if !isApprover && !hasRole(actorRoles, model.RoleAdmin) {
		return nil, apperr.ErrForbidden
	}

	if req.Status != model.LeavePending {
		return nil, apperr.ErrAlreadyDecided
	}

	status := model.LeaveRejected
	if approve {
		status = model.LeaveApproved
	}
	decidedAt := time.Now()

	updated, err := l.leaves.Decide(requestID, status, comment, decidedAt)
	if err != nil {
		return nil, fmt.Errorf("decide leave request: %w", err)
	}
	if !updated {
		// Lost the race: someone else moved it out of PENDING first.
		return nil, apperr.ErrAlreadyDecided
	}

	req.Status = status
	req.ApproverComment = comment
	req.DecidedAt = &decidedAt

	if l.notifier != nil {
		applicant := req.Applicant
		if applicant == nil {
			applicant, _ = l.users.FindByID(req.ApplicantID)
		}
		if applicant != nil {
			go l.notifier.LeaveDecided(req, applicant)
		}
	}
	return req, nil
}

func (l *LeaveUsecase) ListMine(applicantID uint) ([]model.LeaveRequest, error) {
	return l.leaves.GetByApplicantID(applicantID)
}

func (l *LeaveUsecase) ListToApprove(approverID uint) ([]model.LeaveRequest, error) {
	return l.leaves.GetPendingByApproverID(approverID)
}

func (l *LeaveUsecase) ListAllPending() ([]model.LeaveRequest, error) {
	return l.leaves.GetAllPending()
}

func hasRole(roles []string, name string) bool {
	for _, r := range roles {
		if r == name {
			return true
		}
	}
	return false
}
