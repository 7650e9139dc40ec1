// Package testfixtures provides in-memory implementations of the
// repository interfaces so usecase and handler tests run without a
// database. The leave fixture reproduces the conditional-update semantics
// of the real Decide under a mutex.
package testfixtures

import (
	"sort"
	"strings"
	"sync"
	"time"

	"oa-portal/internal/model"

	"gorm.io/gorm"
)

// ---- users ----

type UserRepo struct {
	mu     sync.Mutex
	nextID uint
	Users  map[uint]*model.User
	roles  map[string]*model.Role
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		Users: map[uint]*model.User{},
		roles: map[string]*model.Role{
			model.RoleAdmin:    {Model: gorm.Model{ID: 1}, Name: model.RoleAdmin},
			model.RoleEmployee: {Model: gorm.Model{ID: 2}, Name: model.RoleEmployee},
		},
	}
}

func (r *UserRepo) FindByUsername(username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepo) FindByID(id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.Users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.Users[user.ID] = user
	return nil
}

func (r *UserRepo) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Users[user.ID] = user
	return nil
}

func (r *UserRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.ManagerID != nil && *u.ManagerID == id {
			u.ManagerID = nil
		}
	}
	delete(r.Users, id)
	return nil
}

func (r *UserRepo) GetAll(search string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.Users {
		if search == "" ||
			strings.Contains(u.Username, search) ||
			strings.Contains(u.RealName, search) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepo) GetActive() ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.Users {
		if u.Status != model.StatusLeft {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepo) FindRoleByName(name string) (*model.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepo) ReplaceRoles(user *model.User, roles []model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.Users[user.ID]; ok {
		stored.Roles = roles
	}
	return nil
}

// ---- sessions ----

type SessionRepo struct {
	mu       sync.Mutex
	Sessions map[string]*model.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{Sessions: map[string]*model.Session{}}
}

func (r *SessionRepo) Create(session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sessions[session.Token] = session
	return nil
}

func (r *SessionRepo) FindByToken(token string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.Sessions[token]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *SessionRepo) DeleteByToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Sessions, token)
	return nil
}

func (r *SessionRepo) DeleteExpired(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.Sessions {
		if s.Expired(now) {
			delete(r.Sessions, token)
		}
	}
	return nil
}

// ---- leave requests ----

type LeaveRepo struct {
	mu       sync.Mutex
	nextID   uint
	Requests map[uint]*model.LeaveRequest
}

func NewLeaveRepo() *LeaveRepo {
	return &LeaveRepo{Requests: map[uint]*model.LeaveRequest{}}
}

func (r *LeaveRepo) Create(req *model.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	req.ID = r.nextID
	req.CreatedAt = time.Now()
	r.Requests[req.ID] = req
	return nil
}

func (r *LeaveRepo) GetByID(id uint) (*model.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, ok := r.Requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *LeaveRepo) GetByApplicantID(applicantID uint) ([]model.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.LeaveRequest
	for _, req := range r.Requests {
		if req.ApplicantID == applicantID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *LeaveRepo) GetPendingByApproverID(approverID uint) ([]model.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.LeaveRequest
	for _, req := range r.Requests {
		if req.Status == model.LeavePending && req.ApproverID != nil && *req.ApproverID == approverID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *LeaveRepo) GetAllPending() ([]model.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.LeaveRequest
	for _, req := range r.Requests {
		if req.Status == model.LeavePending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Decide mirrors the real conditional update: check-and-set under one lock.
func (r *LeaveRepo) Decide(id uint, status, comment string, decidedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.Requests[id]
	if !ok || req.Status != model.LeavePending {
		return false, nil
	}
	req.Status = status
	req.ApproverComment = comment
	req.DecidedAt = &decidedAt
	return true, nil
}

func (r *LeaveRepo) ExistsForUser(userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.Requests {
		if req.ApplicantID == userID || (req.ApproverID != nil && *req.ApproverID == userID) {
			return true, nil
		}
	}
	return false, nil
}

// ---- attendance ----

type AttendanceRepo struct {
	mu      sync.Mutex
	nextID  uint
	Records map[uint]*model.AttendanceRecord
}

func NewAttendanceRepo() *AttendanceRepo {
	return &AttendanceRepo{Records: map[uint]*model.AttendanceRecord{}}
}

func (r *AttendanceRepo) GetByUserAndDate(userID uint, date string) (*model.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.Records {
		if rec.UserID == userID && rec.Date == date {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *AttendanceRepo) Create(record *model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	record.ID = r.nextID
	r.Records[record.ID] = record
	return nil
}

func (r *AttendanceRepo) Update(record *model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records[record.ID] = record
	return nil
}

func (r *AttendanceRepo) GetRange(userID uint, from, to string) ([]model.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AttendanceRecord
	for _, rec := range r.Records {
		if rec.UserID == userID && rec.Date >= from && rec.Date <= to {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// ---- announcements ----

type AnnouncementRepo struct {
	mu     sync.Mutex
	nextID uint
	Items  []*model.Announcement
}

func NewAnnouncementRepo() *AnnouncementRepo {
	return &AnnouncementRepo{}
}

func (r *AnnouncementRepo) Create(a *model.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now()
	r.Items = append(r.Items, a)
	return nil
}

func (r *AnnouncementRepo) GetAll() ([]model.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Announcement, 0, len(r.Items))
	for i := len(r.Items) - 1; i >= 0; i-- {
		out = append(out, *r.Items[i])
	}
	return out, nil
}
