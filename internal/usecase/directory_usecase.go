package usecase

import (
	"errors"
	"fmt"
	"strings"

	"oa-portal/internal/apperr"
	"oa-portal/internal/model"
	"oa-portal/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DirectoryUsecase owns the principal directory: account lifecycle, role
// assignment and the manager graph used for approval routing.
type DirectoryUsecase struct {
	users  repository.UserRepository
	leaves repository.LeaveRepository
}

func NewDirectoryUsecase(users repository.UserRepository, leaves repository.LeaveRepository) *DirectoryUsecase {
	return &DirectoryUsecase{users: users, leaves: leaves}
}

type CreateUserInput struct {
	Username   string
	Password   string
	RealName   string
	Gender     string
	Phone      string
	Email      string
	Department string
	Position   string
	HireDate   string
	Role       string
	ManagerID  *uint
}

func (d *DirectoryUsecase) CreateUser(in CreateUserInput) (*model.User, error) {
	if strings.TrimSpace(in.Username) == "" ||
		strings.TrimSpace(in.Password) == "" ||
		strings.TrimSpace(in.RealName) == "" {
		return nil, fmt.Errorf("%w: username, password and real name are required", apperr.ErrValidation)
	}

	roleName := in.Role
	if roleName == "" {
		roleName = model.RoleEmployee
	}
	if !model.ValidRole(roleName) {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, in.Role)
	}

	if _, err := d.users.FindByUsername(in.Username); err == nil {
		return nil, apperr.ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if in.ManagerID != nil {
		if _, err := d.users.FindByID(*in.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.ErrUnknownManager
			}
			return nil, fmt.Errorf("check manager: %w", err)
		}
	}

	role, err := d.users.FindRoleByName(roleName)
	if err != nil {
		return nil, fmt.Errorf("load role %s: %w", roleName, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:   in.Username,
		Password:   string(hashed),
		RealName:   in.RealName,
		Gender:     in.Gender,
		Phone:      in.Phone,
		Email:      in.Email,
		Department: in.Department,
		Position:   in.Position,
		HireDate:   in.HireDate,
		Status:     model.StatusActive,
		ManagerID:  in.ManagerID,
		Roles:      []model.Role{*role},
	}
	if err := d.users.Create(&user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

type UpdateUserInput struct {
	RealName   *string
	Gender     *string
	Phone      *string
	Email      *string
	Department *string
	Position   *string
	Status     *string
	Role       *string
	ManagerID  *uint
	// ClearManager distinguishes "set manager to none" from "leave as is",
	// which a nil ManagerID alone cannot express.
	ClearManager bool
}

func (d *DirectoryUsecase) UpdateUser(id uint, in UpdateUserInput) (*model.User, error) {
	user, err := d.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.RealName != nil {
		user.RealName = *in.RealName
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.Position != nil {
		user.Position = *in.Position
	}
	if in.Status != nil {
		if *in.Status != model.StatusActive && *in.Status != model.StatusLeft {
			return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, *in.Status)
		}
		user.Status = *in.Status
	}

	if in.ClearManager {
		user.ManagerID = nil
		user.Manager = nil
	} else if in.ManagerID != nil {
		if err := d.checkManagerAssignment(id, *in.ManagerID); err != nil {
			return nil, err
		}
		user.ManagerID = in.ManagerID
		user.Manager = nil
	}

	if in.Role != nil {
		if !model.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, *in.Role)
		}
		role, err := d.users.FindRoleByName(*in.Role)
		if err != nil {
			return nil, fmt.Errorf("load role %s: %w", *in.Role, err)
		}
		if err := d.users.ReplaceRoles(user, []model.Role{*role}); err != nil {
			return nil, fmt.Errorf("replace roles: %w", err)
		}
		user.Roles = []model.Role{*role}
	}

	if err := d.users.Update(user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a principal. The acting admin can never delete itself.
// Users referenced by any leave request are status-flipped to LEFT instead
// of deleted so history keeps resolving; either way subordinates lose their
// manager reference.
func (d *DirectoryUsecase) DeleteUser(actorID, id uint) error {
	if actorID == id {
		return apperr.ErrCannotDeleteSelf
	}

	user, err := d.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	referenced, err := d.leaves.ExistsForUser(id)
	if err != nil {
		return fmt.Errorf("check leave references: %w", err)
	}
	if referenced {
		user.Status = model.StatusLeft
		if err := d.users.Update(user); err != nil {
			return fmt.Errorf("deactivate user: %w", err)
		}
		return nil
	}
	return d.users.Delete(id)
}

func (d *DirectoryUsecase) ListUsers(search string) ([]model.User, error) {
	return d.users.GetAll(search)
}

func (d *DirectoryUsecase) GetUser(id uint) (*model.User, error) {
	user, err := d.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ManagerCandidates returns the principals eligible to be picked as a
// manager. LEFT users are excluded so new requests are never routed to them.
func (d *DirectoryUsecase) ManagerCandidates() ([]model.User, error) {
	return d.users.GetActive()
}

// ManagerChain walks manager references upward from the user's immediate
// manager. The visited set makes a cyclic graph fail closed instead of
// looping.
func (d *DirectoryUsecase) ManagerChain(id uint) ([]uint, error) {
	var chain []uint
	visited := map[uint]bool{id: true}

	current, err := d.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	for current.ManagerID != nil {
		next := *current.ManagerID
		if visited[next] {
			return nil, apperr.ErrManagerCycle
		}
		visited[next] = true
		chain = append(chain, next)

		current, err = d.users.FindByID(next)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling reference: the chain simply ends here.
				return chain, nil
			}
			return nil, fmt.Errorf("walk manager chain: %w", err)
		}
	}
	return chain, nil
}

// checkManagerAssignment rejects an assignment that would close a cycle,
// self-reference included. Walks from the proposed manager upward; reaching
// userID means userID would become its own transitive manager.
func (d *DirectoryUsecase) checkManagerAssignment(userID, managerID uint) error {
	if userID == managerID {
		return apperr.ErrManagerCycle
	}

	manager, err := d.users.FindByID(managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUnknownManager
		}
		return fmt.Errorf("check manager: %w", err)
	}

	visited := map[uint]bool{managerID: true}
	current := manager
	for current.ManagerID != nil {
		next := *current.ManagerID
		if next == userID || visited[next] {
			return apperr.ErrManagerCycle
		}
		visited[next] = true

		current, err = d.users.FindByID(next)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("walk manager chain: %w", err)
		}
	}
	return nil
}
