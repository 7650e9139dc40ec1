package repository

import (
	"oa-portal/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUsername(username string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	// Delete soft-deletes the row and clears subordinates' manager references
	// in the same transaction so new submissions fail loudly instead of
	// resolving an approver that no longer exists.
	Delete(id uint) error
	GetAll(search string) ([]model.User, error)
	GetActive() ([]model.User, error)
	FindRoleByName(name string) (*model.Role, error)
	ReplaceRoles(user *model.User, roles []model.Role) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Roles").Preload("Manager").Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Roles").Preload("Manager").First(&user, id).Error
	return &user, err
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("manager_id = ?", id).Update("manager_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}

func (r *userRepository) GetAll(search string) ([]model.User, error) {
	var users []model.User
	query := r.db.Preload("Roles").Preload("Manager")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username LIKE ? OR real_name LIKE ?", pattern, pattern)
	}

	err := query.Find(&users).Error
	return users, err
}

func (r *userRepository) GetActive() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("status <> ?", model.StatusLeft).Find(&users).Error
	return users, err
}

func (r *userRepository) FindRoleByName(name string) (*model.Role, error) {
	var role model.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	return &role, err
}

func (r *userRepository) ReplaceRoles(user *model.User, roles []model.Role) error {
	return r.db.Model(user).Association("Roles").Replace(roles)
}
