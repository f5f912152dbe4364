package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/learnity/learnity-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindAll returns all users
func (r *UserRepo) FindAll() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Find(&users).Error
	return users, err
}

// FindByID returns a user by id, or nil when no such user exists
func (r *UserRepo) FindByID(id int64) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email, or nil when no such user exists
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new user
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves an existing user
func (r *UserRepo) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user by id
func (r *UserRepo) Delete(id int64) error {
	return r.db.Delete(&models.User{}, id).Error
}
