package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/learnity/learnity-backend/models"
)

type ProgressRepo struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) *ProgressRepo {
	return &ProgressRepo{db}
}

// FindAll returns all learning progress entries
func (r *ProgressRepo) FindAll() ([]*models.LearningProgress, error) {
	var entries []*models.LearningProgress
	err := r.db.Find(&entries).Error
	return entries, err
}

// FindByID returns a progress entry by id, or nil when no such entry exists
func (r *ProgressRepo) FindByID(id int64) (*models.LearningProgress, error) {
	var entry models.LearningProgress
	err := r.db.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByUser returns the progress entries owned by a user
func (r *ProgressRepo) FindByUser(userID int64) ([]*models.LearningProgress, error) {
	var entries []*models.LearningProgress
	err := r.db.Where("user_id = ?", userID).Find(&entries).Error
	return entries, err
}

// Add inserts a new progress entry
func (r *ProgressRepo) Add(entry *models.LearningProgress) error {
	return r.db.Create(entry).Error
}

// Update saves an existing progress entry
func (r *ProgressRepo) Update(entry *models.LearningProgress) error {
	return r.db.Save(entry).Error
}

// Delete removes a progress entry by id
func (r *ProgressRepo) Delete(id int64) error {
	return r.db.Delete(&models.LearningProgress{}, id).Error
}
