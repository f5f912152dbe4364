package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/learnity/learnity-backend/models"
)

type VideoRepo struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db}
}

// FindAll returns all videos
func (r *VideoRepo) FindAll() ([]*models.Video, error) {
	var videos []*models.Video
	err := r.db.Find(&videos).Error
	return videos, err
}

// FindByID returns a video by id, or nil when no such video exists
func (r *VideoRepo) FindByID(id int64) (*models.Video, error) {
	var video models.Video
	err := r.db.First(&video, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Add inserts a new video
func (r *VideoRepo) Add(video *models.Video) error {
	return r.db.Create(video).Error
}

// Update saves an existing video
func (r *VideoRepo) Update(video *models.Video) error {
	return r.db.Save(video).Error
}

// Delete removes a video by id
func (r *VideoRepo) Delete(id int64) error {
	return r.db.Delete(&models.Video{}, id).Error
}
