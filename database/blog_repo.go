package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/learnity/learnity-backend/models"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// FindAll returns all blogs
func (r *BlogRepo) FindAll() ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.Find(&blogs).Error
	return blogs, err
}

// FindByID returns a blog by id, or nil when no such blog exists
func (r *BlogRepo) FindByID(id int64) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.First(&blog, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Add inserts a new blog
func (r *BlogRepo) Add(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// Update saves an existing blog
func (r *BlogRepo) Update(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

// Delete removes a blog by id
func (r *BlogRepo) Delete(id int64) error {
	return r.db.Delete(&models.Blog{}, id).Error
}
