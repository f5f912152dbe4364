package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/learnity/learnity-backend/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindAll returns all posts
func (r *PostRepo) FindAll() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Find(&posts).Error
	return posts, err
}

// FindByID returns a post by id, or nil when no such post exists
func (r *PostRepo) FindByID(id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByUser returns the posts owned by a user
func (r *PostRepo) FindByUser(userID int64) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Where("user_id = ?", userID).Find(&posts).Error
	return posts, err
}

// Add inserts a new post
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update saves an existing post
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete removes a post and its comments in one transaction. Cascading here
// is deliberate: comments have no life of their own once the post is gone.
func (r *PostRepo) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
