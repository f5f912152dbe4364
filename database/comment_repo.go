package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/learnity/learnity-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByID returns a comment by id, or nil when no such comment exists
func (r *CommentRepo) FindByID(id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByPost returns the comments on a post
func (r *CommentRepo) FindByPost(postID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Where("post_id = ?", postID).Find(&comments).Error
	return comments, err
}

// Add inserts a new comment
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update saves an existing comment
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment by id
func (r *CommentRepo) Delete(id int64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
