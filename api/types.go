package api

import (
	"github.com/learnity/learnity-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler     userHandler
	postHandler     postHandler
	progressHandler progressHandler
	blogHandler     blogHandler
	commentHandler  commentHandler
	videoHandler    videoHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// Handlers depend on these narrow store interfaces rather than the concrete
// database repos, so tests can drive them with in-memory fakes. The database
// package satisfies every one of them.

type userStore interface {
	FindAll() ([]*models.User, error)
	FindByID(id int64) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Add(user *models.User) error
	Update(user *models.User) error
	Delete(id int64) error
}

type postStore interface {
	FindAll() ([]*models.Post, error)
	FindByID(id int64) (*models.Post, error)
	FindByUser(userID int64) ([]*models.Post, error)
	Add(post *models.Post) error
	Update(post *models.Post) error
	Delete(id int64) error
}

type progressStore interface {
	FindAll() ([]*models.LearningProgress, error)
	FindByID(id int64) (*models.LearningProgress, error)
	FindByUser(userID int64) ([]*models.LearningProgress, error)
	Add(entry *models.LearningProgress) error
	Update(entry *models.LearningProgress) error
	Delete(id int64) error
}

type blogStore interface {
	FindAll() ([]*models.Blog, error)
	FindByID(id int64) (*models.Blog, error)
	Add(blog *models.Blog) error
	Update(blog *models.Blog) error
	Delete(id int64) error
}

type commentStore interface {
	FindByID(id int64) (*models.Comment, error)
	FindByPost(postID int64) ([]*models.Comment, error)
	Add(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id int64) error
}

type videoStore interface {
	FindAll() ([]*models.Video, error)
	FindByID(id int64) (*models.Video, error)
	Add(video *models.Video) error
	Update(video *models.Video) error
	Delete(id int64) error
}
