package database

import (
	"gorm.io/gorm"

	"github.com/learnity/learnity-backend/models"
)

type Database struct {
	userRepo     *UserRepo
	postRepo     *PostRepo
	progressRepo *ProgressRepo
	blogRepo     *BlogRepo
	commentRepo  *CommentRepo
	videoRepo    *VideoRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:     NewUserRepo(db),
		postRepo:     NewPostRepo(db),
		progressRepo: NewProgressRepo(db),
		blogRepo:     NewBlogRepo(db),
		commentRepo:  NewCommentRepo(db),
		videoRepo:    NewVideoRepo(db),
	}
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.LearningProgress{},
		&models.Blog{},
		&models.Comment{},
		&models.Video{},
	)
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) ProgressRepo() *ProgressRepo {
	return d.progressRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) VideoRepo() *VideoRepo {
	return d.videoRepo
}
