package api

import (
	"github.com/learnity/learnity-backend/database"
	"github.com/learnity/learnity-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, attachments *services.AttachmentManager, jwtSecret string) *routeHandlers {
	return &routeHandlers{
		userHandler:     newUserHandler(database.UserRepo(), jwtSecret),
		postHandler:     newPostHandler(database.PostRepo(), database.UserRepo(), attachments),
		progressHandler: newProgressHandler(database.ProgressRepo(), database.UserRepo(), attachments),
		blogHandler:     newBlogHandler(database.BlogRepo(), attachments),
		commentHandler:  newCommentHandler(database.CommentRepo(), database.PostRepo()),
		videoHandler:    newVideoHandler(database.VideoRepo(), attachments),
	}
}
