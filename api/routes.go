package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every resource endpoint onto the router
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// User endpoints
		r.Post("/user", handlers.userHandler.registerUser())
		r.Post("/login", handlers.userHandler.login())
		r.Get("/user", handlers.userHandler.getAllUsers())
		r.Get("/user/{userID}", handlers.userHandler.getUser())
		r.Put("/user/{userID}", handlers.userHandler.updateUser())
		r.Delete("/user/{userID}", handlers.userHandler.deleteUser())

		// Post endpoints (owner-scoped except the /all and update-form fetches)
		r.Post("/post", handlers.postHandler.createPost())
		r.Get("/post", handlers.postHandler.getUserPosts())
		r.Get("/post/all", handlers.postHandler.getAllPosts())
		r.Get("/post/update/{postID}", handlers.postHandler.getPostForUpdate())
		r.Get("/post/image/{filename}", handlers.postHandler.getPostImage())
		r.Get("/post/{postID}", handlers.postHandler.getPost())
		r.Put("/post/{postID}", handlers.postHandler.updatePost())
		r.Delete("/post/{postID}", handlers.postHandler.deletePost())

		// Comment sub-resource
		r.Post("/post/{postID}/comments", handlers.commentHandler.createComment())
		r.Get("/post/{postID}/comments", handlers.commentHandler.getComments())
		r.Put("/post/{postID}/comments/{commentID}", handlers.commentHandler.updateComment())
		r.Delete("/post/{postID}/comments/{commentID}", handlers.commentHandler.deleteComment())

		// Learning progress endpoints (owner-scoped, same shape as posts)
		r.Post("/progress", handlers.progressHandler.createProgress())
		r.Get("/progress", handlers.progressHandler.getUserProgress())
		r.Get("/progress/all", handlers.progressHandler.getAllProgress())
		r.Get("/progress/update/{progressID}", handlers.progressHandler.getProgressForUpdate())
		r.Get("/progress/uploads/{filename}", handlers.progressHandler.getProgressImage())
		r.Get("/progress/{progressID}", handlers.progressHandler.getProgress())
		r.Put("/progress/{progressID}", handlers.progressHandler.updateProgress())
		r.Delete("/progress/{progressID}", handlers.progressHandler.deleteProgress())

		// Blog endpoints (unowned, multi-image)
		r.Post("/blog/add", handlers.blogHandler.addBlog())
		r.Get("/blog", handlers.blogHandler.getAllBlogs())
		r.Get("/blog/get/{blogID}", handlers.blogHandler.getBlog())
		r.Get("/blog/uploads/{filename}", handlers.blogHandler.getBlogImage())
		r.Put("/blog/update/{blogID}", handlers.blogHandler.updateBlog())
		r.Delete("/blog/{blogID}", handlers.blogHandler.deleteBlog())

		// Video endpoints
		r.Post("/videos", handlers.videoHandler.createVideo())
		r.Get("/videos", handlers.videoHandler.getAllVideos())
		r.Get("/videos/{videoID}", handlers.videoHandler.getVideo())
		r.Put("/videos/increment/{videoID}", handlers.videoHandler.incrementAge())
		r.Put("/videos/{videoID}", handlers.videoHandler.updateVideo())
		r.Delete("/videos/{videoID}", handlers.videoHandler.deleteVideo())
		r.Post("/videos/{videoID}/image", handlers.videoHandler.uploadVideoImage())
		r.Get("/videos/{videoID}/image", handlers.videoHandler.getVideoImage())
	})
}
