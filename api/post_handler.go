package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnity/learnity-backend/errs"
	"github.com/learnity/learnity-backend/models"
	"github.com/learnity/learnity-backend/services"
)

type postHandler struct {
	responder   Responder
	logger      zerolog.Logger
	postRepo    postStore
	userRepo    userStore
	attachments *services.AttachmentManager
}

func newPostHandler(postRepo postStore, userRepo userStore, attachments *services.AttachmentManager) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		postRepo:    postRepo,
		userRepo:    userRepo,
		attachments: attachments,
	}
}

// createPost creates a post from a multipart form with a required image.
// Timestamps are server-set; a client-supplied createdAt is ignored.
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		name, err := requiredFormValue(r, "name")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := userIDQuery(r)
		if err != nil {
			// userId may also arrive as a form field in multipart creates
			userID, err = parseFormInt64(r, "userId")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		file, header, ok, err := optionalFormFile(r, "file")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !ok {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		imageName, err := h.attachments.StoreUpload(r.Context(), header.Filename, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		now := time.Now()
		post := models.Post{
			Name:        name,
			Topic:       r.FormValue("topic"),
			Description: r.FormValue("description"),
			Status:      r.FormValue("status"),
			Tag:         r.FormValue("tag"),
			Image:       imageName,
			CreatedAt:   now,
			UpdatedAt:   now,
			UserID:      userID,
		}

		if err := h.postRepo.Add(&post); err != nil {
			// Do not leave a blob behind for a row that never existed.
			h.attachments.Discard(r.Context(), imageName)
			h.responder.WriteError(w, wrapDatabaseError("create post", "post", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// getUserPosts lists the posts owned by the calling user
func (h postHandler) getUserPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		posts, err := h.postRepo.FindByUser(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getPost retrieves a single post, scoped to its owner
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := userIDQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.postRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		if err := services.AuthorizeOwner("post", post.UserID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// getPostForUpdate fetches a post without ownership scoping, for edit forms
func (h postHandler) getPostForUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.postRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// getAllPosts is the ungated administrative listing
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.postRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getPostImage streams a post image from the blob store
func (h postHandler) getPostImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.serveBlob(w, r, h.attachments.Store(), filenameParam(r))
	}
}

// updatePost applies a null-preserving merge from the "post details" JSON part
// and optionally replaces the image. updatedAt is always refreshed server-side
// regardless of what the payload carries.
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := userIDQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		details := r.FormValue("post details")
		if details == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("post details"))
			return
		}

		var payload models.PostDetails
		if err := json.Unmarshal([]byte(details), &payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("post details", err))
			return
		}

		post, err := h.postRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		if err := services.AuthorizeOwner("post", post.UserID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		applyStringField(&post.Name, payload.Name)
		applyStringField(&post.Topic, payload.Topic)
		applyStringField(&post.Description, payload.Description)
		applyStringField(&post.Status, payload.Status)
		applyStringField(&post.Tag, payload.Tag)
		post.UpdatedAt = time.Now()

		oldImage := ""
		file, header, ok, err := optionalFormFile(r, "file")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if ok {
			defer file.Close()

			newImage, err := h.attachments.StoreUpload(r.Context(), header.Filename, file)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			oldImage = post.Image
			post.Image = newImage
		}

		if err := h.postRepo.Update(post); err != nil {
			if ok {
				h.attachments.Discard(r.Context(), post.Image)
			}
			h.responder.WriteError(w, wrapDatabaseError("update post", "post", err))
			return
		}

		// Old image goes away only after the row durably points at the new one.
		h.attachments.Remove(r.Context(), oldImage)

		h.responder.WriteJSON(w, post)
	}
}

// deletePost removes a post, its comments and its image
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := userIDQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.postRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		if err := services.AuthorizeOwner("post", post.UserID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.postRepo.Delete(id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete post", "post", err))
			return
		}

		h.attachments.Remove(r.Context(), post.Image)

		h.responder.WriteText(w, fmt.Sprintf("Post with id %d and image deleted", id))
	}
}

// applyStringField overwrites dst only when the payload supplied the field.
func applyStringField(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
