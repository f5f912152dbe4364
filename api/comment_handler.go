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
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo commentStore
	postRepo    postStore
}

func newCommentHandler(commentRepo commentStore, postRepo postStore) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// commentPayload is the create/update body. Author is a pointer so an absent
// author can default to Anonymous on create without clobbering on update.
type commentPayload struct {
	Text   string  `json:"text"`
	Author *string `json:"author"`
}

// loadPost fetches the parent post or reports 404
func (h commentHandler) loadPost(r *http.Request) (*models.Post, error) {
	postID, err := idParam(r, "postID")
	if err != nil {
		return nil, err
	}

	post, err := h.postRepo.FindByID(postID)
	if err != nil {
		return nil, wrapDatabaseError("find post", "post", err)
	}
	if post == nil {
		return nil, errs.NewNotFoundError("post not found")
	}
	return post, nil
}

// loadComment fetches a comment and verifies it belongs to the given post.
// A comment on a different post is reported exactly like a missing one.
func (h commentHandler) loadComment(r *http.Request, postID int64) (*models.Comment, error) {
	commentID, err := idParam(r, "commentID")
	if err != nil {
		return nil, err
	}

	comment, err := h.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, wrapDatabaseError("find comment", "comment", err)
	}
	if comment == nil || comment.PostID != postID {
		return nil, errs.NewNotFoundError("comment not found")
	}
	return comment, nil
}

// createComment adds a comment to a post. The author defaults to Anonymous and
// the timestamp is always server-set; client-supplied dates are ignored.
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.loadPost(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload commentPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		if payload.Text == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("text"))
			return
		}

		author := models.AnonymousAuthor
		if payload.Author != nil && *payload.Author != "" {
			author = *payload.Author
		}

		comment := models.Comment{
			Text:   payload.Text,
			Author: author,
			Date:   time.Now(),
			PostID: post.ID,
		}

		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, comment)
	}
}

// getComments lists the comments on a post
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.loadPost(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comments, err := h.commentRepo.FindByPost(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, comments)
	}
}

// updateComment rewrites a comment's text and optionally its author. The
// creation date never changes.
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.loadPost(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.loadComment(r, post.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload commentPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		if payload.Text == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("text"))
			return
		}

		comment.Text = payload.Text
		if payload.Author != nil && *payload.Author != "" {
			comment.Author = *payload.Author
		}

		if err := h.commentRepo.Update(comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update comment", "comment", err))
			return
		}

		h.responder.WriteJSON(w, comment)
	}
}

// deleteComment removes a comment from a post
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.loadPost(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.loadComment(r, post.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		h.responder.WriteText(w, fmt.Sprintf("Comment %d deleted", comment.ID))
	}
}
