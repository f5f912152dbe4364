package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnity/learnity-backend/errs"
	"github.com/learnity/learnity-backend/models"
	"github.com/learnity/learnity-backend/services"
)

type progressHandler struct {
	responder    Responder
	logger       zerolog.Logger
	progressRepo progressStore
	userRepo     userStore
	attachments  *services.AttachmentManager
}

func newProgressHandler(progressRepo progressStore, userRepo userStore, attachments *services.AttachmentManager) progressHandler {
	logger := log.With().Str("handlerName", "progressHandler").Logger()

	return progressHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		progressRepo: progressRepo,
		userRepo:     userRepo,
		attachments:  attachments,
	}
}

// createProgress creates a learning progress entry from a multipart form with
// a required image
func (h progressHandler) createProgress() http.HandlerFunc {
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

		today := models.Today()
		entry := models.LearningProgress{
			Name:        name,
			Topic:       r.FormValue("topic"),
			Description: r.FormValue("description"),
			Status:      r.FormValue("status"),
			Tag:         r.FormValue("tag"),
			Image:       imageName,
			CreatedAt:   today,
			UpdatedAt:   today,
			UserID:      userID,
		}

		if err := h.progressRepo.Add(&entry); err != nil {
			h.attachments.Discard(r.Context(), imageName)
			h.responder.WriteError(w, wrapDatabaseError("create progress", "progress", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, entry)
	}
}

// getUserProgress lists the progress entries owned by the calling user
func (h progressHandler) getUserProgress() http.HandlerFunc {
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

		entries, err := h.progressRepo.FindByUser(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find progress", "progress", err))
			return
		}

		h.responder.WriteJSON(w, entries)
	}
}

// getProgress retrieves a single progress entry, scoped to its owner
func (h progressHandler) getProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "progressID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := userIDQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		entry, err := h.progressRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find progress", "progress", err))
			return
		}
		if entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("progress not found"))
			return
		}

		if err := services.AuthorizeOwner("progress", entry.UserID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, entry)
	}
}

// getProgressForUpdate fetches an entry without ownership scoping, for edit forms
func (h progressHandler) getProgressForUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "progressID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		entry, err := h.progressRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find progress", "progress", err))
			return
		}
		if entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("progress not found"))
			return
		}

		h.responder.WriteJSON(w, entry)
	}
}

// getAllProgress is the ungated administrative listing
func (h progressHandler) getAllProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.progressRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find progress", "progress", err))
			return
		}

		h.responder.WriteJSON(w, entries)
	}
}

// getProgressImage streams a progress image from the blob store
func (h progressHandler) getProgressImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.serveBlob(w, r, h.attachments.Store(), filenameParam(r))
	}
}

// updateProgress applies a null-preserving merge from the "progress details"
// JSON part and optionally replaces the image
func (h progressHandler) updateProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "progressID")
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

		details := r.FormValue("progress details")
		if details == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("progress details"))
			return
		}

		var payload models.ProgressDetails
		if err := json.Unmarshal([]byte(details), &payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("progress details", err))
			return
		}

		entry, err := h.progressRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find progress", "progress", err))
			return
		}
		if entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("progress not found"))
			return
		}

		if err := services.AuthorizeOwner("progress", entry.UserID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		applyStringField(&entry.Name, payload.Name)
		applyStringField(&entry.Topic, payload.Topic)
		applyStringField(&entry.Description, payload.Description)
		applyStringField(&entry.Status, payload.Status)
		applyStringField(&entry.Tag, payload.Tag)
		entry.UpdatedAt = models.Today()

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
			oldImage = entry.Image
			entry.Image = newImage
		}

		if err := h.progressRepo.Update(entry); err != nil {
			if ok {
				h.attachments.Discard(r.Context(), entry.Image)
			}
			h.responder.WriteError(w, wrapDatabaseError("update progress", "progress", err))
			return
		}

		h.attachments.Remove(r.Context(), oldImage)

		h.responder.WriteJSON(w, entry)
	}
}

// deleteProgress removes a progress entry and its image
func (h progressHandler) deleteProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "progressID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := userIDQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		entry, err := h.progressRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find progress", "progress", err))
			return
		}
		if entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("progress not found"))
			return
		}

		if err := services.AuthorizeOwner("progress", entry.UserID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.progressRepo.Delete(id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete progress", "progress", err))
			return
		}

		h.attachments.Remove(r.Context(), entry.Image)

		h.responder.WriteText(w, fmt.Sprintf("Data with id %d and image deleted", id))
	}
}
