package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnity/learnity-backend/errs"
	"github.com/learnity/learnity-backend/models"
	"github.com/learnity/learnity-backend/services"
	"github.com/learnity/learnity-backend/storage"
)

type videoHandler struct {
	responder   Responder
	logger      zerolog.Logger
	videoRepo   videoStore
	attachments *services.AttachmentManager
}

func newVideoHandler(videoRepo videoStore, attachments *services.AttachmentManager) videoHandler {
	logger := log.With().Str("handlerName", "videoHandler").Logger()

	return videoHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		videoRepo:   videoRepo,
		attachments: attachments,
	}
}

type videoPayload struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// createVideo creates a video card from a JSON body; the image is attached
// separately via the image endpoint
func (h videoHandler) createVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload videoPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("video", err))
			return
		}

		if payload.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		video := models.Video{
			Name:        payload.Name,
			Age:         payload.Age,
			Email:       payload.Email,
			Description: payload.Description,
		}

		if err := h.videoRepo.Add(&video); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create video", "video", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, video)
	}
}

// getAllVideos lists every video
func (h videoHandler) getAllVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videos, err := h.videoRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find videos", "videos", err))
			return
		}

		h.responder.WriteJSON(w, videos)
	}
}

// getVideo retrieves a video by id
func (h videoHandler) getVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "videoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		video, err := h.videoRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find video", "video", err))
			return
		}
		if video == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("video not found"))
			return
		}

		h.responder.WriteJSON(w, video)
	}
}

// updateVideo overwrites the profile fields. Full-overwrite merge; the image
// reference is only touched by the image endpoints.
func (h videoHandler) updateVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "videoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		video, err := h.videoRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find video", "video", err))
			return
		}
		if video == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("video not found"))
			return
		}

		var payload videoPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("video", err))
			return
		}

		video.Name = payload.Name
		video.Age = payload.Age
		video.Email = payload.Email
		video.Description = payload.Description

		if err := h.videoRepo.Update(video); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update video", "video", err))
			return
		}

		h.responder.WriteJSON(w, video)
	}
}

// incrementAge bumps the stored age by one
func (h videoHandler) incrementAge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "videoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		video, err := h.videoRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find video", "video", err))
			return
		}
		if video == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("video not found"))
			return
		}

		video.Age++

		if err := h.videoRepo.Update(video); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update video", "video", err))
			return
		}

		h.responder.WriteJSON(w, video)
	}
}

// deleteVideo removes a video and its image
func (h videoHandler) deleteVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "videoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		video, err := h.videoRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find video", "video", err))
			return
		}
		if video == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("video not found"))
			return
		}

		if err := h.videoRepo.Delete(id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete video", "video", err))
			return
		}

		h.attachments.Remove(r.Context(), video.ImageName)

		h.responder.WriteText(w, fmt.Sprintf("Video with ID %d has been deleted successfully.", id))
	}
}

// uploadVideoImage attaches or replaces the video's image. The MIME type is
// detected from the upload bytes, not trusted from the client header. The new
// blob is durable before the old one is removed.
func (h videoHandler) uploadVideoImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "videoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		video, err := h.videoRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find video", "video", err))
			return
		}
		if video == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("video not found"))
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		file, header, ok, err := optionalFormFile(r, "imageFile")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !ok {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("imageFile"))
			return
		}
		defer file.Close()

		head := make([]byte, 3072)
		n, err := io.ReadFull(file, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("imageFile", err))
			return
		}

		imageName, err := h.attachments.StoreUpload(r.Context(), header.Filename, io.MultiReader(bytes.NewReader(head[:n]), file))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		oldImage := video.ImageName
		video.ImageName = imageName
		video.ImageType = mimetype.Detect(head[:n]).String()

		if err := h.videoRepo.Update(video); err != nil {
			h.attachments.Discard(r.Context(), imageName)
			h.responder.WriteError(w, wrapDatabaseError("update video", "video", err))
			return
		}

		h.attachments.Remove(r.Context(), oldImage)

		h.responder.WriteJSON(w, video)
	}
}

// getVideoImage streams the video's image with its stored MIME type
func (h videoHandler) getVideoImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "videoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		video, err := h.videoRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find video", "video", err))
			return
		}
		if video == nil || video.ImageName == "" {
			h.responder.WriteError(w, errs.NewNotFoundError("image not found"))
			return
		}

		rc, err := h.attachments.Store().Open(r.Context(), video.ImageName)
		if errors.Is(err, storage.ErrObjectNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("image not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageError("open", video.ImageName, err))
			return
		}
		defer rc.Close()

		if video.ImageType != "" {
			w.Header().Set("Content-Type", video.ImageType)
		}
		if _, err := io.Copy(w, rc); err != nil {
			h.logger.Error().Err(err).Str("object", video.ImageName).Msg("error streaming attachment")
		}
	}
}
