package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/learnity/learnity-backend/errs"
	"github.com/learnity/learnity-backend/models"
	"github.com/learnity/learnity-backend/services"
)

type blogHandler struct {
	responder   Responder
	logger      zerolog.Logger
	blogRepo    blogStore
	attachments *services.AttachmentManager
}

func newBlogHandler(blogRepo blogStore, attachments *services.AttachmentManager) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		blogRepo:    blogRepo,
		attachments: attachments,
	}
}

// storeUploads stores every "files" part and returns the generated names. On
// any failure the names already stored are discarded so a failed create or
// update leaves no blobs behind.
func (h blogHandler) storeUploads(r *http.Request) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var names []string
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			h.attachments.Remove(r.Context(), names...)
			return nil, errs.NewMalformedPayloadError("multipart", err)
		}

		name, err := h.attachments.StoreUpload(r.Context(), header.Filename, file)
		file.Close()
		if err != nil {
			h.attachments.Remove(r.Context(), names...)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// addBlog creates a blog with any number of image attachments. Blogs are not
// owner-scoped; the client may supply a blogId UUID, otherwise one is minted.
func (h blogHandler) addBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		title, err := requiredFormValue(r, "title")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		content, err := requiredFormValue(r, "content")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		author, err := requiredFormValue(r, "author")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := requiredFormValue(r, "category")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogID := r.FormValue("blogId")
		if blogID == "" {
			blogID = uuid.New().String()
		} else if _, err := uuid.Parse(blogID); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogId"))
			return
		}

		images, err := h.storeUploads(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog := models.Blog{
			BlogID:   blogID,
			Title:    title,
			Content:  content,
			Author:   author,
			Category: category,
			Images:   images,
		}

		if err := h.blogRepo.Add(&blog); err != nil {
			h.attachments.Remove(r.Context(), images...)
			h.responder.WriteError(w, wrapDatabaseError("create blog", "blog", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, blog)
	}
}

// getAllBlogs lists every blog; blog listing is deliberately ungated
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blogs", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, blogs)
	}
}

// getBlog retrieves a blog by id
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "blogID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.responder.WriteJSON(w, blog)
	}
}

// getBlogImage streams a blog image from the blob store
func (h blogHandler) getBlogImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.serveBlob(w, r, h.attachments.Store(), filenameParam(r))
	}
}

// updateBlog merges supplied fields, removes the images named in the
// comma-delimited deleteImages field and appends any new uploads. New blobs
// are written before the row is saved; removed blobs are deleted only after.
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "blogID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		blog, err := h.blogRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		// Field-presence merge: absent form fields preserve existing values.
		if vs := r.MultipartForm.Value["title"]; len(vs) > 0 {
			blog.Title = vs[0]
		}
		if vs := r.MultipartForm.Value["content"]; len(vs) > 0 {
			blog.Content = vs[0]
		}
		if vs := r.MultipartForm.Value["author"]; len(vs) > 0 {
			blog.Author = vs[0]
		}
		if vs := r.MultipartForm.Value["category"]; len(vs) > 0 {
			blog.Category = vs[0]
		}

		toDelete := services.ParseDeleteList(r.FormValue("deleteImages"))
		kept, removed := services.ApplyRemovals(blog.Images, toDelete)

		newImages, err := h.storeUploads(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog.Images = append(kept, newImages...)

		if err := h.blogRepo.Update(blog); err != nil {
			h.attachments.Remove(r.Context(), newImages...)
			h.responder.WriteError(w, wrapDatabaseError("update blog", "blog", err))
			return
		}

		h.attachments.Remove(r.Context(), removed...)

		h.responder.WriteJSON(w, blog)
	}
}

// deleteBlog removes a blog and every image it referenced
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "blogID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		if err := h.blogRepo.Delete(id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog", "blog", err))
			return
		}

		h.attachments.Remove(r.Context(), blog.Images...)

		h.responder.WriteJSON(w, map[string]string{
			"message": fmt.Sprintf("Blog %d and its images deleted", id),
		})
	}
}
