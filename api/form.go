package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/learnity/learnity-backend/errs"
	"github.com/learnity/learnity-backend/storage"
)

// maxMultipartMemory is the in-memory threshold for parsed multipart forms;
// larger uploads spill to temp files.
const maxMultipartMemory = 32 << 20

// idParam parses an integer id from a chi URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

// userIDQuery parses the required userId query parameter used by the
// owner-scoped endpoints.
func userIDQuery(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("userId")
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError("userId")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid userId")
	}
	return id, nil
}

// filenameParam returns the raw filename path segment; the storage layer is
// responsible for refusing anything that is not a bare object name.
func filenameParam(r *http.Request) string {
	return chi.URLParam(r, "filename")
}

// parseFormInt64 parses an integer form field.
func parseFormInt64(r *http.Request, field string) (int64, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError(field)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + field)
	}
	return v, nil
}

// optionalFormFile returns the upload for a multipart field, or ok=false when
// the part is absent. The caller closes the file.
func optionalFormFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, errs.NewMalformedPayloadError("multipart", err)
	}
	return file, header, true, nil
}

// requiredFormValue fetches a multipart/form field that must be non-empty.
func requiredFormValue(r *http.Request, field string) (string, error) {
	v := r.FormValue(field)
	if v == "" {
		return "", errs.NewMissingRequiredFieldError(field)
	}
	return v, nil
}

// serveBlob streams an object from the blob store, detecting the content type
// from the leading bytes. Missing objects map to 404.
func (re Responder) serveBlob(w http.ResponseWriter, r *http.Request, store storage.Store, name string) {
	rc, err := store.Open(r.Context(), name)
	if errors.Is(err, storage.ErrObjectNotFound) {
		re.WriteError(w, errs.NewNotFoundError("image not found"))
		return
	}
	if err != nil {
		re.WriteError(w, errs.NewStorageError("open", name, err))
		return
	}
	defer rc.Close()

	header := make([]byte, 3072)
	n, err := io.ReadFull(rc, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		re.WriteError(w, errs.NewStorageError("read", name, err))
		return
	}

	w.Header().Set("Content-Type", mimetype.Detect(header[:n]).String())
	if _, err := w.Write(header[:n]); err != nil {
		re.logger.Error().Err(err).Str("object", name).Msg("error streaming attachment")
		return
	}
	if _, err := io.Copy(w, rc); err != nil {
		re.logger.Error().Err(err).Str("object", name).Msg("error streaming attachment")
	}
}
