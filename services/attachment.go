package services

import (
	"context"
	"io"
	"strings"

	"github.com/learnity/learnity-backend/errs"
	"github.com/learnity/learnity-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AttachmentManager keeps entity image references consistent with the blob
// store across create, update and delete.
//
// The ordering contract for replacements is: write the new blob, persist the
// entity pointing at it, then remove the old blob. A crash mid-update can
// orphan a blob but never leaves an entity naming a missing one.
type AttachmentManager struct {
	store  storage.Store
	logger zerolog.Logger
}

func NewAttachmentManager(store storage.Store) *AttachmentManager {
	return &AttachmentManager{
		store:  store,
		logger: log.With().Str("serviceName", "attachmentManager").Logger(),
	}
}

// Store returns the underlying blob store, for serving endpoints.
func (m *AttachmentManager) Store() storage.Store {
	return m.store
}

// StoreUpload writes the upload under a generated name and returns that name.
// The caller persists the name on the entity; if that persist fails the caller
// must Discard the name so no orphan blob is left behind.
func (m *AttachmentManager) StoreUpload(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	name := storage.GenerateName(originalFilename)
	if err := m.store.Put(ctx, name, r); err != nil {
		return "", errs.NewStorageError("write", name, err)
	}
	return name, nil
}

// Discard removes a blob written for an entity save that failed. Best-effort.
func (m *AttachmentManager) Discard(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := m.store.Delete(ctx, name); err != nil {
		m.logger.Warn().Err(err).Str("object", name).Msg("failed to discard orphaned attachment")
	}
}

// Remove deletes previously referenced blobs after the entity mutation has
// succeeded. Failures are logged, never surfaced: the primary mutation is
// already durable and a leaked blob is an acceptable loss. Missing blobs are
// not errors.
func (m *AttachmentManager) Remove(ctx context.Context, names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := m.store.Delete(ctx, name); err != nil {
			m.logger.Warn().Err(err).Str("object", name).Msg("failed to delete attachment")
		}
	}
}

// ParseDeleteList parses the comma-delimited removal set used by the
// multi-attachment blog update.
func ParseDeleteList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// ApplyRemovals drops the named entries from an attachment list, returning the
// surviving list and the entries actually removed. Names that do not appear in
// the list are ignored, so a retried update stays idempotent.
func ApplyRemovals(existing []string, toDelete []string) (kept []string, removed []string) {
	if len(toDelete) == 0 {
		return existing, nil
	}

	deleteSet := make(map[string]struct{}, len(toDelete))
	for _, name := range toDelete {
		deleteSet[name] = struct{}{}
	}

	for _, name := range existing {
		if _, ok := deleteSet[name]; ok {
			removed = append(removed, name)
		} else {
			kept = append(kept, name)
		}
	}
	return kept, removed
}
