// Package media reconciles a record's image field with files in the upload
// store. Record and file writes are not transactional; removals of stale
// files are best-effort and only logged.
package media

import (
	"log/slog"
	"mime/multipart"
)

// Store is the subset of the upload store the content services need
type Store interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(path string) error
	IsManaged(path string) bool
}

// Images wraps a Store with logging for best-effort cleanup
type Images struct {
	store  Store
	logger *slog.Logger
}

// New creates an Images helper
func New(store Store, logger *slog.Logger) *Images {
	return &Images{store: store, logger: logger}
}

// Resolved is the outcome of picking an image for a write
type Resolved struct {
	Path string
	// Saved is true when Path is a file written for this request
	Saved bool
}

// Resolve picks the image for a write: an uploaded file wins, then a URL
// string taken verbatim, then fallback.
func (m *Images) Resolve(file *multipart.FileHeader, url *string, fallback string) (Resolved, error) {
	if file != nil {
		path, err := m.store.Save(file)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Path: path, Saved: true}, nil
	}
	if url != nil {
		return Resolved{Path: *url}, nil
	}
	return Resolved{Path: fallback}, nil
}

// Discard removes a managed file, logging rather than returning failures
func (m *Images) Discard(path string) {
	if path == "" || !m.store.IsManaged(path) {
		return
	}
	if err := m.store.Remove(path); err != nil {
		m.logger.Warn("failed to remove image", "path", path, "error", err)
	}
}

// Rollback removes a file saved for a write that then failed
func (m *Images) Rollback(r Resolved) {
	if r.Saved {
		m.Discard(r.Path)
	}
}

// Superseded removes the old image after a successful write replaced it
func (m *Images) Superseded(old string, r Resolved) {
	if old != r.Path {
		m.Discard(old)
	}
}
