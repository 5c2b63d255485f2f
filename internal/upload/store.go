// Package upload stores admin-uploaded images on local disk and serves them
// back under /uploads.
package upload

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanguardgg/sitecms/internal/dependencies/clock"
	"github.com/vanguardgg/sitecms/internal/dependencies/random"
	"github.com/vanguardgg/sitecms/internal/model"
)

// URLPrefix is the public path uploaded files are served under
const URLPrefix = "/uploads/"

// FieldName is the multipart field carrying the image on every endpoint
const FieldName = "image"

// randomSuffixMax bounds the random component of generated names
const randomSuffixMax = 1_000_000_000

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// Store writes images into a single directory
type Store struct {
	dir    string
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// New creates the upload directory if needed and returns a Store for it
func New(dir string, clk clock.Clock, rnd random.Random, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir:    dir,
		clock:  clk,
		random: rnd,
		logger: logger,
	}, nil
}

// Dir returns the directory files are written to
func (s *Store) Dir() string {
	return s.dir
}

// CheckImage reports whether a file with this name and declared content type
// is accepted. Both the extension and the MIME type must be allowed.
func CheckImage(filename, contentType string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	mediaType, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	if !allowedExtensions[ext] || !allowedMIMETypes[strings.TrimSpace(mediaType)] {
		return model.ErrInvalidImage
	}
	return nil
}

// Save writes the uploaded file under a generated name and returns its
// public path (/uploads/<name>)
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if err := CheckImage(fh.Filename, fh.Header.Get("Content-Type")); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	name := s.generateName(fh.Filename)
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close upload file: %w", err)
	}

	path := URLPrefix + name
	s.logger.Debug("image stored", "path", path, "size", fh.Size)
	return path, nil
}

// generateName returns image-<unix millis>-<random><ext>
func (s *Store) generateName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("image-%d-%d%s", s.clock.Now().UnixMilli(), s.random.Intn(randomSuffixMax), ext)
}

// IsManaged reports whether path points at a file this store wrote
func (s *Store) IsManaged(path string) bool {
	return strings.HasPrefix(path, URLPrefix) && len(path) > len(URLPrefix)
}

// Remove deletes a managed file. Paths outside the store are ignored, and
// only the base name is used so a crafted path cannot escape the directory.
func (s *Store) Remove(path string) error {
	if !s.IsManaged(path) {
		return nil
	}
	name := filepath.Base(path)
	if name == "." || name == "/" || name == ".." {
		return nil
	}
	return os.Remove(filepath.Join(s.dir, name))
}

// Handler serves stored files under URLPrefix
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(strings.TrimSuffix(URLPrefix, "/"), http.FileServer(noListing{http.Dir(s.dir)}))
}

// noListing hides directory indexes
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
