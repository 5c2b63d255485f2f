package media

import (
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/testutil"
)

type fakeStore struct {
	saveErr   error
	removeErr error
	removed   []string
}

func (f *fakeStore) Save(fh *multipart.FileHeader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	return "/uploads/" + fh.Filename, nil
}

func (f *fakeStore) Remove(path string) error {
	f.removed = append(f.removed, path)
	return f.removeErr
}

func (f *fakeStore) IsManaged(path string) bool {
	return strings.HasPrefix(path, "/uploads/")
}

func TestResolvePrecedence(t *testing.T) {
	store := &fakeStore{}
	images := New(store, testutil.NopLogger())
	url := "https://cdn.example.com/p.png"

	r, err := images.Resolve(testutil.FileHeader(t, "p.png", "image/png", []byte("x")), &url, "old")
	require.NoError(t, err)
	assert.Equal(t, Resolved{Path: "/uploads/p.png", Saved: true}, r)

	r, err = images.Resolve(nil, &url, "old")
	require.NoError(t, err)
	assert.Equal(t, Resolved{Path: url}, r)

	r, err = images.Resolve(nil, nil, "old")
	require.NoError(t, err)
	assert.Equal(t, Resolved{Path: "old"}, r)
}

func TestResolveSaveError(t *testing.T) {
	images := New(&fakeStore{saveErr: model.ErrInvalidImage}, testutil.NopLogger())

	_, err := images.Resolve(testutil.FileHeader(t, "p.txt", "text/plain", nil), nil, "")
	assert.ErrorIs(t, err, model.ErrInvalidImage)
}

func TestDiscardOnlyTouchesManagedPaths(t *testing.T) {
	store := &fakeStore{}
	images := New(store, testutil.NopLogger())

	images.Discard("https://cdn.example.com/p.png")
	images.Discard("")
	images.Discard("/uploads/a.png")

	assert.Equal(t, []string{"/uploads/a.png"}, store.removed)
}

func TestDiscardSwallowsErrors(t *testing.T) {
	store := &fakeStore{removeErr: errors.New("disk gone")}
	images := New(store, testutil.NopLogger())

	assert.NotPanics(t, func() { images.Discard("/uploads/a.png") })
	assert.Len(t, store.removed, 1)
}

func TestRollbackAndSuperseded(t *testing.T) {
	store := &fakeStore{}
	images := New(store, testutil.NopLogger())

	images.Rollback(Resolved{Path: "/uploads/kept.png"})
	images.Rollback(Resolved{Path: "/uploads/new.png", Saved: true})
	images.Superseded("/uploads/same.png", Resolved{Path: "/uploads/same.png"})
	images.Superseded("/uploads/old.png", Resolved{Path: "/uploads/new.png", Saved: true})

	assert.Equal(t, []string{"/uploads/new.png", "/uploads/old.png"}, store.removed)
}
