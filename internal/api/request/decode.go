package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/upload"
)

// maxMemory is how much of a multipart body is buffered in memory before
// spilling file parts to disk
const maxMemory = 32 << 20

// FormDecoder is implemented by bodies that can also be read from form fields
type FormDecoder interface {
	DecodeForm(form url.Values) error
}

// ErrInvalidBody is wrapped by every decoding failure
var ErrInvalidBody = errors.New("invalid request body")

// MediaType returns the request's content type without parameters
func MediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// Decode fills dst from a JSON, urlencoded or multipart body and returns
// the uploaded image, if any. Decoding failures wrap ErrInvalidBody.
func Decode(r *http.Request, dst FormDecoder) (*multipart.FileHeader, error) {
	switch MediaType(r) {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		if err := dst.DecodeForm(r.MultipartForm.Value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		if files := r.MultipartForm.File[upload.FieldName]; len(files) > 0 {
			return files[0], nil
		}
		return nil, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		if err := dst.DecodeForm(r.PostForm); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		return nil, nil

	default:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		return nil, nil
	}
}

// DecodeForm implements FormDecoder
func (b *LoginRequest) DecodeForm(form url.Values) error {
	b.Username = form.Get("username")
	b.Password = form.Get("password")
	return nil
}

// DecodeForm implements FormDecoder
func (b *NewsBody) DecodeForm(form url.Values) error {
	b.Title = formString(form, "title")
	b.Content = formString(form, "content")
	b.Image = formString(form, "image")
	b.Author = formString(form, "author")
	return nil
}

// DecodeForm implements FormDecoder. Nested objects arrive as JSON strings.
func (b *PlayerBody) DecodeForm(form url.Values) error {
	b.Name = formString(form, "name")
	b.Nickname = formString(form, "nickname")
	b.Role = formString(form, "role")
	b.Game = formString(form, "game")
	b.Bio = formString(form, "bio")
	b.Image = formString(form, "image")

	if v := formString(form, "socialMedia"); v != nil && strings.TrimSpace(*v) != "" {
		var social model.SocialMedia
		if err := json.Unmarshal([]byte(*v), &social); err != nil {
			return fmt.Errorf("socialMedia: %w", err)
		}
		b.SocialMedia = &social
	}
	if v := formString(form, "stats"); v != nil && strings.TrimSpace(*v) != "" {
		var stats model.PlayerStats
		if err := json.Unmarshal([]byte(*v), &stats); err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		b.Stats = &stats
	}

	var err error
	if b.Achievements, err = formList(form, "achievements"); err != nil {
		return fmt.Errorf("achievements: %w", err)
	}
	if b.PreviousTeams, err = formList(form, "previousTeams"); err != nil {
		return fmt.Errorf("previousTeams: %w", err)
	}
	return nil
}

// DecodeForm implements FormDecoder
func (b *ProductBody) DecodeForm(form url.Values) error {
	b.Name = formString(form, "name")
	b.Description = formString(form, "description")
	b.Image = formString(form, "image")

	if v := formString(form, "category"); v != nil {
		category := model.ProductCategory(*v)
		b.Category = &category
	}
	if v := formString(form, "price"); v != nil && *v != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(*v))
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		b.Price = &price
	}
	if v := formString(form, "inStock"); v != nil && *v != "" {
		inStock, err := parseBool(*v)
		if err != nil {
			return fmt.Errorf("inStock: %w", err)
		}
		b.InStock = &inStock
	}
	return nil
}

func formString(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func formList(form url.Values, key string) (StringList, error) {
	v := formString(form, key)
	if v == nil {
		return nil, nil
	}
	return ParseList(*v)
}

// parseBool also accepts the "on" value HTML checkboxes submit
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}
