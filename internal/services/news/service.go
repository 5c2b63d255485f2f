package news

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/vanguardgg/sitecms/internal/dependencies/clock"
	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/services/media"
	"github.com/vanguardgg/sitecms/internal/storage"
	"github.com/vanguardgg/sitecms/internal/validation"
)

// Config holds configuration for the news service
type Config struct {
	// Organization is the author used when neither the request nor the
	// session supplies one
	Organization string
	// PublicLimit caps the public listing; 0 means unbounded
	PublicLimit int
}

// CreateInput is the data accepted when publishing an article
type CreateInput struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
	Image   string `json:"image"`
	Author  string `json:"author"`

	File *multipart.FileHeader `json:"-"`
}

// UpdateInput holds the fields to change; nil fields are left as they are
type UpdateInput struct {
	Title   *string
	Content *string
	Image   *string
	Author  *string

	File *multipart.FileHeader
}

// Service manages news articles
type Service struct {
	storage storage.NewsStorage
	images  *media.Images
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new news Service
func New(storage storage.NewsStorage, images *media.Images, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		images:  images,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// List returns every article, newest first
func (s *Service) List(ctx context.Context) ([]*model.NewsArticle, error) {
	return s.storage.ListNews(ctx, 0)
}

// ListPublic returns articles for the public site. The configured cap
// applies, and a positive requested limit may lower it further.
func (s *Service) ListPublic(ctx context.Context, requested int) ([]*model.NewsArticle, error) {
	limit := s.cfg.PublicLimit
	if requested > 0 && (limit <= 0 || requested < limit) {
		limit = requested
	}
	return s.storage.ListNews(ctx, limit)
}

// Get returns a single article
func (s *Service) Get(ctx context.Context, id string) (*model.NewsArticle, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}
	return s.storage.GetNews(ctx, id)
}

// Create publishes an article. username is the authenticated admin, used as
// the author when the input has none.
func (s *Service) Create(ctx context.Context, in CreateInput, username string) (*model.NewsArticle, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	img, err := s.images.Resolve(in.File, nonEmpty(in.Image), "")
	if err != nil {
		return nil, err
	}

	article := &model.NewsArticle{
		Title:     in.Title,
		Content:   in.Content,
		Image:     img.Path,
		Author:    s.author(in.Author, username),
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.CreateNews(ctx, article); err != nil {
		s.images.Rollback(img)
		s.logger.Error("failed to create news",
			slog.String("title", article.Title),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("news created",
		slog.String("news_id", article.ID),
		slog.String("author", article.Author),
	)
	return article, nil
}

// Update applies a partial update and returns the stored article
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*model.NewsArticle, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, model.NewValidationError("title", "is required")
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		return nil, model.NewValidationError("content", "is required")
	}

	img, err := s.images.Resolve(in.File, in.Image, article.Image)
	if err != nil {
		return nil, err
	}
	previous := article.Image

	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.Author != nil && strings.TrimSpace(*in.Author) != "" {
		article.Author = *in.Author
	}
	article.Image = img.Path

	if err := s.storage.UpdateNews(ctx, article); err != nil {
		s.images.Rollback(img)
		return nil, err
	}
	s.images.Superseded(previous, img)

	s.logger.Info("news updated", slog.String("news_id", article.ID))
	return article, nil
}

// Delete removes an article and its uploaded image
func (s *Service) Delete(ctx context.Context, id string) error {
	article, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteNews(ctx, id); err != nil {
		return err
	}
	s.images.Discard(article.Image)

	s.logger.Info("news deleted", slog.String("news_id", id))
	return nil
}

func (s *Service) author(requested, username string) string {
	switch {
	case strings.TrimSpace(requested) != "":
		return requested
	case username != "":
		return username
	default:
		return s.cfg.Organization
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
