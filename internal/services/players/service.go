package players

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

// CreateInput is the data accepted when adding a player to the roster
type CreateInput struct {
	Name          string             `json:"name" validate:"notblank"`
	Nickname      string             `json:"nickname" validate:"notblank"`
	Role          string             `json:"role" validate:"notblank"`
	Game          string             `json:"game" validate:"notblank"`
	Bio           string             `json:"bio"`
	Image         string             `json:"image"`
	SocialMedia   *model.SocialMedia `json:"socialMedia"`
	Stats         model.PlayerStats  `json:"stats"`
	Achievements  []string           `json:"achievements"`
	PreviousTeams []string           `json:"previousTeams"`

	File *multipart.FileHeader `json:"-"`
}

// UpdateInput holds the fields to change. Nil pointers and nil slices are
// left untouched; an empty slice clears the list.
type UpdateInput struct {
	Name          *string
	Nickname      *string
	Role          *string
	Game          *string
	Bio           *string
	Image         *string
	SocialMedia   *model.SocialMedia
	Stats         *model.PlayerStats
	Achievements  []string
	PreviousTeams []string

	File *multipart.FileHeader
}

// Service manages the roster
type Service struct {
	storage storage.PlayerStorage
	images  *media.Images
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new players Service
func New(storage storage.PlayerStorage, images *media.Images, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		images:  images,
		clock:   clock,
		logger:  logger,
	}
}

// List returns the roster in insertion order
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Get returns a single player
func (s *Service) Get(ctx context.Context, id string) (*model.Player, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}
	return s.storage.GetPlayer(ctx, id)
}

// Create adds a player. The image comes from the uploaded file if present,
// otherwise from the Image URL.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Player, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var url *string
	if in.Image != "" {
		url = &in.Image
	}
	img, err := s.images.Resolve(in.File, url, "")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		Name:          in.Name,
		Nickname:      in.Nickname,
		Role:          in.Role,
		Game:          in.Game,
		Bio:           in.Bio,
		Image:         img.Path,
		SocialMedia:   in.SocialMedia,
		Stats:         in.Stats,
		Achievements:  listOrEmpty(in.Achievements),
		PreviousTeams: listOrEmpty(in.PreviousTeams),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		s.images.Rollback(img)
		s.logger.Error("failed to create player",
			slog.String("nickname", player.Nickname),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", player.ID),
		slog.String("nickname", player.Nickname),
	)
	return player, nil
}

// Update applies a partial update. A replaced uploaded image is removed
// from disk once the record is saved.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*model.Player, error) {
	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	img, err := s.images.Resolve(in.File, in.Image, player.Image)
	if err != nil {
		return nil, err
	}
	previous := player.Image

	applyUpdate(player, in)
	player.Image = img.Path
	player.UpdatedAt = s.clock.Now()

	if err := s.storage.UpdatePlayer(ctx, player); err != nil {
		s.images.Rollback(img)
		return nil, err
	}
	s.images.Superseded(previous, img)

	s.logger.Info("player updated", slog.String("player_id", player.ID))
	return player, nil
}

// Delete removes a player and their uploaded image. External image URLs
// are left alone.
func (s *Service) Delete(ctx context.Context, id string) error {
	player, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}
	s.images.Discard(player.Image)

	s.logger.Info("player deleted",
		slog.String("player_id", id),
		slog.String("nickname", player.Nickname),
	)
	return nil
}

func validateUpdate(in UpdateInput) error {
	required := []struct {
		field string
		value *string
	}{
		{"name", in.Name},
		{"nickname", in.Nickname},
		{"role", in.Role},
		{"game", in.Game},
	}
	for _, r := range required {
		if r.value != nil && strings.TrimSpace(*r.value) == "" {
			return model.NewValidationError(r.field, "is required")
		}
	}
	if in.Stats != nil {
		if err := validation.Struct(in.Stats); err != nil {
			return err
		}
	}
	return nil
}

func applyUpdate(p *model.Player, in UpdateInput) {
	setIf(&p.Name, in.Name)
	setIf(&p.Nickname, in.Nickname)
	setIf(&p.Role, in.Role)
	setIf(&p.Game, in.Game)
	setIf(&p.Bio, in.Bio)
	if in.SocialMedia != nil {
		p.SocialMedia = in.SocialMedia
	}
	if in.Stats != nil {
		p.Stats = *in.Stats
	}
	if in.Achievements != nil {
		p.Achievements = in.Achievements
	}
	if in.PreviousTeams != nil {
		p.PreviousTeams = in.PreviousTeams
	}
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func listOrEmpty(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}
