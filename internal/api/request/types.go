package request

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/services/news"
	"github.com/vanguardgg/sitecms/internal/services/players"
	"github.com/vanguardgg/sitecms/internal/services/products"
)

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = normalizeList(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseList(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseList reads a JSON array if the value looks like one, otherwise
// splits on commas. Blank entries are dropped.
func ParseList(s string) (StringList, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var list []string
		if err := json.Unmarshal([]byte(s), &list); err != nil {
			return nil, err
		}
		return normalizeList(list), nil
	}
	return normalizeList(strings.Split(s, ",")), nil
}

func normalizeList(in []string) StringList {
	out := make(StringList, 0, len(in))
	for _, item := range in {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// NewsBody is the create/update body for news articles. Pointers
// distinguish an omitted field from an empty one.
type NewsBody struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
	Author  *string `json:"author"`
}

// CreateInput converts the body for news.Service.Create
func (b NewsBody) CreateInput() news.CreateInput {
	return news.CreateInput{
		Title:   deref(b.Title),
		Content: deref(b.Content),
		Image:   deref(b.Image),
		Author:  deref(b.Author),
	}
}

// UpdateInput converts the body for news.Service.Update
func (b NewsBody) UpdateInput() news.UpdateInput {
	return news.UpdateInput{
		Title:   b.Title,
		Content: b.Content,
		Image:   b.Image,
		Author:  b.Author,
	}
}

// PlayerBody is the create/update body for players
type PlayerBody struct {
	Name          *string            `json:"name"`
	Nickname      *string            `json:"nickname"`
	Role          *string            `json:"role"`
	Game          *string            `json:"game"`
	Bio           *string            `json:"bio"`
	Image         *string            `json:"image"`
	SocialMedia   *model.SocialMedia `json:"socialMedia"`
	Stats         *model.PlayerStats `json:"stats"`
	Achievements  StringList         `json:"achievements"`
	PreviousTeams StringList         `json:"previousTeams"`
}

// CreateInput converts the body for players.Service.Create
func (b PlayerBody) CreateInput() players.CreateInput {
	in := players.CreateInput{
		Name:          deref(b.Name),
		Nickname:      deref(b.Nickname),
		Role:          deref(b.Role),
		Game:          deref(b.Game),
		Bio:           deref(b.Bio),
		Image:         deref(b.Image),
		SocialMedia:   b.SocialMedia,
		Achievements:  b.Achievements,
		PreviousTeams: b.PreviousTeams,
	}
	if b.Stats != nil {
		in.Stats = *b.Stats
	}
	return in
}

// UpdateInput converts the body for players.Service.Update
func (b PlayerBody) UpdateInput() players.UpdateInput {
	return players.UpdateInput{
		Name:          b.Name,
		Nickname:      b.Nickname,
		Role:          b.Role,
		Game:          b.Game,
		Bio:           b.Bio,
		Image:         b.Image,
		SocialMedia:   b.SocialMedia,
		Stats:         b.Stats,
		Achievements:  b.Achievements,
		PreviousTeams: b.PreviousTeams,
	}
}

// ProductBody is the create/update body for products
type ProductBody struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Price       *decimal.Decimal       `json:"price"`
	Image       *string                `json:"image"`
	Category    *model.ProductCategory `json:"category"`
	InStock     *bool                  `json:"inStock"`
}

// CreateInput converts the body for products.Service.Create
func (b ProductBody) CreateInput() products.CreateInput {
	in := products.CreateInput{
		Name:        deref(b.Name),
		Description: deref(b.Description),
		Price:       b.Price,
		Image:       deref(b.Image),
		InStock:     b.InStock,
	}
	if b.Category != nil {
		in.Category = *b.Category
	}
	return in
}

// UpdateInput converts the body for products.Service.Update
func (b ProductBody) UpdateInput() products.UpdateInput {
	return products.UpdateInput{
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		Image:       b.Image,
		Category:    b.Category,
		InStock:     b.InStock,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
