package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vanguardgg/sitecms/internal/model"
)

// Document types mirror the model with BSON field names. They exist so the
// model package stays free of driver types.

type adminDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type newsDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Image     string             `bson:"image,omitempty"`
	Author    string             `bson:"author"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type socialMediaDoc struct {
	Twitter   string `bson:"twitter,omitempty"`
	Twitch    string `bson:"twitch,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
	YouTube   string `bson:"youtube,omitempty"`
}

type statsDoc struct {
	Kills   int     `bson:"kills"`
	Deaths  int     `bson:"deaths"`
	Assists int     `bson:"assists"`
	KDA     float64 `bson:"kda"`
}

type playerDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Nickname      string             `bson:"nickname"`
	Role          string             `bson:"role"`
	Game          string             `bson:"game"`
	Bio           string             `bson:"bio,omitempty"`
	Image         string             `bson:"image,omitempty"`
	SocialMedia   *socialMediaDoc    `bson:"socialMedia,omitempty"`
	Stats         statsDoc           `bson:"stats"`
	Achievements  []string           `bson:"achievements"`
	PreviousTeams []string           `bson:"previousTeams"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Image       string               `bson:"image"`
	Category    string               `bson:"category"`
	InStock     bool                 `bson:"inStock"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type sessionDoc struct {
	ID        string    `bson:"_id"`
	AdminID   string    `bson:"adminId"`
	Username  string    `bson:"username"`
	Role      string    `bson:"role,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// parseID converts a hex id into an ObjectID, mapping failures to model.ErrInvalidID
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, model.ErrInvalidID
	}
	return oid, nil
}

func adminToDoc(a *model.Admin) adminDoc {
	return adminDoc{
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
	}
}

func adminFromDoc(d *adminDoc) *model.Admin {
	return &model.Admin{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
	}
}

func newsToDoc(a *model.NewsArticle) newsDoc {
	return newsDoc{
		Title:     a.Title,
		Content:   a.Content,
		Image:     a.Image,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
	}
}

func newsFromDoc(d *newsDoc) *model.NewsArticle {
	return &model.NewsArticle{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Image:     d.Image,
		Author:    d.Author,
		CreatedAt: d.CreatedAt,
	}
}

func playerToDoc(p *model.Player) playerDoc {
	doc := playerDoc{
		Name:     p.Name,
		Nickname: p.Nickname,
		Role:     p.Role,
		Game:     p.Game,
		Bio:      p.Bio,
		Image:    p.Image,
		Stats: statsDoc{
			Kills:   p.Stats.Kills,
			Deaths:  p.Stats.Deaths,
			Assists: p.Stats.Assists,
			KDA:     p.Stats.KDA,
		},
		Achievements:  nonNil(p.Achievements),
		PreviousTeams: nonNil(p.PreviousTeams),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.SocialMedia != nil {
		doc.SocialMedia = &socialMediaDoc{
			Twitter:   p.SocialMedia.Twitter,
			Twitch:    p.SocialMedia.Twitch,
			Instagram: p.SocialMedia.Instagram,
			YouTube:   p.SocialMedia.YouTube,
		}
	}
	return doc
}

func playerFromDoc(d *playerDoc) *model.Player {
	p := &model.Player{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Nickname: d.Nickname,
		Role:     d.Role,
		Game:     d.Game,
		Bio:      d.Bio,
		Image:    d.Image,
		Stats: model.PlayerStats{
			Kills:   d.Stats.Kills,
			Deaths:  d.Stats.Deaths,
			Assists: d.Stats.Assists,
			KDA:     d.Stats.KDA,
		},
		Achievements:  nonNil(d.Achievements),
		PreviousTeams: nonNil(d.PreviousTeams),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.SocialMedia != nil {
		p.SocialMedia = &model.SocialMedia{
			Twitter:   d.SocialMedia.Twitter,
			Twitch:    d.SocialMedia.Twitch,
			Instagram: d.SocialMedia.Instagram,
			YouTube:   d.SocialMedia.YouTube,
		}
	}
	return p
}

func productToDoc(p *model.Product) (productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Image:       p.Image,
		Category:    string(p.Category),
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func productFromDoc(d *productDoc) (*model.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return nil, err
	}
	return &model.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Image:       d.Image,
		Category:    model.ProductCategory(d.Category),
		InStock:     d.InStock,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func sessionToDoc(s *model.Session) sessionDoc {
	return sessionDoc{
		ID:        s.ID,
		AdminID:   s.AdminID,
		Username:  s.Username,
		Role:      s.Role,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

func sessionFromDoc(d *sessionDoc) *model.Session {
	return &model.Session{
		ID:        d.ID,
		AdminID:   d.AdminID,
		Username:  d.Username,
		Role:      d.Role,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
