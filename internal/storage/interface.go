package storage

import (
	"context"

	"github.com/vanguardgg/sitecms/internal/model"
)

// AdminStorage persists administrator accounts
type AdminStorage interface {
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
}

// NewsStorage persists news articles
type NewsStorage interface {
	// ListNews returns articles newest first; limit <= 0 means no limit
	ListNews(ctx context.Context, limit int) ([]*model.NewsArticle, error)
	GetNews(ctx context.Context, id string) (*model.NewsArticle, error)
	CreateNews(ctx context.Context, article *model.NewsArticle) error
	UpdateNews(ctx context.Context, article *model.NewsArticle) error
	DeleteNews(ctx context.Context, id string) error
}

// PlayerStorage persists roster players
type PlayerStorage interface {
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	CreatePlayer(ctx context.Context, player *model.Player) error
	UpdatePlayer(ctx context.Context, player *model.Player) error
	DeletePlayer(ctx context.Context, id string) error
}

// ProductStorage persists store products
type ProductStorage interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// Storage defines the interface for content persistence.
// Create methods assign the entity ID; Get/Update/Delete return
// model.ErrInvalidID for malformed ids and the entity's not-found error
// when nothing matches.
type Storage interface {
	AdminStorage
	NewsStorage
	PlayerStorage
	ProductStorage

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
}

// SessionStorage persists login sessions server-side so they can be revoked
type SessionStorage interface {
	SaveSession(ctx context.Context, session *model.Session) error
	// GetSession returns model.ErrSessionNotFound for unknown ids. Backends
	// with native expiry may also report expired sessions as not found.
	GetSession(ctx context.Context, id string) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
}
