package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/storage"
)

// Storage is an in-memory implementation of the storage interfaces.
// Values are copied on the way in and out so callers never share state
// with the store.
type Storage struct {
	mu sync.RWMutex

	admins        map[string]*model.Admin
	usernameIndex map[string]string
	news          map[string]*model.NewsArticle
	players       map[string]*model.Player
	products      map[string]*model.Product
	sessions      map[string]*model.Session

	// seq preserves insertion order for listings with equal timestamps
	seq   int64
	order map[string]int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		admins:        make(map[string]*model.Admin),
		usernameIndex: make(map[string]string),
		news:          make(map[string]*model.NewsArticle),
		players:       make(map[string]*model.Player),
		products:      make(map[string]*model.Product),
		sessions:      make(map[string]*model.Session),
		order:         make(map[string]int64),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage        = (*Storage)(nil)
	_ storage.SessionStorage = (*Storage)(nil)
)

// Ping always succeeds
func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) nextID() string {
	id := model.NewID()
	s.seq++
	s.order[id] = s.seq
	return id
}

// Admin operations

func (s *Storage) CountAdmins(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.admins)), nil
}

func (s *Storage) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usernameIndex[admin.Username]; ok {
		return model.ErrUsernameTaken
	}
	admin.ID = s.nextID()
	stored := *admin
	s.admins[admin.ID] = &stored
	s.usernameIndex[admin.Username] = admin.ID
	return nil
}

func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	admin := *s.admins[id]
	return &admin, nil
}

// News operations

func (s *Storage) ListNews(ctx context.Context, limit int) ([]*model.NewsArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	articles := make([]*model.NewsArticle, 0, len(s.news))
	for _, a := range s.news {
		articles = append(articles, copyNews(a))
	}
	// Newest first, later inserts win ties
	sort.Slice(articles, func(i, j int) bool {
		ai, aj := articles[i], articles[j]
		if !ai.CreatedAt.Equal(aj.CreatedAt) {
			return ai.CreatedAt.After(aj.CreatedAt)
		}
		return s.order[ai.ID] > s.order[aj.ID]
	})
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

func (s *Storage) GetNews(ctx context.Context, id string) (*model.NewsArticle, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.news[id]
	if !ok {
		return nil, model.ErrNewsNotFound
	}
	return copyNews(a), nil
}

func (s *Storage) CreateNews(ctx context.Context, article *model.NewsArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	article.ID = s.nextID()
	s.news[article.ID] = copyNews(article)
	return nil
}

func (s *Storage) UpdateNews(ctx context.Context, article *model.NewsArticle) error {
	if err := model.ValidateID(article.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.news[article.ID]; !ok {
		return model.ErrNewsNotFound
	}
	s.news[article.ID] = copyNews(article)
	return nil
}

func (s *Storage) DeleteNews(ctx context.Context, id string) error {
	if err := model.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.news[id]; !ok {
		return model.ErrNewsNotFound
	}
	delete(s.news, id)
	delete(s.order, id)
	return nil
}

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, copyPlayer(p))
	}
	sort.Slice(players, func(i, j int) bool {
		return s.order[players[i].ID] < s.order[players[j].ID]
	})
	return players, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(p), nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player.ID = s.nextID()
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	if err := model.ValidateID(player.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		return model.ErrPlayerNotFound
	}
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id string) error {
	if err := model.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	delete(s.order, id)
	return nil
}

// Product operations

func (s *Storage) ListProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]*model.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.InStockOnly && !p.InStock {
			continue
		}
		product := *p
		products = append(products, &product)
	}
	sort.Slice(products, func(i, j int) bool {
		return s.order[products[i].ID] < s.order[products[j].ID]
	})
	return products, nil
}

func (s *Storage) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	product := *p
	return &product, nil
}

func (s *Storage) CreateProduct(ctx context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.nextID()
	stored := *product
	s.products[product.ID] = &stored
	return nil
}

func (s *Storage) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := model.ValidateID(product.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	stored := *product
	s.products[product.ID] = &stored
	return nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id string) error {
	if err := model.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(s.products, id)
	delete(s.order, id)
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *session
	s.sessions[session.ID] = &stored
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	result := *session
	return &result, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func copyNews(a *model.NewsArticle) *model.NewsArticle {
	result := *a
	return &result
}

func copyPlayer(p *model.Player) *model.Player {
	result := *p
	if p.SocialMedia != nil {
		social := *p.SocialMedia
		result.SocialMedia = &social
	}
	result.Achievements = slices.Clone(p.Achievements)
	result.PreviousTeams = slices.Clone(p.PreviousTeams)
	return &result
}
