package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/storage"
)

// Storage is a MongoDB-backed implementation of the storage interfaces
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
}

// New creates a MongoDB storage instance. The driver connects lazily, so an
// unreachable server is not an error here; call Ping to check reachability.
func New(cfg Config) (*Storage, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a MongoDB storage with an existing client (for testing)
func NewWithClient(client *mongo.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
	}
}

// Close disconnects the client
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping checks that the primary is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage        = (*Storage)(nil)
	_ storage.SessionStorage = (*Storage)(nil)
)

// Admin operations

func (s *Storage) CountAdmins(ctx context.Context) (int64, error) {
	return s.db.Collection(adminsCollection).CountDocuments(ctx, bson.M{})
}

func (s *Storage) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	res, err := s.db.Collection(adminsCollection).InsertOne(ctx, adminToDoc(admin))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrUsernameTaken
		}
		return err
	}
	admin.ID = insertedHex(res)
	return nil
}

func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var doc adminDoc
	err := s.db.Collection(adminsCollection).FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrAdminNotFound
		}
		return nil, err
	}
	return adminFromDoc(&doc), nil
}

// News operations

func (s *Storage) ListNews(ctx context.Context, limit int) ([]*model.NewsArticle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.db.Collection(newsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []newsDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	articles := make([]*model.NewsArticle, 0, len(docs))
	for i := range docs {
		articles = append(articles, newsFromDoc(&docs[i]))
	}
	return articles, nil
}

func (s *Storage) GetNews(ctx context.Context, id string) (*model.NewsArticle, error) {
	var doc newsDoc
	if err := s.findByID(ctx, newsCollection, id, &doc, model.ErrNewsNotFound); err != nil {
		return nil, err
	}
	return newsFromDoc(&doc), nil
}

func (s *Storage) CreateNews(ctx context.Context, article *model.NewsArticle) error {
	res, err := s.db.Collection(newsCollection).InsertOne(ctx, newsToDoc(article))
	if err != nil {
		return err
	}
	article.ID = insertedHex(res)
	return nil
}

func (s *Storage) UpdateNews(ctx context.Context, article *model.NewsArticle) error {
	return s.replaceByID(ctx, newsCollection, article.ID, newsToDoc(article), model.ErrNewsNotFound)
}

func (s *Storage) DeleteNews(ctx context.Context, id string) error {
	return s.deleteByID(ctx, newsCollection, id, model.ErrNewsNotFound)
}

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	cur, err := s.db.Collection(playersCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []playerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(docs))
	for i := range docs {
		players = append(players, playerFromDoc(&docs[i]))
	}
	return players, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	var doc playerDoc
	if err := s.findByID(ctx, playersCollection, id, &doc, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return playerFromDoc(&doc), nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	res, err := s.db.Collection(playersCollection).InsertOne(ctx, playerToDoc(player))
	if err != nil {
		return err
	}
	player.ID = insertedHex(res)
	return nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	return s.replaceByID(ctx, playersCollection, player.ID, playerToDoc(player), model.ErrPlayerNotFound)
}

func (s *Storage) DeletePlayer(ctx context.Context, id string) error {
	return s.deleteByID(ctx, playersCollection, id, model.ErrPlayerNotFound)
}

// Product operations

func (s *Storage) ListProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	query := bson.M{}
	if filter.InStockOnly {
		query["inStock"] = true
	}

	cur, err := s.db.Collection(productsCollection).Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]*model.Product, 0, len(docs))
	for i := range docs {
		p, err := productFromDoc(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("decode product %s: %w", docs[i].ID.Hex(), err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *Storage) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var doc productDoc
	if err := s.findByID(ctx, productsCollection, id, &doc, model.ErrProductNotFound); err != nil {
		return nil, err
	}
	return productFromDoc(&doc)
}

func (s *Storage) CreateProduct(ctx context.Context, product *model.Product) error {
	doc, err := productToDoc(product)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(productsCollection).InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	product.ID = insertedHex(res)
	return nil
}

func (s *Storage) UpdateProduct(ctx context.Context, product *model.Product) error {
	doc, err := productToDoc(product)
	if err != nil {
		return err
	}
	return s.replaceByID(ctx, productsCollection, product.ID, doc, model.ErrProductNotFound)
}

func (s *Storage) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteByID(ctx, productsCollection, id, model.ErrProductNotFound)
}

// Shared helpers

func (s *Storage) findByID(ctx context.Context, collection, id string, out any, notFound error) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	return err
}

func (s *Storage) replaceByID(ctx context.Context, collection, id string, doc any, notFound error) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

func (s *Storage) deleteByID(ctx context.Context, collection, id string, notFound error) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}

func insertedHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
