package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vanguardgg/sitecms/internal/model"
)

// Sessions live in their own collection; a TTL index on expiresAt lets the
// server purge them without a sweeper (see EnsureSchema).

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	doc := sessionToDoc(session)
	_, err := s.db.Collection(sessionsCollection).ReplaceOne(ctx,
		bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *Storage) GetSession(ctx context.Context, id string) (*model.Session, error) {
	var doc sessionDoc
	err := s.db.Collection(sessionsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return sessionFromDoc(&doc), nil
}

func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.Collection(sessionsCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
