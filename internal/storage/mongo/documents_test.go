package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vanguardgg/sitecms/internal/model"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)

	_, err = parseID("not-hex")
	assert.ErrorIs(t, err, model.ErrInvalidID)

	_, err = parseID("")
	assert.ErrorIs(t, err, model.ErrInvalidID)
}

func TestProductPriceRoundTrip(t *testing.T) {
	product := &model.Product{
		Name:     "Home Jersey",
		Price:    decimal.RequireFromString("79.95"),
		Image:    "/uploads/image-1-2.png",
		Category: model.CategoryJerseys,
		InStock:  true,
	}

	doc, err := productToDoc(product)
	require.NoError(t, err)
	assert.Equal(t, "79.95", doc.Price.String())
	assert.Equal(t, "jerseys", doc.Category)

	back, err := productFromDoc(&doc)
	require.NoError(t, err)
	assert.True(t, product.Price.Equal(back.Price))
	assert.Equal(t, model.CategoryJerseys, back.Category)
}

func TestPlayerDocNormalizesLists(t *testing.T) {
	doc := playerToDoc(&model.Player{Nickname: "ace"})
	assert.NotNil(t, doc.Achievements)
	assert.NotNil(t, doc.PreviousTeams)
	assert.Nil(t, doc.SocialMedia)

	p := playerFromDoc(&playerDoc{
		ID:          primitive.NewObjectID(),
		Nickname:    "ace",
		SocialMedia: &socialMediaDoc{Twitch: "ace_tv"},
	})
	assert.Equal(t, []string{}, p.Achievements)
	assert.Equal(t, "ace_tv", p.SocialMedia.Twitch)
	assert.Len(t, p.ID, 24)
}

func TestDocumentsOmitEmptyID(t *testing.T) {
	raw, err := bson.Marshal(newsToDoc(&model.NewsArticle{Title: "t", Content: "c", CreatedAt: time.Now()}))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	_, hasID := m["_id"]
	assert.False(t, hasID)
	assert.Equal(t, "t", m["title"])
}

func TestAdminDocStoresHashAsPassword(t *testing.T) {
	raw, err := bson.Marshal(adminToDoc(&model.Admin{Username: "admin", PasswordHash: "$2a$hash"}))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "$2a$hash", m["password"])
}

func TestProductValidatorListsCategories(t *testing.T) {
	v := productValidator()
	schema := v["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)
	category := props["category"].(bson.M)
	assert.Equal(t, bson.A{"jerseys", "apparel", "accessories", "collectibles"}, category["enum"])
}
