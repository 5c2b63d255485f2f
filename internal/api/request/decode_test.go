package request

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/testutil"
)

func multipartRequest(t *testing.T, fields map[string]string, withImage bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		require.NoError(t, testutil.WriteFilePart(mw, "image", "ace.png", "image/png", []byte("png")))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/players", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestDecodeJSONPlayer(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{
		"name": "Alex", "nickname": "ace", "role": "Entry", "game": "Valorant",
		"socialMedia": {"twitter": "@ace"},
		"stats": {"kills": 10, "deaths": 5, "assists": 2, "kda": 2.4},
		"achievements": ["MVP", " Finals "],
		"previousTeams": "Team A, Team B"
	}`))
	req.Header.Set("Content-Type", "application/json")

	var body PlayerBody
	file, err := Decode(req, &body)
	require.NoError(t, err)
	assert.Nil(t, file)

	in := body.CreateInput()
	assert.Equal(t, "ace", in.Nickname)
	assert.Equal(t, "@ace", in.SocialMedia.Twitter)
	assert.Equal(t, 2.4, in.Stats.KDA)
	assert.Equal(t, []string{"MVP", "Finals"}, in.Achievements)
	assert.Equal(t, []string{"Team A", "Team B"}, in.PreviousTeams)
}

func TestDecodeMultipartPlayer(t *testing.T) {
	req := multipartRequest(t, map[string]string{
		"name":          "Alex",
		"nickname":      "ace",
		"socialMedia":   `{"twitch":"ace_tv"}`,
		"stats":         `{"kills":3}`,
		"achievements":  `["MVP"]`,
		"previousTeams": "Team A,Team B",
	}, true)

	var body PlayerBody
	file, err := Decode(req, &body)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "ace.png", file.Filename)
	assert.Equal(t, "image/png", file.Header.Get("Content-Type"))

	assert.Equal(t, "ace_tv", body.SocialMedia.Twitch)
	assert.Equal(t, 3, body.Stats.Kills)
	assert.Equal(t, StringList{"MVP"}, body.Achievements)
	assert.Equal(t, StringList{"Team A", "Team B"}, body.PreviousTeams)
	assert.Nil(t, body.Role)
}

func TestDecodeMultipartBadJSONField(t *testing.T) {
	req := multipartRequest(t, map[string]string{"stats": "{not json"}, false)

	var body PlayerBody
	_, err := Decode(req, &body)
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestDecodeMultipartProduct(t *testing.T) {
	req := multipartRequest(t, map[string]string{
		"name":     "Jersey",
		"price":    "59.99",
		"category": "jerseys",
		"inStock":  "on",
	}, false)

	var body ProductBody
	_, err := Decode(req, &body)
	require.NoError(t, err)

	in := body.CreateInput()
	assert.Equal(t, "59.99", in.Price.String())
	assert.Equal(t, model.CategoryJerseys, in.Category)
	assert.True(t, *in.InStock)
}

func TestDecodeProductBadPrice(t *testing.T) {
	req := multipartRequest(t, map[string]string{"price": "cheap"}, false)

	var body ProductBody
	_, err := Decode(req, &body)
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestDecodeJSONProductPrice(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Cap","price":24.5,"inStock":false}`))
	req.Header.Set("Content-Type", "application/json")

	var body ProductBody
	_, err := Decode(req, &body)
	require.NoError(t, err)
	assert.Equal(t, "24.5", body.Price.String())
	assert.False(t, *body.InStock)
	assert.Nil(t, body.Category)
}

func TestDecodeURLEncodedLogin(t *testing.T) {
	form := url.Values{"username": {"admin"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/adminp/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body LoginRequest
	_, err := Decode(req, &body)
	require.NoError(t, err)
	assert.Equal(t, "admin", body.Username)
	assert.Equal(t, "pw", body.Password)
}

func TestDecodeMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")

	var body NewsBody
	_, err := Decode(req, &body)
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestDecodeEmptyJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	var body NewsBody
	_, err := Decode(req, &body)
	require.NoError(t, err)
	assert.Nil(t, body.Title)
}

func TestParseList(t *testing.T) {
	list, err := ParseList(" a, ,b ")
	require.NoError(t, err)
	assert.Equal(t, StringList{"a", "b"}, list)

	list, err = ParseList(`["x","y"]`)
	require.NoError(t, err)
	assert.Equal(t, StringList{"x", "y"}, list)

	list, err = ParseList("")
	require.NoError(t, err)
	assert.Equal(t, StringList{}, list)

	_, err = ParseList("[broken")
	assert.Error(t, err)
}
