package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","storage":"ok"}`))
	})
	mux.HandleFunc("GET /api/news", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id":"65a1b2c3d4e5f6a7b8c9d0e1","title":"Roster update","content":"x","author":"Vanguard Esports","createdAt":"2024-01-01T12:00:00Z"}]`))
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id":"p1","name":"Scarf","price":24.5,"category":"accessories","inStock":true}]`))
	})
	mux.HandleFunc("GET /api/players/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"PLAYER_NOT_FOUND","message":"Player not found"}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHealthCommand(t *testing.T) {
	server := fakeAPI(t)

	out, err := run(t, "--server", server.URL, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: ok")
	assert.Contains(t, out, "Storage: ok")
}

func TestNewsListText(t *testing.T) {
	server := fakeAPI(t)

	out, err := run(t, "--server", server.URL, "news", "list", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "Roster update")
}

func TestProductsListJSON(t *testing.T) {
	server := fakeAPI(t)

	out, err := run(t, "--server", server.URL, "-o", "json", "products", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Scarf"`)
	assert.Contains(t, out, `"price": 24.5`)
}

func TestAPIErrorsAreReturned(t *testing.T) {
	server := fakeAPI(t)

	_, err := run(t, "--server", server.URL, "players", "get", "missing")
	require.Error(t, err)
	assert.Equal(t, "Player not found (PLAYER_NOT_FOUND)", err.Error())
}

func TestGetRequiresID(t *testing.T) {
	server := fakeAPI(t)

	_, err := run(t, "--server", server.URL, "news", "get")
	assert.Error(t, err)
}
