package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, opts Options) (*Config, error) {
	t.Helper()
	if opts.EnvFiles == nil {
		opts.EnvFiles = []string{}
	}
	return Load(opts)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, Options{})
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, StorageMongo, cfg.Storage.Type)
	assert.Equal(t, StorageMongo, cfg.SessionStore())
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "public/uploads", cfg.Paths.UploadDir)
	assert.Equal(t, 0, cfg.News.PublicLimit)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Server.Host)
}

func TestLoadConventionalEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("APP_ENV", "Production")

	cfg, err := load(t, Options{})
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.True(t, cfg.IsProduction())
}

func TestLoadPrefixedEnvWins(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("SITECMS_SERVER_PORT", "9090")
	t.Setenv("SITECMS_NEWS_PUBLIC_LIMIT", "10")
	t.Setenv("SITECMS_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := load(t, Options{})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.News.PublicLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SITECMS_STORAGE_TYPE", "mongo")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("storage.type", "", "")
	require.NoError(t, flags.Parse([]string{"--storage.type=memory"}))

	cfg, err := load(t, Options{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, StorageMemory, cfg.SessionStore())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitecms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  type: memory
site:
  organization: Test Org
session:
  max_age: 2h
`), 0o600))

	cfg, err := load(t, Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "Test Org", cfg.Site.Organization)
	assert.Equal(t, 2*time.Hour, cfg.Session.MaxAge)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SITECMS_SITE_ORGANIZATION=Dotenv Org\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SITECMS_SITE_ORGANIZATION") })

	cfg, err := load(t, Options{EnvFiles: []string{path}})
	require.NoError(t, err)
	assert.Equal(t, "Dotenv Org", cfg.Site.Organization)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "production requires a secret",
			env:     map[string]string{"APP_ENV": "production"},
			wantErr: "session.secret is required",
		},
		{
			name:    "unknown storage type",
			env:     map[string]string{"SITECMS_STORAGE_TYPE": "postgres"},
			wantErr: "invalid storage.type",
		},
		{
			name:    "mongo sessions need mongo storage",
			env:     map[string]string{"SITECMS_STORAGE_TYPE": "memory", "SITECMS_SESSION_STORE": "mongo"},
			wantErr: "requires storage.type mongo",
		},
		{
			name:    "redis sessions need a url",
			env:     map[string]string{"SITECMS_SESSION_STORE": "redis"},
			wantErr: "redis.url is required",
		},
		{
			name:    "bad port",
			env:     map[string]string{"PORT": "70000"},
			wantErr: "invalid server port",
		},
		{
			name:    "negative news limit",
			env:     map[string]string{"SITECMS_NEWS_PUBLIC_LIMIT": "-1"},
			wantErr: "invalid news.public_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(t, Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
