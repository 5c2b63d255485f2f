package factory

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/vanguardgg/sitecms/internal/config"
	"github.com/vanguardgg/sitecms/internal/dependencies/mocks"
	"github.com/vanguardgg/sitecms/internal/storage/memory"
	"github.com/vanguardgg/sitecms/internal/testutil"
)

// Credentials of the admin seeded by NewTestApp
const (
	TestAdminUsername = "admin"
	TestAdminPassword = "correct-horse-battery"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the in-memory store backing both content and sessions
	Memory *memory.Storage

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies,
// the repository's pages, a temporary upload directory and a seeded admin
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	root := repoRoot()
	cfg := &config.Config{
		Env:     config.EnvDevelopment,
		Storage: config.StorageConfig{Type: config.StorageMemory},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			Store:      config.StorageMemory,
			CookieName: "sitecms.sid",
			MaxAge:     24 * time.Hour,
		},
		Admin: config.AdminConfig{
			Username: TestAdminUsername,
			Password: TestAdminPassword,
			Role:     "admin",
		},
		Paths: config.PathsConfig{
			StaticDir: filepath.Join(root, "public"),
			AdminDir:  filepath.Join(root, "views", "admin"),
			UploadDir: t.TempDir(),
		},
		Site: config.SiteConfig{Organization: "Vanguard Esports"},
	}

	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := &App{
		Config:   cfg,
		Logger:   testutil.NopLogger(),
		Storage:  store,
		Sessions: store,
		Clock:    mockClock,
		Random:   mockRandom,
	}
	if err := app.wire(); err != nil {
		t.Fatalf("failed to wire test app: %v", err)
	}
	if _, err := app.SeedAdmin(t.Context()); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	return &TestApp{
		App:        app,
		Memory:     store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// UploadPath returns the on-disk location of an uploaded file's public path
func (t *TestApp) UploadPath(publicPath string) string {
	return filepath.Join(t.Uploads.Dir(), filepath.Base(publicPath))
}

// repoRoot locates the module root from this source file
func repoRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}
