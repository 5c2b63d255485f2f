package mongo

import "time"

// Collection names
const (
	adminsCollection   = "admins"
	newsCollection     = "news"
	playersCollection  = "players"
	productsCollection = "products"
	sessionsCollection = "sessions"
)

// Config holds MongoDB connection settings
type Config struct {
	// URI is the connection string (e.g., mongodb://localhost:27017)
	URI string
	// Database is the database holding every collection
	Database string

	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

// DefaultConfig returns sensible defaults for MongoDB configuration
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://localhost:27017",
		Database:       "sitecms",
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    50,
		MinPoolSize:    0,
	}
}
