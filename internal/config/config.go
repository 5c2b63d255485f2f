// Package config loads server configuration from defaults, an optional
// config file, .env, environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the server reads
const EnvPrefix = "SITECMS"

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage backends
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the complete server configuration
type Config struct {
	Env     string        `mapstructure:"env"`
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Paths   PathsConfig   `mapstructure:"paths"`
	News    NewsConfig    `mapstructure:"news"`
	Site    SiteConfig    `mapstructure:"site"`
	Log     LogConfig     `mapstructure:"log"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig selects the content store
type StorageConfig struct {
	// Type is "mongo" or "memory"
	Type string `mapstructure:"type"`
}

// MongoConfig configures the MongoDB connection
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// SessionConfig configures admin sessions
type SessionConfig struct {
	Secret string `mapstructure:"secret"`
	// Store is "mongo", "redis" or "memory"; empty follows storage.type
	Store      string        `mapstructure:"store"`
	CookieName string        `mapstructure:"cookie_name"`
	MaxAge     time.Duration `mapstructure:"max_age"`
}

// RedisConfig configures the Redis session store
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// AdminConfig holds the credentials of the admin seeded on first start.
// An empty password is replaced by a generated one.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`
}

// PathsConfig locates files on disk
type PathsConfig struct {
	StaticDir string `mapstructure:"static_dir"`
	AdminDir  string `mapstructure:"admin_dir"`
	UploadDir string `mapstructure:"upload_dir"`
}

// NewsConfig configures the public news feed
type NewsConfig struct {
	// PublicLimit caps the public news list; 0 means unbounded
	PublicLimit int `mapstructure:"public_limit"`
}

// SiteConfig describes the organization running the site
type SiteConfig struct {
	Organization string `mapstructure:"organization"`
}

// LogConfig configures the application logger
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// CORSConfig configures cross-origin access to the public API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// SessionStore returns the effective session backend
func (c *Config) SessionStore() string {
	if c.Session.Store != "" {
		return c.Session.Store
	}
	return c.Storage.Type
}

// Options controls where Load looks for configuration
type Options struct {
	// ConfigFile is an optional YAML/TOML/JSON file
	ConfigFile string
	// EnvFiles are loaded into the environment before reading it;
	// missing files are ignored. Defaults to ".env".
	EnvFiles []string
	// Flags are bound by their key names (e.g. "server.port")
	Flags *pflag.FlagSet
}

// Load reads configuration
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables that are already set
		_ = godotenv.Load(f)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindConventionalEnv(v); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		if err := v.BindPFlags(opts.Flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// bindConventionalEnv lets the usual hosting variables work without the prefix
func bindConventionalEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"mongo.uri":      {EnvPrefix + "_MONGO_URI", "MONGODB_URI"},
		"session.secret": {EnvPrefix + "_SESSION_SECRET", "SESSION_SECRET"},
		"server.port":    {EnvPrefix + "_SERVER_PORT", "PORT"},
		"env":            {EnvPrefix + "_ENV", "APP_ENV"},
		"redis.url":      {EnvPrefix + "_REDIS_URL", "REDIS_URL"},
	}
	for key, names := range bindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks the configuration and normalizes enumerations
func (c *Config) Validate() error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = EnvDevelopment
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Storage.Type {
	case StorageMongo:
		if c.Mongo.URI == "" {
			return errors.New("mongo.uri is required when storage.type is mongo")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid storage.type %q: must be mongo or memory", c.Storage.Type)
	}

	switch c.SessionStore() {
	case StorageMongo:
		if c.Storage.Type != StorageMongo {
			return errors.New("session.store mongo requires storage.type mongo")
		}
	case StorageRedis:
		if c.Redis.URL == "" {
			return errors.New("redis.url is required when session.store is redis")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid session.store %q: must be mongo, redis or memory", c.Session.Store)
	}

	if c.Session.Secret == "" && c.IsProduction() {
		return errors.New("session.secret is required in production")
	}
	if c.Session.MaxAge <= 0 {
		return errors.New("session.max_age must be positive")
	}

	if c.Admin.Username == "" {
		return errors.New("admin.username is required")
	}
	if c.News.PublicLimit < 0 {
		return fmt.Errorf("invalid news.public_limit: %d", c.News.PublicLimit)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("storage.type", StorageMongo)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "sitecms")
	v.SetDefault("mongo.connect_timeout", 10*time.Second)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.store", "")
	v.SetDefault("session.cookie_name", "sitecms.sid")
	v.SetDefault("session.max_age", 24*time.Hour)

	v.SetDefault("redis.url", "")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.role", "admin")

	v.SetDefault("paths.static_dir", "public")
	v.SetDefault("paths.admin_dir", "views/admin")
	v.SetDefault("paths.upload_dir", "public/uploads")

	v.SetDefault("news.public_limit", 0)

	v.SetDefault("site.organization", "Vanguard Esports")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)

	v.SetDefault("cors.allowed_origins", []string{})
}
