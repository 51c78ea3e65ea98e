package factory

import (
	"errors"
	"log/slog"

	"github.com/Fras28/NextLvlPadel-sub000/internal/dependencies/clock"
	"github.com/Fras28/NextLvlPadel-sub000/internal/session"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage"
	filestorage "github.com/Fras28/NextLvlPadel-sub000/internal/storage/file"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage/memory"
	redisstorage "github.com/Fras28/NextLvlPadel-sub000/internal/storage/redis"
	"github.com/Fras28/NextLvlPadel-sub000/internal/strapi"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Store   storage.Store
	Client  *strapi.Client
	Clock   clock.Clock
	Session *session.Manager
}

// Config holds configuration for the application factory
type Config struct {
	// ServerURL is the backend base URL (required)
	ServerURL string
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// StorageDir is the directory for file storage (required if
	// StorageType is "file")
	StorageDir string
	// RedisConfig holds Redis connection settings (required if
	// StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.ServerURL == "" {
		return nil, errors.New("ServerURL is required")
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	var store storage.Store
	switch storageType {
	case StorageTypeFile:
		if cfg.StorageDir == "" {
			return nil, errors.New("StorageDir required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.StorageDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	client := strapi.NewClient(cfg.ServerURL)
	return newWithDependencies(store, client, clock.New(), cfg.Logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, client *strapi.Client, clk clock.Clock, logger *slog.Logger) *App {
	return &App{
		Store:   store,
		Client:  client,
		Clock:   clk,
		Session: session.New(store, client, clk, logger),
	}
}
