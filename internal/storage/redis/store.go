package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage"
)

// Store is a Redis-backed implementation of the storage interface, for
// deployments where the client runs on a shared host rather than a device
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) SaveCredential(ctx context.Context, credential string) error {
	return s.client.Set(ctx, credentialKey(s.cfg.Namespace), credential, s.cfg.SessionTTL).Err()
}

func (s *Store) LoadCredential(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, credentialKey(s.cfg.Namespace)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *Store) DeleteCredential(ctx context.Context) error {
	return s.client.Del(ctx, credentialKey(s.cfg.Namespace)).Err()
}

func (s *Store) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, profileKey(s.cfg.Namespace), data, s.cfg.SessionTTL).Err()
}

func (s *Store) LoadProfile(ctx context.Context) (*model.UserProfile, error) {
	data, err := s.client.Get(ctx, profileKey(s.cfg.Namespace)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) DeleteProfile(ctx context.Context) error {
	return s.client.Del(ctx, profileKey(s.cfg.Namespace)).Err()
}
