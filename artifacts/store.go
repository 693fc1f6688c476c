package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"tubenotes/common"
	"tubenotes/config"
	"tubenotes/types"
)

// ErrNotFound is returned by Load when no artifact exists for a run
var ErrNotFound = errors.New("artifact not found")

// Store keeps the downloadable summary of finished runs
type Store interface {
	Save(ctx context.Context, runID string, a types.Artifact) error
	Load(ctx context.Context, runID string) (types.Artifact, error)
}

// New builds the store selected in cfg
func New(ctx context.Context, cfg config.ArtifactConfig) (Store, error) {
	switch cfg.Backend {
	case config.StoreMemory, "":
		return NewMemoryStore(cfg.TTL), nil
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStore(rdb, cfg.TTL), nil
	case config.StoreS3:
		client, err := common.NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3: %w", err)
		}
		return NewS3Store(client), nil
	default:
		return nil, fmt.Errorf("unknown artifact store %q", cfg.Backend)
	}
}

// WriteFile writes a into dir under its own filename and returns the path
func WriteFile(dir string, a types.Artifact) (string, error) {
	if dir == "" {
		dir = "."
	}
	name := a.Filename
	if name == "" {
		name = types.ArtifactFilename
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(a.Body), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
