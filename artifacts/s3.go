package artifacts

import (
	"context"
	"errors"
	"fmt"
	"mime"

	"tubenotes/common"
	"tubenotes/types"
)

// objectStore is the part of common.S3 the artifact store needs
type objectStore interface {
	Key(name string) string
	Put(ctx context.Context, key string, body []byte, contentType, contentDisposition string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// S3Store keeps one object per run at <prefix>/<run id>/summary.txt
type S3Store struct {
	objects objectStore
}

var (
	_ Store       = (*S3Store)(nil)
	_ objectStore = (*common.S3)(nil)
)

func NewS3Store(objects objectStore) *S3Store {
	return &S3Store{objects: objects}
}

func (s *S3Store) key(runID string) string {
	return s.objects.Key(runID + "/" + types.ArtifactFilename)
}

func (s *S3Store) Save(ctx context.Context, runID string, a types.Artifact) error {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})
	contentType := a.ContentType + "; charset=utf-8"
	if err := s.objects.Put(ctx, s.key(runID), []byte(a.Body), contentType, disposition); err != nil {
		return fmt.Errorf("failed to upload artifact: %w", err)
	}
	return nil
}

// Load checks the object with HEAD first so a missing run never opens a body
func (s *S3Store) Load(ctx context.Context, runID string) (types.Artifact, error) {
	key := s.key(runID)
	ok, err := s.objects.Exists(ctx, key)
	if err != nil {
		return types.Artifact{}, fmt.Errorf("failed to check artifact: %w", err)
	}
	if !ok {
		return types.Artifact{}, ErrNotFound
	}

	body, err := s.objects.Get(ctx, key)
	if errors.Is(err, common.ErrObjectNotFound) {
		return types.Artifact{}, ErrNotFound
	}
	if err != nil {
		return types.Artifact{}, fmt.Errorf("failed to download artifact: %w", err)
	}
	return types.NewArtifact(string(body)), nil
}
