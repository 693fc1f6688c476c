package artifacts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubenotes/common"
	"tubenotes/config"
	"tubenotes/types"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "run-1", types.NewArtifact("bonjour")))
	got, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "bonjour", got.Body)
	assert.Equal(t, "summary.txt", got.Filename)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "run-1", types.NewArtifact("x")))
	now = now.Add(59 * time.Second)
	_, err := store.Load(ctx, "run-1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Load(ctx, "run-1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "run-2", types.NewArtifact("y")))
	assert.Len(t, store.entries, 1, "expired entries are swept on save")
}

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
	disp    map[string]string
	gets    int
	headErr error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}, disp: map[string]string{}}
}

func (f *fakeObjects) Key(name string) string { return "summaries/" + name }

func (f *fakeObjects) Put(_ context.Context, key string, body []byte, contentType, disposition string) error {
	f.objects[key] = body
	f.types[key] = contentType
	f.disp[key] = disposition
	return nil
}

func (f *fakeObjects) Exists(_ context.Context, key string) (bool, error) {
	if f.headErr != nil {
		return false, f.headErr
	}
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeObjects) Get(_ context.Context, key string) ([]byte, error) {
	f.gets++
	body, ok := f.objects[key]
	if !ok {
		return nil, common.ErrObjectNotFound
	}
	return body, nil
}

func TestS3StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	store := NewS3Store(objects)

	require.NoError(t, store.Save(ctx, "run-1", types.NewArtifact("hola")))

	key := "summaries/run-1/summary.txt"
	assert.Equal(t, []byte("hola"), objects.objects[key])
	assert.True(t, strings.HasPrefix(objects.types[key], "text/plain"))
	assert.Equal(t, `attachment; filename=summary.txt`, objects.disp[key])

	got, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, types.NewArtifact("hola"), got)

	assert.Equal(t, 1, objects.gets)

	_, err = store.Load(ctx, "run-2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, objects.gets, "missing runs are answered by HEAD alone")
}

func TestS3StoreLoadHeadFailure(t *testing.T) {
	objects := newFakeObjects()
	objects.headErr = errors.New("access denied")
	store := NewS3Store(objects)

	_, err := store.Load(context.Background(), "run-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Zero(t, objects.gets)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}), time.Minute)
	require.NoError(t, store.Ping(ctx))

	runID := "test-" + time.Now().Format("150405.000000000")
	require.NoError(t, store.Save(ctx, runID, types.NewArtifact("hallo")))

	got, err := store.Load(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "hallo", got.Body)

	_, err = store.Load(ctx, runID+"-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "tubenotes:artifact:abc", redisKey("abc"))
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, config.ArtifactConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(ctx, config.ArtifactConfig{Backend: config.StoreRedis, Redis: config.RedisConfig{Addr: "localhost:0"}})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)

	_, err = New(ctx, config.ArtifactConfig{Backend: config.StoreS3})
	require.Error(t, err, "bucket is required")

	_, err = New(ctx, config.ArtifactConfig{Backend: "ftp"})
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, types.NewArtifact("résumé"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.txt"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "résumé", string(raw))
}
