package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the contract every backend must honor.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, s.Set(ctx, "abc"))
	tok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, s.Set(ctx, "def"))
	tok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "def", tok)

	assert.ErrorIs(t, s.Set(ctx, ""), ErrEmptyToken)
	tok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "def", tok)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, s.Clear(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shorty", "credentials.json")
	fs, err := NewFileStore(path, "http://localhost:8080")
	require.NoError(t, err)
	exerciseStore(t, fs)
}

func TestFileStore_OriginScoped(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")

	local, err := NewFileStore(path, "http://localhost:8080")
	require.NoError(t, err)
	remote, err := NewFileStore(path, "https://sho.rt")
	require.NoError(t, err)

	require.NoError(t, local.Set(ctx, "local-token"))
	require.NoError(t, remote.Set(ctx, "remote-token"))

	tok, err := local.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "local-token", tok)

	require.NoError(t, remote.Clear(ctx))
	_, err = remote.Get(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	tok, err = local.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "local-token", tok)

	// a fresh store over the same file sees the persisted value
	reopened, err := NewFileStore(path, "http://localhost:8080")
	require.NoError(t, err)
	tok, err = reopened.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "local-token", tok)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	fs, err := NewFileStore(path, "http://localhost:8080")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = fs.Get(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCredential)

	require.NoError(t, fs.Set(ctx, "abc"))
	tok, err := fs.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	require.NoError(t, fs.Clear(ctx))
	_, err = fs.Get(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestFileStore_CorruptTailKeepsOtherOrigins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	data := `{"origin":"http://other:9000","token":"keep"}` + "\n" + `{"origin":`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	ctx := context.Background()
	fs, err := NewFileStore(path, "http://localhost:8080")
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, "abc"))

	other, err := NewFileStore(path, "http://other:9000")
	require.NoError(t, err)
	tok, err := other.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "keep", tok)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SHORTY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SHORTY_TEST_REDIS_ADDR not set")
	}
	s, closer, err := Open(context.Background(), Options{
		Backend: BackendRedis,
		Origin:  "http://test.invalid",
		Redis:   RedisConfig{Addr: addr},
	})
	require.NoError(t, err)
	defer closer.Close()

	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closer, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, closer.Close())

	s, _, err = Open(ctx, Options{
		Backend:  BackendFile,
		Origin:   "http://localhost:8080",
		FilePath: filepath.Join(t.TempDir(), "c.json"),
	})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, _, err = Open(ctx, Options{Backend: BackendRedis})
	assert.ErrorIs(t, err, errRedisAddr)

	_, _, err = Open(ctx, Options{Backend: BackendRedis, Redis: RedisConfig{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond}})
	assert.ErrorContains(t, err, "ping redis at 127.0.0.1:1")

	_, _, err = Open(ctx, Options{Backend: "cookie"})
	assert.Error(t, err)
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:8080", want: "http://localhost:8080"},
		{in: "HTTPS://Sho.rt/api/v1?x=1", want: "https://sho.rt"},
		{in: "localhost:8080", wantErr: true},
		{in: "/relative", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Origin(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
