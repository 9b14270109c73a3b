package session

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Options struct {
	Backend  string
	Origin   string
	FilePath string
	Redis    RedisConfig
}

// Open builds the store for opts.Backend. The returned closer releases
// backend resources and is never nil.
func Open(ctx context.Context, opts Options) (Store, io.Closer, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nopCloser{}, nil
	case BackendFile, "":
		fs, err := NewFileStore(opts.FilePath, opts.Origin)
		if err != nil {
			return nil, nil, err
		}
		return fs, nopCloser{}, nil
	case BackendRedis:
		rdb, err := OpenRedis(ctx, opts.Redis)
		if err != nil {
			return nil, nil, err
		}
		rs := NewRedisStore(rdb, opts.Origin)
		return rs, rs, nil
	default:
		return nil, nil, errors.Errorf("unknown session backend %q", opts.Backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
