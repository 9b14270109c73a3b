package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Log is a no-op until Initialize is called.
var Log = zap.NewNop()

func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}

// Transport logs every outgoing request handled by the wrapped RoundTripper.
type Transport struct {
	Base http.RoundTripper
}

func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	startTime := time.Now()

	resp, err := t.Base.RoundTrip(r)
	duration := time.Since(startTime)

	if err != nil {
		Log.Warn("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	Log.Info("Request handled",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", r.Header.Get("X-Request-ID")),
		zap.Duration("duration", duration),
		zap.Int("status_code", resp.StatusCode),
		zap.Int64("content_length", resp.ContentLength),
	)
	return resp, nil
}
