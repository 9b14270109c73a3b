package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/Tokebay/shorty/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CredentialData is one line of the credentials file.
type CredentialData struct {
	Origin string `json:"origin"`
	Token  string `json:"token"`
}

// FileStore keeps one credential per origin in a JSON-lines file shared by
// every origin the client talks to.
type FileStore struct {
	filePath string
	origin   string
	mu       sync.Mutex
}

func NewFileStore(filePath, origin string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return nil, errors.Wrap(err, "create credentials dir")
	}
	return &FileStore{
		filePath: filePath,
		origin:   origin,
	}, nil
}

func (fs *FileStore) Get(_ context.Context) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := fs.load()
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.Origin == fs.origin && e.Token != "" {
			return e.Token, nil
		}
	}
	return "", ErrNoCredential
}

func (fs *FileStore) Set(_ context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	return fs.replace(token)
}

func (fs *FileStore) Clear(_ context.Context) error {
	return fs.replace("")
}

// replace rewrites the file with this origin's entry set to token, or
// dropped when token is empty.
func (fs *FileStore) replace(token string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	// a corrupt file is rebuilt from the entries that still decode
	entries, err := fs.load()
	if err != nil {
		logger.Log.Warn("Rewriting corrupt credentials file",
			zap.String("path", fs.filePath),
			zap.Int("recovered", len(entries)),
			zap.Error(err),
		)
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Origin != fs.origin {
			kept = append(kept, e)
		}
	}
	if token != "" {
		kept = append(kept, CredentialData{Origin: fs.origin, Token: token})
	}

	return fs.write(kept)
}

// load returns the entries decoded before the first error along with it.
func (fs *FileStore) load() ([]CredentialData, error) {
	file, err := os.Open(fs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "open credentials file")
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	var entries []CredentialData
	for decoder.More() {
		var e CredentialData
		if err := decoder.Decode(&e); err != nil {
			return entries, errors.Wrap(err, "decode credentials file")
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// write goes through a temp file and a rename so readers never observe a
// partially written file.
func (fs *FileStore) write(entries []CredentialData) error {
	tmp, err := os.CreateTemp(filepath.Dir(fs.filePath), ".credentials-*")
	if err != nil {
		return errors.Wrap(err, "create temp credentials file")
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	for _, e := range entries {
		if err := encoder.Encode(e); err != nil {
			tmp.Close()
			return errors.Wrap(err, "encode credentials")
		}
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp credentials file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), fs.filePath), "replace credentials file")
}
