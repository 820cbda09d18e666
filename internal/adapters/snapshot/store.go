// Package snapshot persists the bot profile as a small TOML document,
// rewritten atomically after every presence-mutating command.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/confbot/internal/domain"
	"github.com/bnema/confbot/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	currentSchemaVersion = 1
	snapshotFileMode     = 0o600
	snapshotDirMode      = 0o700
	tempFilePattern      = ".profile-*.toml.tmp"
)

type profileSchema struct {
	Version       int    `toml:"version"`
	Name          string `toml:"name"`
	Presence      string `toml:"presence"`
	StatusMessage string `toml:"status_message,omitempty"`
	Address       string `toml:"address"`
}

type Store struct {
	path string
	mu   sync.RWMutex
}

var _ ports.SnapshotStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Save(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schema := profileSchema{
		Version:       currentSchemaVersion,
		Name:          profile.Name,
		Presence:      profile.Presence.String(),
		StatusMessage: profile.StatusMessage,
		Address:       string(profile.Address),
	}

	data, err := toml.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode profile snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), snapshotDirMode); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp snapshot file: %w", err)
	}

	if err := tempFile.Chmod(snapshotFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp snapshot file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp snapshot file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	cleanup = false
	return nil
}

func (s *Store) Load(ctx context.Context) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Profile{}, domain.ErrSnapshotNotFound
		}
		return domain.Profile{}, fmt.Errorf("read snapshot file: %w", err)
	}

	var schema profileSchema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return domain.Profile{}, fmt.Errorf("decode snapshot file: %w", err)
	}
	if schema.Version > currentSchemaVersion {
		return domain.Profile{}, fmt.Errorf("unsupported snapshot schema version %d (current %d)", schema.Version, currentSchemaVersion)
	}

	presence, err := domain.ParsePresence(schema.Presence)
	if err != nil {
		presence = domain.PresenceOnline
	}

	return domain.Profile{
		Name:          schema.Name,
		Presence:      presence,
		StatusMessage: schema.StatusMessage,
		Address:       domain.Identity(schema.Address),
	}, nil
}
