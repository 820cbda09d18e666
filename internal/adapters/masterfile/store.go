// Package masterfile persists master identities as a newline-delimited,
// append-only list of hex addresses, one line per authorization grant.
package masterfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/confbot/internal/domain"
	"github.com/bnema/confbot/internal/ports"
)

const (
	masterFileMode = 0o600
	masterDirMode  = 0o700
)

type Store struct {
	path string
	mu   *sync.RWMutex
}

// The CLI and a running bot may point at the same file, so locks are shared
// per cleaned path within the process.
var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.MasterRegistry = (*Store)(nil)

func NewStore(path string) *Store {
	path = filepath.Clean(path)
	return &Store{path: path, mu: lockForPath(path)}
}

func (s *Store) Add(ctx context.Context, id domain.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !id.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAddress, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), masterDirMode); err != nil {
		return fmt.Errorf("create master list directory: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, masterFileMode)
	if err != nil {
		return fmt.Errorf("open master list: %w", err)
	}

	if _, err := file.WriteString(string(id.Normalized()) + "\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("append master identity: %w", err)
	}

	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush master list: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close master list: %w", err)
	}

	return nil
}

func (s *Store) Contains(ctx context.Context, id domain.Identity) (bool, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		if entry.Equal(id) {
			return true, nil
		}
	}

	return false, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open master list: %w", err)
	}
	defer file.Close()

	var entries []domain.Identity
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, domain.Identity(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read master list: %w", err)
	}

	return entries, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
