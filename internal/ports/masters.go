package ports

import (
	"context"

	"github.com/bnema/confbot/internal/domain"
)

// MasterRegistry is the append-only set of identities allowed to run
// privileged commands. Add must flush before returning; duplicates are
// appended as-is.
type MasterRegistry interface {
	Add(ctx context.Context, id domain.Identity) error
	Contains(ctx context.Context, id domain.Identity) (bool, error)
	List(ctx context.Context) ([]domain.Identity, error)
}
