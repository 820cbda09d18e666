package ports

import (
	"context"

	"github.com/bnema/confbot/internal/domain"
)

// SnapshotStore persists the bot profile across restarts.
type SnapshotStore interface {
	Save(ctx context.Context, profile domain.Profile) error
	Load(ctx context.Context) (domain.Profile, error)
}
