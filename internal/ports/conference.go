package ports

import (
	"context"

	"github.com/bnema/confbot/internal/domain"
)

// Conference is the transport's group chat surface. Session numbers are
// assigned by the transport and stay stable until deletion.
type Conference interface {
	Create(ctx context.Context, kind domain.SessionKind) (int, error)
	Delete(ctx context.Context, number int) error
	Send(ctx context.Context, number int, text string) error
	Invite(ctx context.Context, id domain.Identity, number int) error
	SetTitle(ctx context.Context, number int, title string) error
	PeerCount(ctx context.Context, number int) (int, error)
	Kind(ctx context.Context, number int) (domain.SessionKind, error)
	List(ctx context.Context) ([]int, error)
}
