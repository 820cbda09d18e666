package ports

import (
	"context"

	"github.com/bnema/confbot/internal/domain"
)

// Messenger is the friend-facing side of the transport: one-to-one replies
// plus the bot's own presence.
type Messenger interface {
	SendReply(ctx context.Context, to domain.Identity, text string) error
	SelfAddress() [domain.AddressLength]byte
	FriendName(ctx context.Context, id domain.Identity) string
	FriendCount(ctx context.Context) int
	OnlineFriendCount(ctx context.Context) int

	SetSelfName(ctx context.Context, name string) error
	SetSelfPresence(ctx context.Context, presence domain.Presence) error
	SetSelfStatusMessage(ctx context.Context, text string) error
}
