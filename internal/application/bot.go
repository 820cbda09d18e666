package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/confbot/internal/domain"
	"github.com/bnema/confbot/internal/ports"
)

var (
	ErrCommandTooLong = errors.New("command exceeds maximum length")
	ErrUnknownCommand = errors.New("unknown command")
)

const notAuthorizedReply = "You are not authorized to use this command."

type handlerFunc func(ctx context.Context, from domain.Identity, args []string) error

// Bot is the command core: it owns the group session store, the default
// session pointer, the purge limit and the bot profile, and dispatches every
// inbound command through a static table. Dispatch is strictly sequential;
// callers must serialize inbound messages into a single queue.
type Bot struct {
	messenger ports.Messenger
	conf      ports.Conference
	masters   ports.MasterRegistry
	snapshots ports.SnapshotStore
	clock     ports.Clock

	sessions       *domain.SessionStore
	profile        domain.Profile
	defaultSession int
	purgeLimit     time.Duration
	startedAt      time.Time

	commands map[string]handlerFunc
	log      io.Writer
}

func NewBot(messenger ports.Messenger, conf ports.Conference, masters ports.MasterRegistry, snapshots ports.SnapshotStore, clock ports.Clock) *Bot {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	b := &Bot{
		messenger: messenger,
		conf:      conf,
		masters:   masters,
		snapshots: snapshots,
		clock:     clock,
		sessions:  domain.NewSessionStore(),
		startedAt: clock.Now(),
		log:       io.Discard,
	}

	b.commands = map[string]handlerFunc{
		"default":       b.cmdDefault,
		"group":         b.cmdGroup,
		"gmessage":      b.cmdGroupMessage,
		"help":          b.cmdHelp,
		"id":            b.cmdID,
		"info":          b.cmdInfo,
		"invite":        b.cmdInvite,
		"leave":         b.cmdLeave,
		"master":        b.cmdMaster,
		"name":          b.cmdName,
		"passwd":        b.cmdPasswd,
		"purge":         b.cmdPurge,
		"status":        b.cmdStatus,
		"statusmessage": b.cmdStatusMessage,
		"title":         b.cmdTitle,
	}

	return b
}

// SetLogOutput directs the operator log lines handlers emit alongside their
// replies.
func (b *Bot) SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	b.log = w
}

// RestoreProfile applies a previously snapshotted profile to the bot and its
// transport.
func (b *Bot) RestoreProfile(ctx context.Context, profile domain.Profile) error {
	b.profile = profile

	if profile.Name != "" {
		if err := b.messenger.SetSelfName(ctx, profile.Name); err != nil {
			return fmt.Errorf("restore name: %w", err)
		}
	}
	if err := b.messenger.SetSelfPresence(ctx, profile.Presence); err != nil {
		return fmt.Errorf("restore presence: %w", err)
	}
	if profile.StatusMessage != "" {
		if err := b.messenger.SetSelfStatusMessage(ctx, profile.StatusMessage); err != nil {
			return fmt.Errorf("restore status message: %w", err)
		}
	}

	return nil
}

// SetPurgeLimit seeds the inactivity purge duration before the bot starts
// taking commands.
func (b *Bot) SetPurgeLimit(limit time.Duration) {
	b.purgeLimit = limit
}

// PurgeLimit is read by the inactivity sweep; the core only stores it.
func (b *Bot) PurgeLimit() time.Duration {
	return b.purgeLimit
}

func (b *Bot) DefaultSession() int {
	return b.defaultSession
}

func (b *Bot) Profile() domain.Profile {
	return b.profile
}

// Execute runs one inbound message through the command table. Oversized
// input, a quote mismatch and an unmatched command name are rejected without
// a reply; everything else is the matched handler's responsibility, including
// authorization and argument validation.
func (b *Bot) Execute(ctx context.Context, from domain.Identity, raw string) error {
	if len(raw) >= domain.MaxMessageLength {
		return ErrCommandTooLong
	}

	args, err := Tokenize(raw)
	if err != nil {
		return err
	}

	handler, ok := b.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	return handler(ctx, from, args[1:])
}

func (b *Bot) reply(ctx context.Context, to domain.Identity, text string) error {
	return b.messenger.SendReply(ctx, to, text)
}

// replyError surfaces a collaborator failure to the sender with the
// collaborator's own error appended.
func (b *Bot) replyError(ctx context.Context, to domain.Identity, message string, err error) error {
	return b.reply(ctx, to, fmt.Sprintf("%s (error: %v)", message, err))
}

func (b *Bot) isMaster(ctx context.Context, id domain.Identity) bool {
	ok, err := b.masters.Contains(ctx, id)
	if err != nil {
		b.logf("master lookup for %s failed: %v", id, err)
		return false
	}
	return ok
}

func (b *Bot) logf(format string, args ...any) {
	fmt.Fprintf(b.log, format+"\n", args...)
}

func (b *Bot) senderName(ctx context.Context, id domain.Identity) string {
	if name := b.messenger.FriendName(ctx, id); name != "" {
		return name
	}
	return string(id)
}

// sessionNumber parses a group number argument. A token parses to zero only
// when it is literally "0"; anything non-numeric is an error, never a silent
// zero.
func sessionNumber(arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, false
	}
	if n == 0 && arg != "0" {
		return 0, false
	}
	return n, true
}

// unquote strips the surrounding double quotes the tokenizer leaves on a
// quoted token. The second return is false when the token is not quoted.
func unquote(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "\"") {
		return "", false
	}
	return strings.TrimSuffix(arg[1:], "\""), true
}
