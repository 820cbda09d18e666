package application

import (
	"context"
	"fmt"

	"github.com/bnema/confbot/internal/domain"
)

func (b *Bot) cmdDefault(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: group number required")
	}

	number, ok := sessionNumber(args[0])
	if !ok || number < 0 {
		return b.reply(ctx, from, "Error: group number required")
	}

	b.defaultSession = number

	b.logf("Default group number set to %d by %s", number, b.senderName(ctx, from))
	return b.reply(ctx, from, fmt.Sprintf("Default group number set to %d", number))
}

func (b *Bot) cmdGroup(ctx context.Context, from domain.Identity, args []string) error {
	if len(args) < 1 {
		return b.reply(ctx, from, "Please specify the group type: audio or text")
	}

	kind := domain.KindFromArg(args[0])

	var password string
	if len(args) >= 2 {
		password = args[1]
	}

	// The password bound is checked before the transport session exists so
	// a validation failure cannot leak a transport-side session.
	if len(password) >= domain.MaxPasswordLength {
		b.logf("Group chat creation by %s failed: password too long", b.senderName(ctx, from))
		return b.reply(ctx, from, "Failed to create group chat: password too long")
	}

	number, err := b.conf.Create(ctx, kind)
	if err != nil {
		b.logf("Group chat creation by %s failed: %v", b.senderName(ctx, from), err)
		return b.reply(ctx, from, "Group chat instance failed to initialize.")
	}

	if _, err := b.sessions.Add(number, kind, password); err != nil {
		if deleteErr := b.conf.Delete(ctx, number); deleteErr != nil {
			b.logf("Rollback of group chat %d failed: %v", number, deleteErr)
		}
		b.logf("Group chat creation by %s failed: %v", b.senderName(ctx, from), err)
		return b.reply(ctx, from, "Failed to create group chat")
	}

	suffix := ""
	if password != "" {
		suffix = " (password protected)"
	}

	b.logf("Group chat %d created by %s%s", number, b.senderName(ctx, from), suffix)
	return b.reply(ctx, from, fmt.Sprintf("Group chat %d created%s", number, suffix))
}

func (b *Bot) cmdGroupMessage(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: group number required")
	}

	if len(args) < 2 {
		return b.reply(ctx, from, "Error: message required")
	}

	number, ok := sessionNumber(args[0])
	if !ok {
		return b.reply(ctx, from, "Error: group number required")
	}

	if _, err := b.sessions.ByNumber(number); err != nil {
		return b.reply(ctx, from, "Error: group number required")
	}

	message, ok := unquote(args[1])
	if !ok {
		return b.reply(ctx, from, "Error: message must be enclosed in quotes")
	}

	if err := b.conf.Send(ctx, number, message); err != nil {
		return b.replyError(ctx, from, "Error: failed to send message.", err)
	}

	b.logf("<%s> message to group %d: %s", b.senderName(ctx, from), number, message)
	return b.reply(ctx, from, "Message sent.")
}

func (b *Bot) cmdInvite(ctx context.Context, from domain.Identity, args []string) error {
	number := b.defaultSession

	if len(args) >= 1 {
		parsed, ok := sessionNumber(args[0])
		if !ok {
			return b.reply(ctx, from, "Error: invalid group number")
		}
		number = parsed
	}

	session, err := b.sessions.ByNumber(number)
	if err != nil {
		return b.reply(ctx, from, "Group doesn't exist.")
	}

	var password string
	if len(args) >= 2 {
		password = args[1]
	}

	if !session.CheckPassword(password) {
		b.logf("Failed to invite %s to group %d (invalid password)", b.senderName(ctx, from), number)
		return b.reply(ctx, from, "Invalid password.")
	}

	if err := b.conf.Invite(ctx, from, number); err != nil {
		b.logf("Failed to invite %s to group %d: %v", b.senderName(ctx, from), number, err)
		return b.replyError(ctx, from, "Failed to send invite", err)
	}

	b.logf("Invited %s to group %d", b.senderName(ctx, from), number)
	return nil
}

func (b *Bot) cmdLeave(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: group number required")
	}

	number, ok := sessionNumber(args[0])
	if !ok {
		return b.reply(ctx, from, "Error: invalid group number")
	}

	// Transport teardown first; the slot is only freed once the transport
	// confirms the session is gone.
	if err := b.conf.Delete(ctx, number); err != nil {
		return b.reply(ctx, from, "Error: invalid group number")
	}

	if err := b.sessions.Remove(number); err != nil {
		b.logf("Group %d was not tracked in the session store: %v", number, err)
	}

	b.logf("Left group %d (%s)", number, b.senderName(ctx, from))
	return b.reply(ctx, from, fmt.Sprintf("Left group %d", number))
}

func (b *Bot) cmdPasswd(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: group number required")
	}

	number, ok := sessionNumber(args[0])
	if !ok {
		return b.reply(ctx, from, "Error: invalid group number")
	}

	session, err := b.sessions.ByNumber(number)
	if err != nil {
		return b.reply(ctx, from, "Error: invalid group number")
	}

	if len(args) < 2 {
		session.ClearPassword()
		b.logf("No password set for group %d by %s", number, b.senderName(ctx, from))
		return b.reply(ctx, from, "No password set")
	}

	if err := session.SetPassword(args[1]); err != nil {
		return b.reply(ctx, from, "Password is too long")
	}

	b.logf("Password for group %d set by %s", number, b.senderName(ctx, from))
	return b.reply(ctx, from, "Password set")
}

func (b *Bot) cmdTitle(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 2 {
		return b.reply(ctx, from, "Error: two arguments are required")
	}

	title, ok := unquote(args[1])
	if !ok {
		return b.reply(ctx, from, "Error: title must be enclosed in quotes")
	}

	number, numOK := sessionNumber(args[0])
	if !numOK {
		return b.reply(ctx, from, "Error: invalid group number")
	}

	if err := b.conf.SetTitle(ctx, number, title); err != nil {
		b.logf("%s failed to set the title %q for group %d: %v", b.senderName(ctx, from), title, number, err)
		return b.replyError(ctx, from, "Failed to set title. This may be caused by an invalid group number or an empty room", err)
	}

	if session, err := b.sessions.ByNumber(number); err == nil {
		session.Title = title
	}

	b.logf("%s set group %d title to %q", b.senderName(ctx, from), number, title)
	return b.reply(ctx, from, "Group title set")
}
