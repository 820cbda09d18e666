package application

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/confbot/internal/domain"
)

func (b *Bot) cmdHelp(ctx context.Context, from domain.Identity, args []string) error {
	lines := []string{
		"info : Print current status and list active group chats",
		"id : Print the bot's address",
		"invite : Request an invite to the default group chat",
		"invite <n> <p> : Request an invite to group chat n (with password p if it has one)",
		"group <type> <pass> : Create a new group chat. Type defaults to text; use audio for a voice group. Pass is optional.",
	}

	for _, line := range lines {
		if err := b.reply(ctx, from, line); err != nil {
			return err
		}
	}

	if b.isMaster(ctx, from) {
		return b.reply(ctx, from, "For a list of master commands see the commands document")
	}

	return nil
}

func (b *Bot) cmdID(ctx context.Context, from domain.Identity, args []string) error {
	address := b.messenger.SelfAddress()
	return b.reply(ctx, from, strings.ToUpper(hex.EncodeToString(address[:])))
}

func (b *Bot) cmdInfo(ctx context.Context, from domain.Identity, args []string) error {
	uptime := b.clock.Now().Sub(b.startedAt)
	if err := b.reply(ctx, from, fmt.Sprintf("Uptime: %s", uptimeString(uptime))); err != nil {
		return err
	}

	friends := b.messenger.FriendCount(ctx)
	online := b.messenger.OnlineFriendCount(ctx)
	if err := b.reply(ctx, from, fmt.Sprintf("Friends: %d (%d online)", friends, online)); err != nil {
		return err
	}

	purgeDays := int64(b.purgeLimit / (domain.SecondsPerDay * time.Second))
	if err := b.reply(ctx, from, fmt.Sprintf("Inactive friends are purged after %d days", purgeDays)); err != nil {
		return err
	}

	numbers, err := b.conf.List(ctx)
	if err != nil {
		return b.replyError(ctx, from, "Failed to list group chats", err)
	}

	if len(numbers) == 0 {
		return b.reply(ctx, from, "No active group chats")
	}

	for _, number := range numbers {
		peers, err := b.conf.PeerCount(ctx, number)
		if err != nil {
			continue
		}

		kind, err := b.conf.Kind(ctx, number)
		if err != nil {
			kind = domain.KindText
		}

		title := "untitled"
		if session, err := b.sessions.ByNumber(number); err == nil {
			title = session.DisplayTitle()
		}

		line := fmt.Sprintf("Group %d | %s | peers: %d | title: %s", number, kind, peers, title)
		if err := b.reply(ctx, from, line); err != nil {
			return err
		}
	}

	return nil
}

func (b *Bot) cmdMaster(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: address required")
	}

	id := domain.Identity(args[0])
	if !id.Valid() {
		return b.reply(ctx, from, "Error: invalid address")
	}

	if err := b.masters.Add(ctx, id); err != nil {
		return b.replyError(ctx, from, "Error: failed to update the master list", err)
	}

	b.logf("%s added master: %s", b.senderName(ctx, from), id)
	return b.reply(ctx, from, "ID added to master list")
}

func (b *Bot) cmdName(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: name required")
	}

	name := args[0]
	if quoted, ok := unquote(name); ok {
		name = quoted
	}
	if len(name) > domain.MaxNameLength {
		name = name[:domain.MaxNameLength]
	}

	if err := b.messenger.SetSelfName(ctx, name); err != nil {
		return b.replyError(ctx, from, "Failed to set name", err)
	}
	b.profile.Name = name

	b.logf("%s set name to %s", b.senderName(ctx, from), name)
	b.saveSnapshot(ctx)
	return nil
}

func (b *Bot) cmdPurge(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: number > 0 required")
	}

	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		return b.reply(ctx, from, "Error: number > 0 required")
	}

	b.purgeLimit = time.Duration(days) * domain.SecondsPerDay * time.Second

	b.logf("Purge time set to %d days by %s", days, b.senderName(ctx, from))
	return b.reply(ctx, from, fmt.Sprintf("Purge time set to %d days", days))
}

func (b *Bot) cmdStatus(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: status required")
	}

	presence, err := domain.ParsePresence(args[0])
	if err != nil {
		return b.reply(ctx, from, "Invalid status. Valid statuses are: online, busy and away.")
	}

	if err := b.messenger.SetSelfPresence(ctx, presence); err != nil {
		return b.replyError(ctx, from, "Failed to set status", err)
	}
	b.profile.Presence = presence

	b.logf("%s set status to %s", b.senderName(ctx, from), presence)
	b.saveSnapshot(ctx)
	return nil
}

func (b *Bot) cmdStatusMessage(ctx context.Context, from domain.Identity, args []string) error {
	if !b.isMaster(ctx, from) {
		return b.reply(ctx, from, notAuthorizedReply)
	}

	if len(args) < 1 {
		return b.reply(ctx, from, "Error: message required")
	}

	message, ok := unquote(args[0])
	if !ok {
		return b.reply(ctx, from, "Error: message must be enclosed in quotes")
	}

	if err := b.messenger.SetSelfStatusMessage(ctx, message); err != nil {
		return b.replyError(ctx, from, "Failed to set status message", err)
	}
	b.profile.StatusMessage = message

	b.logf("%s set status message to %q", b.senderName(ctx, from), message)
	b.saveSnapshot(ctx)
	return nil
}

func (b *Bot) saveSnapshot(ctx context.Context) {
	if err := b.snapshots.Save(ctx, b.profile); err != nil {
		b.logf("Failed to save profile snapshot: %v", err)
	}
}

func uptimeString(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}

	days := seconds / domain.SecondsPerDay
	hours := (seconds % domain.SecondsPerDay) / 3600
	minutes := (seconds % 3600) / 60

	return fmt.Sprintf("%d days, %d hours, %d minutes", days, hours, minutes)
}
