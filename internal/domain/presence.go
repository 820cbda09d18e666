package domain

import (
	"fmt"
	"strings"
)

// Presence is the bot's own user status as shown to friends.
type Presence int

const (
	PresenceOnline Presence = iota
	PresenceAway
	PresenceBusy
)

func (p Presence) String() string {
	switch p {
	case PresenceAway:
		return "away"
	case PresenceBusy:
		return "busy"
	default:
		return "online"
	}
}

func ParsePresence(raw string) (Presence, error) {
	switch strings.ToLower(raw) {
	case "online":
		return PresenceOnline, nil
	case "away":
		return PresenceAway, nil
	case "busy":
		return PresenceBusy, nil
	}

	return PresenceOnline, fmt.Errorf("%w: %q", ErrInvalidPresence, raw)
}

// Profile is the bot's persisted self state, written to the snapshot store
// after a presence-mutating command.
type Profile struct {
	Name          string
	Presence      Presence
	StatusMessage string
	Address       Identity
}
