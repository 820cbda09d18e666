package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/confbot/internal/domain"
)

type sentReply struct {
	to   domain.Identity
	text string
}

type fakeMessenger struct {
	address           [domain.AddressLength]byte
	replies           []sentReply
	names             map[domain.Identity]string
	friends           int
	online            int
	selfName          string
	selfPresence      domain.Presence
	selfStatusMessage string
}

func (m *fakeMessenger) SendReply(_ context.Context, to domain.Identity, text string) error {
	m.replies = append(m.replies, sentReply{to: to, text: text})
	return nil
}

func (m *fakeMessenger) SelfAddress() [domain.AddressLength]byte {
	return m.address
}

func (m *fakeMessenger) FriendName(_ context.Context, id domain.Identity) string {
	return m.names[id]
}

func (m *fakeMessenger) FriendCount(context.Context) int {
	return m.friends
}

func (m *fakeMessenger) OnlineFriendCount(context.Context) int {
	return m.online
}

func (m *fakeMessenger) SetSelfName(_ context.Context, name string) error {
	m.selfName = name
	return nil
}

func (m *fakeMessenger) SetSelfPresence(_ context.Context, presence domain.Presence) error {
	m.selfPresence = presence
	return nil
}

func (m *fakeMessenger) SetSelfStatusMessage(_ context.Context, text string) error {
	m.selfStatusMessage = text
	return nil
}

func (m *fakeMessenger) lastReply() string {
	if len(m.replies) == 0 {
		return ""
	}
	return m.replies[len(m.replies)-1].text
}

type fakeRoom struct {
	kind     domain.SessionKind
	title    string
	messages []string
}

type invite struct {
	id     domain.Identity
	number int
}

type fakeConference struct {
	nextNumber  int
	rooms       map[int]*fakeRoom
	invites     []invite
	createCalls int
	deleteCalls int
	createErr   error
}

func newFakeConference() *fakeConference {
	return &fakeConference{rooms: map[int]*fakeRoom{}}
}

func (c *fakeConference) Create(_ context.Context, kind domain.SessionKind) (int, error) {
	c.createCalls++
	if c.createErr != nil {
		return 0, c.createErr
	}

	number := c.nextNumber
	c.nextNumber++
	c.rooms[number] = &fakeRoom{kind: kind}
	return number, nil
}

func (c *fakeConference) Delete(_ context.Context, number int) error {
	c.deleteCalls++
	if _, ok := c.rooms[number]; !ok {
		return fmt.Errorf("unknown group number: %d", number)
	}
	delete(c.rooms, number)
	return nil
}

func (c *fakeConference) Send(_ context.Context, number int, text string) error {
	room, ok := c.rooms[number]
	if !ok {
		return fmt.Errorf("unknown group number: %d", number)
	}
	room.messages = append(room.messages, text)
	return nil
}

func (c *fakeConference) Invite(_ context.Context, id domain.Identity, number int) error {
	if _, ok := c.rooms[number]; !ok {
		return fmt.Errorf("unknown group number: %d", number)
	}
	c.invites = append(c.invites, invite{id: id, number: number})
	return nil
}

func (c *fakeConference) SetTitle(_ context.Context, number int, title string) error {
	room, ok := c.rooms[number]
	if !ok {
		return fmt.Errorf("unknown group number: %d", number)
	}
	room.title = title
	return nil
}

func (c *fakeConference) PeerCount(_ context.Context, number int) (int, error) {
	if _, ok := c.rooms[number]; !ok {
		return 0, fmt.Errorf("unknown group number: %d", number)
	}

	peers := 1
	for _, inv := range c.invites {
		if inv.number == number {
			peers++
		}
	}
	return peers, nil
}

func (c *fakeConference) Kind(_ context.Context, number int) (domain.SessionKind, error) {
	room, ok := c.rooms[number]
	if !ok {
		return domain.KindText, fmt.Errorf("unknown group number: %d", number)
	}
	return room.kind, nil
}

func (c *fakeConference) List(context.Context) ([]int, error) {
	numbers := make([]int, 0, len(c.rooms))
	for number := 0; number < c.nextNumber; number++ {
		if _, ok := c.rooms[number]; ok {
			numbers = append(numbers, number)
		}
	}
	return numbers, nil
}

type fakeMasters struct {
	entries  []domain.Identity
	appended []domain.Identity
	addErr   error
}

func (m *fakeMasters) Add(_ context.Context, id domain.Identity) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.entries = append(m.entries, id.Normalized())
	m.appended = append(m.appended, id.Normalized())
	return nil
}

func (m *fakeMasters) Contains(_ context.Context, id domain.Identity) (bool, error) {
	for _, entry := range m.entries {
		if entry.Equal(id) {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakeMasters) List(context.Context) ([]domain.Identity, error) {
	return m.entries, nil
}

type fakeSnapshots struct {
	saves   []domain.Profile
	saveErr error
}

func (s *fakeSnapshots) Save(_ context.Context, profile domain.Profile) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, profile)
	return nil
}

func (s *fakeSnapshots) Load(context.Context) (domain.Profile, error) {
	if len(s.saves) == 0 {
		return domain.Profile{}, domain.ErrSnapshotNotFound
	}
	return s.saves[len(s.saves)-1], nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}
