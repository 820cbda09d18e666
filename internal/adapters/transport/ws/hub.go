// Package ws is a local websocket transport for the bot. Friends connect to
// the hub with their hex identity, the hub serializes every inbound frame
// into a single dispatch queue, and group chats live in an in-memory
// conference table. It stands in for the real peer-to-peer transport, which
// is outside this module.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bnema/confbot/internal/domain"
	"github.com/bnema/confbot/internal/ports"
)

var (
	errUnknownConference = errors.New("unknown group number")
	errSendBufferFull    = errors.New("client send buffer is full")
)

// Handler consumes one inbound command. The hub's Run loop calls it from a
// single goroutine, never concurrently.
type Handler func(ctx context.Context, from domain.Identity, text string) error

type frame struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Name  string `json:"name,omitempty"`
	Group int    `json:"group,omitempty"`
}

type inbound struct {
	from domain.Identity
	text string
}

type conference struct {
	number  int
	kind    domain.SessionKind
	title   string
	members map[domain.Identity]struct{}
}

type Hub struct {
	address  [domain.AddressLength]byte
	upgrader websocket.Upgrader
	queue    chan inbound

	mu          sync.Mutex
	clients     map[domain.Identity]*client
	friends     map[domain.Identity]string
	conferences map[int]*conference
	nextNumber  int

	selfName          string
	selfPresence      domain.Presence
	selfStatusMessage string
}

var (
	_ ports.Messenger  = (*Hub)(nil)
	_ ports.Conference = (*Hub)(nil)
)

func NewHub(address [domain.AddressLength]byte) *Hub {
	return &Hub{
		address:     address,
		upgrader:    websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		queue:       make(chan inbound, 64),
		clients:     map[domain.Identity]*client{},
		friends:     map[domain.Identity]string{},
		conferences: map[int]*conference{},
	}
}

// Run drains the inbound queue until the context is cancelled. Each frame is
// fully dispatched before the next one is read, which is the serialization
// the command core requires.
func (h *Hub) Run(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-h.queue:
			_ = handler(ctx, msg.from, msg.text)
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := domain.Identity(r.URL.Query().Get("identity"))
	if !id.Valid() {
		http.Error(w, "missing or invalid identity", http.StatusBadRequest)
		return
	}
	id = id.Normalized()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := newClient(id, conn)
	h.register(c)

	go c.writeLoop()
	c.readLoop(h)
	h.unregister(c)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[c.id]; ok {
		old.close()
	}
	h.clients[c.id] = c
	if _, ok := h.friends[c.id]; !ok {
		h.friends[c.id] = ""
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[c.id]; ok && current == c {
		delete(h.clients, c.id)
	}
	c.close()
}

func (h *Hub) receive(from domain.Identity, text string) {
	h.queue <- inbound{from: from, text: text}
}

func (h *Hub) setFriendName(id domain.Identity, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.friends[id] = name
}

// Messenger

func (h *Hub) SendReply(ctx context.Context, to domain.Identity, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[to.Normalized()]
	if !ok {
		return fmt.Errorf("friend %s is not connected", to)
	}

	return c.enqueue(frame{Type: "reply", Text: text})
}

func (h *Hub) SelfAddress() [domain.AddressLength]byte {
	return h.address
}

func (h *Hub) FriendName(ctx context.Context, id domain.Identity) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.friends[id.Normalized()]
}

func (h *Hub) FriendCount(ctx context.Context) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.friends)
}

func (h *Hub) OnlineFriendCount(ctx context.Context) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) SetSelfName(ctx context.Context, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selfName = name
	return nil
}

func (h *Hub) SetSelfPresence(ctx context.Context, presence domain.Presence) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selfPresence = presence
	return nil
}

func (h *Hub) SetSelfStatusMessage(ctx context.Context, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selfStatusMessage = text
	return nil
}

// Conference

func (h *Hub) Create(ctx context.Context, kind domain.SessionKind) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	number := h.nextNumber
	h.nextNumber++
	h.conferences[number] = &conference{
		number:  number,
		kind:    kind,
		members: map[domain.Identity]struct{}{},
	}

	return number, nil
}

func (h *Hub) Delete(ctx context.Context, number int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conferences[number]; !ok {
		return fmt.Errorf("%w: %d", errUnknownConference, number)
	}

	delete(h.conferences, number)
	return nil
}

func (h *Hub) Send(ctx context.Context, number int, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conf, ok := h.conferences[number]
	if !ok {
		return fmt.Errorf("%w: %d", errUnknownConference, number)
	}

	for member := range conf.members {
		if c, online := h.clients[member]; online {
			_ = c.enqueue(frame{Type: "group", Group: number, Text: text})
		}
	}

	return nil
}

func (h *Hub) Invite(ctx context.Context, id domain.Identity, number int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conf, ok := h.conferences[number]
	if !ok {
		return fmt.Errorf("%w: %d", errUnknownConference, number)
	}

	id = id.Normalized()
	conf.members[id] = struct{}{}

	if c, online := h.clients[id]; online {
		return c.enqueue(frame{Type: "invite", Group: number})
	}

	return nil
}

func (h *Hub) SetTitle(ctx context.Context, number int, title string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conf, ok := h.conferences[number]
	if !ok {
		return fmt.Errorf("%w: %d", errUnknownConference, number)
	}

	conf.title = title
	return nil
}

func (h *Hub) PeerCount(ctx context.Context, number int) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conf, ok := h.conferences[number]
	if !ok {
		return 0, fmt.Errorf("%w: %d", errUnknownConference, number)
	}

	// The bot itself always counts as a peer.
	return len(conf.members) + 1, nil
}

func (h *Hub) Kind(ctx context.Context, number int) (domain.SessionKind, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conf, ok := h.conferences[number]
	if !ok {
		return domain.KindText, fmt.Errorf("%w: %d", errUnknownConference, number)
	}

	return conf.kind, nil
}

func (h *Hub) List(ctx context.Context) ([]int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	numbers := make([]int, 0, len(h.conferences))
	for number := range h.conferences {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	return numbers, nil
}
