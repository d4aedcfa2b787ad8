package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
)

var _ model.Renderer = (*Hub)(nil)

// ErrHubStopped is returned by Render once Run has returned.
var ErrHubStopped = errors.New("render hub stopped")

// Hub pushes rendered frames to every connected websocket client. Clients are
// not keyed by user: a store holds a single signed-in profile, so every tab
// shows the same session.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu     sync.RWMutex
	logger *logger.Logger
}

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.mu.Lock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.logger.Debug("Render hub: client registered",
				"remote", c.remote)

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()

			for _, c := range slow {
				h.logger.Warn("Render hub: client send buffer full, dropping client",
					"remote", c.remote)
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Debug("Render hub: client unregistered",
			"remote", c.remote)
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Render broadcasts the frame to all clients.
func (h *Hub) Render(ctx context.Context, frame model.Frame) error {
	return h.send(ctx, frameMessage(frame))
}

// Notify broadcasts a notice to all clients.
func (h *Hub) Notify(ctx context.Context, notice model.Notice) {
	if err := h.send(ctx, noticeMessage(notice)); err != nil {
		h.logger.Warn("Render hub: failed to broadcast notice",
			"error", err.Error())
	}
}

func (h *Hub) send(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", msg.Type, err)
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
