package context

import (
	"context"
	"sync"

	"github.com/dtroode/quizzzy/internal/model"
)

var _ model.ContextManager = (*Manager)(nil)

type eventKey struct{}

// event collects what one UI event produced.
type event struct {
	mu        sync.Mutex
	confirmed bool
	notices   []model.Notice
	frames    []model.Frame
	prompts   []string
}

// Manager keeps notices, frames and confirmation answers on the request
// context so the HTTP layer can return them with the response.
type Manager struct {
	broadcast model.Notifier
}

// NewManager creates a Manager. Notices are also forwarded to broadcast when it
// is not nil.
func NewManager(broadcast model.Notifier) *Manager {
	return &Manager{broadcast: broadcast}
}

// NewEventContext starts a new event. confirmed is the user's answer to any
// confirmation prompt raised while handling it.
func (m *Manager) NewEventContext(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, eventKey{}, &event{confirmed: confirmed})
}

func eventFromContext(ctx context.Context) *event {
	ev, _ := ctx.Value(eventKey{}).(*event)
	return ev
}

// Notify records the notice on the current event.
func (m *Manager) Notify(ctx context.Context, notice model.Notice) {
	if ev := eventFromContext(ctx); ev != nil {
		ev.mu.Lock()
		ev.notices = append(ev.notices, notice)
		ev.mu.Unlock()
	}
	if m.broadcast != nil {
		m.broadcast.Notify(ctx, notice)
	}
}

// Confirm records the prompt and returns the answer given with the event.
// Outside of an event nothing is confirmed.
func (m *Manager) Confirm(ctx context.Context, prompt string) bool {
	ev := eventFromContext(ctx)
	if ev == nil {
		return false
	}

	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.prompts = append(ev.prompts, prompt)
	return ev.confirmed
}

// Render records the frame on the current event.
func (m *Manager) Render(ctx context.Context, frame model.Frame) error {
	if ev := eventFromContext(ctx); ev != nil {
		ev.mu.Lock()
		ev.frames = append(ev.frames, frame)
		ev.mu.Unlock()
	}
	return nil
}

// StateFromContext returns a copy of what the current event produced so far.
func (m *Manager) StateFromContext(ctx context.Context) model.EventState {
	state := model.EventState{
		Notices: []model.Notice{},
		Frames:  []model.Frame{},
	}

	ev := eventFromContext(ctx)
	if ev == nil {
		return state
	}

	ev.mu.Lock()
	defer ev.mu.Unlock()
	state.Notices = append(state.Notices, ev.notices...)
	state.Frames = append(state.Frames, ev.frames...)
	if len(ev.prompts) > 0 {
		state.Prompts = append([]string(nil), ev.prompts...)
	}
	return state
}
