package model

import "context"

// EventState is what handling one UI event produced.
type EventState struct {
	Notices []Notice `json:"notices"`
	Frames  []Frame  `json:"frames"`
	Prompts []string `json:"prompts,omitempty"`
}

// ContextManager carries per-event UI state through a request context: the
// notices and frames raised while handling it, and the user's answer to
// confirmation prompts.
type ContextManager interface {
	Notifier
	Confirmer
	Renderer
	NewEventContext(ctx context.Context, confirmed bool) context.Context
	StateFromContext(ctx context.Context) EventState
}
