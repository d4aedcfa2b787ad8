package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quizzzy/internal/mocks"
	"github.com/dtroode/quizzzy/internal/model"
)

func TestManager_CollectsEventState(t *testing.T) {
	m := NewManager(nil)
	ctx := m.NewEventContext(stdctx.Background(), false)

	notice := model.Notice{Level: model.NoticeSuccess, Message: "saved"}
	frame := model.Frame{View: model.ViewDashboard, Slot: model.SlotDashboard}

	m.Notify(ctx, notice)
	assert.NoError(t, m.Render(ctx, frame))

	state := m.StateFromContext(ctx)
	assert.Equal(t, []model.Notice{notice}, state.Notices)
	assert.Equal(t, []model.Frame{frame}, state.Frames)
	assert.Nil(t, state.Prompts)
}

func TestManager_Confirm(t *testing.T) {
	tests := []struct {
		name      string
		confirmed bool
	}{
		{name: "accepted", confirmed: true},
		{name: "declined", confirmed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil)
			ctx := m.NewEventContext(stdctx.Background(), tt.confirmed)

			assert.Equal(t, tt.confirmed, m.Confirm(ctx, "Are you sure?"))
			assert.Equal(t, []string{"Are you sure?"}, m.StateFromContext(ctx).Prompts)
		})
	}
}

func TestManager_NoEvent(t *testing.T) {
	m := NewManager(nil)
	ctx := stdctx.Background()

	assert.False(t, m.Confirm(ctx, "Are you sure?"))
	m.Notify(ctx, model.Notice{Message: "lost"})
	assert.NoError(t, m.Render(ctx, model.Frame{}))

	state := m.StateFromContext(ctx)
	assert.Empty(t, state.Notices)
	assert.NotNil(t, state.Notices)
	assert.Empty(t, state.Frames)
}

func TestManager_EventsAreIsolated(t *testing.T) {
	m := NewManager(nil)
	first := m.NewEventContext(stdctx.Background(), false)
	second := m.NewEventContext(stdctx.Background(), false)

	m.Notify(first, model.Notice{Message: "first"})

	assert.Len(t, m.StateFromContext(first).Notices, 1)
	assert.Empty(t, m.StateFromContext(second).Notices)
}

func TestManager_Broadcast(t *testing.T) {
	broadcast := &mocks.Notifier{}
	notice := model.Notice{Level: model.NoticeInfo, Message: "hello"}
	broadcast.On("Notify", mock.Anything, notice).Once()

	m := NewManager(broadcast)
	m.Notify(m.NewEventContext(stdctx.Background(), false), notice)

	broadcast.AssertExpectations(t)
}
