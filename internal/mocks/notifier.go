package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quizzzy/internal/model"
)

type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, notice model.Notice) {
	m.Called(ctx, notice)
}

type Confirmer struct {
	mock.Mock
}

func (m *Confirmer) Confirm(ctx context.Context, prompt string) bool {
	args := m.Called(ctx, prompt)
	return args.Bool(0)
}

type Renderer struct {
	mock.Mock
}

func (m *Renderer) Render(ctx context.Context, frame model.Frame) error {
	args := m.Called(ctx, frame)
	return args.Error(0)
}

type ActivityPublisher struct {
	mock.Mock
}

func (m *ActivityPublisher) Publish(ctx context.Context, activity model.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}
