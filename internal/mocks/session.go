package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/quizzzy/internal/model"
)

type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Load(ctx context.Context) (model.User, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.User), args.Bool(1), args.Error(2)
}

func (m *SessionStore) Save(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *SessionStore) Refresh(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *SessionStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
