package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quizzzy/internal/model"
)

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []amqp.Publishing
	routingKey string
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.routingKey = key
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNewPublisherWithChannel(t *testing.T) {
	t.Run("queue is declared", func(t *testing.T) {
		ch := &fakeChannel{}
		p, err := NewPublisherWithChannel(ch, "quizzzy.activity")
		require.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, []string{"quizzzy.activity"}, ch.declared)
	})

	t.Run("declare error", func(t *testing.T) {
		ch := &fakeChannel{declareErr: errors.New("access refused")}
		p, err := NewPublisherWithChannel(ch, "quizzzy.activity")
		assert.Nil(t, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to declare queue")
	})
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	occurred := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("activity is sent as json", func(t *testing.T) {
		ch := &fakeChannel{}
		p, err := NewPublisherWithChannel(ch, "quizzzy.activity")
		require.NoError(t, err)

		activity := model.Activity{
			Type:       model.ActivityQuizCreated,
			ActorID:    "user-1",
			SubjectID:  "quiz-9",
			Attributes: map[string]string{"title": "Cells"},
			OccurredAt: occurred,
		}
		require.NoError(t, p.Publish(ctx, activity))

		require.Len(t, ch.published, 1)
		msg := ch.published[0]
		assert.Equal(t, "quizzzy.activity", ch.routingKey)
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, "quiz.created", msg.Type)
		assert.Equal(t, occurred, msg.Timestamp)

		var decoded model.Activity
		require.NoError(t, json.Unmarshal(msg.Body, &decoded))
		assert.Equal(t, activity, decoded)
	})

	t.Run("publish error", func(t *testing.T) {
		ch := &fakeChannel{publishErr: errors.New("channel closed")}
		p, err := NewPublisherWithChannel(ch, "q")
		require.NoError(t, err)

		err = p.Publish(ctx, model.Activity{Type: model.ActivitySignedUp})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish activity")
	})
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisherWithChannel(ch, "q")
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), model.Activity{Type: model.ActivitySignedUp}))
}
