package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/repository/memory"
)

type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) ([]byte, error) { return nil, s.err }
func (s failingStore) Set(context.Context, string, []byte) error   { return s.err }
func (s failingStore) Delete(context.Context, string) error        { return s.err }

func TestCollection_All(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		stored  *string
		want    []model.Quiz
		wantErr error
	}{
		{
			name:    "missing key",
			stored:  nil,
			wantErr: model.ErrNotFound,
		},
		{
			name:   "empty collection",
			stored: strPtr(`[]`),
			want:   []model.Quiz{},
		},
		{
			name:   "stored order is preserved",
			stored: strPtr(`[{"id":"quiz-2"},{"id":"quiz-1"}]`),
			want:   []model.Quiz{{ID: "quiz-2"}, {ID: "quiz-1"}},
		},
		{
			name:    "malformed document",
			stored:  strPtr(`{not json`),
			wantErr: model.ErrCorrupt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewKVStore()
			if tt.stored != nil {
				require.NoError(t, store.Set(ctx, model.KeyQuizzes, []byte(*tt.stored)))
			}
			quizzes := NewCollection[model.Quiz](store, model.KeyQuizzes)

			got, err := quizzes.All(ctx)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollection_Upsert(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	users := NewCollection[model.User](store, model.KeyUsers)

	require.NoError(t, users.Upsert(ctx, model.User{ID: "user-1", FirstName: "John"}))
	require.NoError(t, users.Upsert(ctx, model.User{ID: "user-2", FirstName: "Sarah"}))
	require.NoError(t, users.Upsert(ctx, model.User{ID: "user-1", FirstName: "Johnny"}))

	all, err := users.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Johnny", all[0].FirstName)
	assert.Equal(t, "Sarah", all[1].FirstName)
}

func TestCollection_Prepend(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	quizzes := NewCollection[model.Quiz](store, model.KeyQuizzes)

	require.NoError(t, quizzes.ReplaceAll(ctx, []model.Quiz{{ID: "quiz-1"}}))
	require.NoError(t, quizzes.Prepend(ctx, model.Quiz{ID: "quiz-2"}))

	all, err := quizzes.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"quiz-2", "quiz-1"}, []string{all[0].ID, all[1].ID})
}

func TestCollection_GetAndList(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	quizzes := NewCollection[model.Quiz](store, model.KeyQuizzes)

	t.Run("missing collection reads as empty", func(t *testing.T) {
		_, err := quizzes.Get(ctx, "quiz-1")
		assert.ErrorIs(t, err, model.ErrNotFound)

		list, err := quizzes.List(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	require.NoError(t, quizzes.ReplaceAll(ctx, []model.Quiz{
		{ID: "quiz-1", IsPublic: true},
		{ID: "quiz-2", IsPublic: false},
		{ID: "quiz-3", IsPublic: true},
	}))

	t.Run("get by id", func(t *testing.T) {
		quiz, err := quizzes.Get(ctx, "quiz-2")
		require.NoError(t, err)
		assert.Equal(t, "quiz-2", quiz.ID)
	})

	t.Run("list with predicate", func(t *testing.T) {
		list, err := quizzes.List(ctx, func(q model.Quiz) bool { return q.IsPublic })
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "quiz-1", list[0].ID)
		assert.Equal(t, "quiz-3", list[1].ID)
	})
}

func TestCollection_CorruptBlocksWrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Set(ctx, model.KeyUsers, []byte(`"nope"`)))
	users := NewCollection[model.User](store, model.KeyUsers)

	err := users.Upsert(ctx, model.User{ID: "user-1"})
	assert.ErrorIs(t, err, model.ErrCorrupt)

	raw, err := store.Get(ctx, model.KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, `"nope"`, string(raw))
}

func TestCollection_ReplaceAllNil(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	events := NewCollection[model.Event](store, model.KeyEvents)

	require.NoError(t, events.ReplaceAll(ctx, nil))

	raw, err := store.Get(ctx, model.KeyEvents)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}

func TestCollection_StoreError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("backend down")
	quizzes := NewCollection[model.Quiz](failingStore{err: boom}, model.KeyQuizzes)

	_, err := quizzes.All(ctx)
	assert.ErrorIs(t, err, boom)

	err = quizzes.ReplaceAll(ctx, []model.Quiz{{ID: "quiz-1"}})
	assert.ErrorIs(t, err, boom)
}

// Two handles over one store read-modify-write independently; the later write wins.
func TestCollection_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	first := NewCollection[model.User](store, model.KeyUsers)
	second := NewCollection[model.User](store, model.KeyUsers)

	require.NoError(t, first.ReplaceAll(ctx, []model.User{{ID: "user-1"}}))

	snapshot, err := first.All(ctx)
	require.NoError(t, err)

	require.NoError(t, second.Upsert(ctx, model.User{ID: "user-2"}))
	require.NoError(t, first.ReplaceAll(ctx, append(snapshot, model.User{ID: "user-3"})))

	all, err := second.All(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, u := range all {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"user-1", "user-3"}, ids)
}

func strPtr(s string) *string {
	return &s
}
