//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/repository"
	repo "github.com/dtroode/quizzzy/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "quizzzy_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/quizzzy_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestKVRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	kv := repo.NewKVRepository(conn)

	t.Run("kv", func(t *testing.T) {
		_, err := kv.Get(ctx, "missing")
		require.ErrorIs(t, err, model.ErrNotFound)

		require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
		require.NoError(t, kv.Set(ctx, "k", []byte("v2")))

		got, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("v2"), got)

		require.NoError(t, kv.Delete(ctx, "k"))
		_, err = kv.Get(ctx, "k")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("collection", func(t *testing.T) {
		quizzes := repository.NewCollection[model.Quiz](kv, model.KeyQuizzes)
		require.NoError(t, quizzes.ReplaceAll(ctx, []model.Quiz{{ID: "quiz-1", Title: "A"}}))
		require.NoError(t, quizzes.Prepend(ctx, model.Quiz{ID: "quiz-2", Title: "B"}))

		all, err := quizzes.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "quiz-2", all[0].ID)
	})

	t.Run("session", func(t *testing.T) {
		sessions := repository.NewSessionRepository(kv)
		require.NoError(t, sessions.Save(ctx, model.User{ID: "user-1", Email: "a@b.c"}))

		user, loggedIn, err := sessions.Load(ctx)
		require.NoError(t, err)
		require.True(t, loggedIn)
		require.Equal(t, "user-1", user.ID)

		require.NoError(t, sessions.Clear(ctx))
		_, _, err = sessions.Load(ctx)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
