package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quizzzy/internal/mocks"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/repository"
	"github.com/dtroode/quizzzy/internal/repository/memory"
	"github.com/dtroode/quizzzy/internal/testutil"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

type noticeRecorder struct {
	notices []model.Notice
}

func (r *noticeRecorder) Notify(_ context.Context, n model.Notice) {
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) last() model.Notice {
	if len(r.notices) == 0 {
		return model.Notice{}
	}
	return r.notices[len(r.notices)-1]
}

type testEnv struct {
	store       *memory.KVStore
	users       *repository.Collection[model.User]
	quizzes     *repository.Collection[model.Quiz]
	events      *repository.Collection[model.Event]
	submissions *repository.Collection[model.Submission]
	sessions    *repository.SessionRepository
	notices     *noticeRecorder
	renderer    *mocks.Renderer
	publisher   *mocks.ActivityPublisher
	confirmer   *mocks.Confirmer
	storage     *mocks.Storage

	auth     *Auth
	quiz     *Quiz
	user     *User
	platform *Platform
}

type envOption func(*envConfig)

type envConfig struct {
	seed        bool
	withStorage bool
}

func withoutSeed() envOption {
	return func(c *envConfig) { c.seed = false }
}

func withStorage() envOption {
	return func(c *envConfig) { c.withStorage = true }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{seed: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := memory.NewKVStore()
	env := &testEnv{
		store:       store,
		users:       repository.NewCollection[model.User](store, model.KeyUsers),
		quizzes:     repository.NewCollection[model.Quiz](store, model.KeyQuizzes),
		events:      repository.NewCollection[model.Event](store, model.KeyEvents),
		submissions: repository.NewCollection[model.Submission](store, model.KeySubmissions),
		sessions:    repository.NewSessionRepository(store),
		notices:     &noticeRecorder{},
		renderer:    &mocks.Renderer{},
		publisher:   &mocks.ActivityPublisher{},
		confirmer:   &mocks.Confirmer{},
	}
	env.renderer.On("Render", mock.Anything, mock.Anything).Return(nil).Maybe()
	env.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	log := testutil.MakeNoopLogger()
	now := func() time.Time { return testNow }

	env.auth = NewAuth(env.users, env.sessions, env.notices, env.publisher, log, cfg.seed)
	env.auth.now = now

	env.quiz = NewQuiz(env.quizzes, env.events, env.submissions, env.auth,
		env.notices, env.renderer, env.publisher, log, cfg.seed)
	env.quiz.now = now

	var storage model.Storage
	if cfg.withStorage {
		env.storage = &mocks.Storage{}
		storage = env.storage
	}
	env.user = NewUser(env.auth, env.quiz, env.notices, env.confirmer,
		env.renderer, env.publisher, storage, log)
	env.user.now = now

	env.platform = NewPlatform(env.auth, env.quiz, env.user, env.renderer, log)
	env.platform.now = now

	return env
}

func (e *testEnv) login(t *testing.T, email string) model.User {
	t.Helper()
	user, err := e.auth.Login(context.Background(), email, DemoPassword)
	require.NoError(t, err)
	return user
}

// rendered returns the frames handed to the renderer so far.
func (e *testEnv) rendered() []model.Frame {
	var frames []model.Frame
	for _, call := range e.renderer.Calls {
		if call.Method == "Render" {
			frames = append(frames, call.Arguments.Get(1).(model.Frame))
		}
	}
	return frames
}

func (e *testEnv) lastFrame(t *testing.T) model.Frame {
	t.Helper()
	frames := e.rendered()
	require.NotEmpty(t, frames)
	return frames[len(frames)-1]
}
