package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"github.com/Harshitk-cp/brainbase/internal/module"
	"github.com/Harshitk-cp/brainbase/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSnapshotStore mocks the SnapshotStore interface.
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Latest(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func newLoaderEnv(t *testing.T) *testEnv {
	env := newTestEnv(t)
	env.register(t, "bounce", &module.Funcs{Handlers: map[string]domain.Handler{"onCollision": env.handler("bounce")}})
	return env
}

func TestLoaderService_Load(t *testing.T) {
	env := newLoaderEnv(t)
	ms := new(MockSnapshotStore)
	ms.On("Latest", mock.Anything).Return(snapshotOf(map[string][]domain.UseSnapshot{
		"ball": {use("u1", "bounce", "ball")},
	}, "ball"), nil).Once()

	s := NewLoaderService(ms, env.db, zap.NewNop())
	ids, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ball"}, ids)

	_, ok := env.db.GetBrain("ball")
	assert.True(t, ok)
	ms.AssertExpectations(t)
}

func TestLoaderService_LoadStoreError(t *testing.T) {
	env := newLoaderEnv(t)
	ms := new(MockSnapshotStore)
	ms.On("Latest", mock.Anything).Return(nil, store.ErrNotFound)

	s := NewLoaderService(ms, env.db, zap.NewNop())
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoaderService_LoadResetError(t *testing.T) {
	env := newLoaderEnv(t)
	ms := new(MockSnapshotStore)
	ms.On("Latest", mock.Anything).Return(&domain.Snapshot{BrainIDs: []string{"orphan"}}, nil)

	s := NewLoaderService(ms, env.db, zap.NewNop())
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestLoaderService_PollSkipsUnchanged(t *testing.T) {
	env := newLoaderEnv(t)
	snap := snapshotOf(map[string][]domain.UseSnapshot{"ball": {use("u1", "bounce", "ball")}}, "ball")

	var calls atomic.Int32
	ms := new(MockSnapshotStore)
	ms.On("Latest", mock.Anything).Return(snap, nil).Run(func(mock.Arguments) { calls.Add(1) })

	s := NewLoaderService(ms, env.db, zap.NewNop())
	s.SetInterval(10 * time.Millisecond)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.Eventually(t, func() bool {
		return calls.Load() >= 4
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int64(1), env.db.Stats().Resets)
}

func TestLoaderService_PollPicksUpChange(t *testing.T) {
	env := newLoaderEnv(t)
	ms := new(MockSnapshotStore)
	ms.On("Latest", mock.Anything).Return(snapshotOf(map[string][]domain.UseSnapshot{
		"next": {use("u1", "bounce", "next")},
	}, "next"), nil)

	s := NewLoaderService(ms, env.db, zap.NewNop())
	s.SetInterval(10 * time.Millisecond)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		_, ok := env.db.GetBrain("next")
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestLoaderService_PollKeepsBrainsOnError(t *testing.T) {
	env := newLoaderEnv(t)
	var failures atomic.Int32
	ms := new(MockSnapshotStore)
	ms.On("Latest", mock.Anything).Return(snapshotOf(map[string][]domain.UseSnapshot{
		"ball": {use("u1", "bounce", "ball")},
	}, "ball"), nil).Once()
	ms.On("Latest", mock.Anything).Return(nil, errors.New("connection refused")).
		Run(func(mock.Arguments) { failures.Add(1) })

	s := NewLoaderService(ms, env.db, zap.NewNop())
	s.SetInterval(10 * time.Millisecond)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.Eventually(t, func() bool {
		return failures.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	_, ok := env.db.GetBrain("ball")
	assert.True(t, ok)
}

func TestLoaderService_WatchFile(t *testing.T) {
	env := newLoaderEnv(t)
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"brains": [], "brainIds": []}`), 0o644))

	fs, err := store.NewFileSnapshotStore(path)
	require.NoError(t, err)

	s := NewLoaderService(fs, env.db, zap.NewNop())
	s.SetWatchPath(path)
	s.SetDebounce(10 * time.Millisecond)
	_, err = s.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()

	updated := `{"brains": [{"behaviorUses": [{"id": "u1", "behaviorUri": "bounce", "brainId": "ball"}]}], "brainIds": ["ball"]}`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		_, ok := env.db.GetBrain("ball")
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"ball"}, env.db.CollisionBrainIDs())
}
