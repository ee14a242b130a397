package task

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/artem13815/matcher/pkg/matching"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore(time.Minute, zap.NewNop())

	created := s.Create()
	assert.Equal(t, StatusQueued, created.Status)
	assert.Zero(t, created.Progress)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Nil(t, got.Result)
	assert.Nil(t, got.Error)

	s.MarkProcessing(created.ID)
	got, _ = s.Get(created.ID)
	assert.Equal(t, StatusProcessing, got.Status)

	s.SetProgress(created.ID, 40)
	got, _ = s.Get(created.ID)
	assert.Equal(t, 40, got.Progress)

	// прогресс не откатывается назад
	s.SetProgress(created.ID, 10)
	got, _ = s.Get(created.ID)
	assert.Equal(t, 40, got.Progress)

	s.Complete(created.ID, []matching.Result{{MatchScore: 90}})
	got, _ = s.Get(created.ID)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	require.Len(t, got.Result, 1)
	assert.Nil(t, got.Error)
}

func TestStoreGetUnknown(t *testing.T) {
	s := NewStore(time.Minute, zap.NewNop())
	_, err := s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreTerminalIsImmutable(t *testing.T) {
	s := NewStore(time.Minute, zap.NewNop())
	created := s.Create()

	s.Fail(created.ID, "boom")
	got, _ := s.Get(created.ID)
	require.Equal(t, StatusFailed, got.Status)
	require.NotNil(t, got.Error)
	assert.Equal(t, "boom", *got.Error)

	// терминальное состояние не перезаписывается
	s.Complete(created.ID, []matching.Result{{MatchScore: 99}})
	s.SetProgress(created.ID, 100)
	s.Fail(created.ID, "other")

	got, _ = s.Get(created.ID)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Nil(t, got.Result)
	assert.Equal(t, "boom", *got.Error)
}

func TestStoreCompleteAtomic(t *testing.T) {
	s := NewStore(time.Minute, zap.NewNop())
	created := s.Create()
	s.MarkProcessing(created.ID)

	s.Complete(created.ID, nil)
	got, _ := s.Get(created.ID)
	// никогда: completed с result=nil
	assert.Equal(t, StatusCompleted, got.Status)
	assert.NotNil(t, got.Result)
	assert.Empty(t, got.Result)
}

func TestStoreSnapshotIsolated(t *testing.T) {
	s := NewStore(time.Minute, zap.NewNop())
	created := s.Create()
	s.Complete(created.ID, []matching.Result{{MatchScore: 70}})

	got, _ := s.Get(created.ID)
	got.Result[0].MatchScore = 1

	again, _ := s.Get(created.ID)
	assert.Equal(t, 70, again.Result[0].MatchScore)
}

func TestStoreSweepRemovesExpiredTerminal(t *testing.T) {
	s := NewStore(time.Minute, zap.NewNop())

	finished := s.Create()
	s.Fail(finished.ID, "old failure")
	running := s.Create()
	s.MarkProcessing(running.ID)

	// сдвигаем часы за пределы retention
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	s.sweep()

	_, err := s.Get(finished.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	// незавершённые задачи не вычищаются
	_, err = s.Get(running.ID)
	assert.NoError(t, err)
}
