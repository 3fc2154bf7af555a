package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/testutil"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetRun(t *testing.T) {
	s := openTestStore(t)

	run, err := s.CreateRun("job001,job002", "/tmp/out")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusRunning, run.Status)

	got, err := s.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "job001,job002", got.Jobs)
	assert.Equal(t, "/tmp/out", got.OutDir)
	assert.Nil(t, got.CompletedAt)
}

func TestCompleteRun(t *testing.T) {
	s := openTestStore(t)

	run, err := s.CreateRun("job001,job002", "/tmp/out")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(run.ID, RunStatusCompleted, 4, ""))

	got, err := s.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusCompleted, got.Status)
	assert.Equal(t, 4, got.Pairs)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(got.StartedAt))
}

func TestCompleteRunFailure(t *testing.T) {
	s := openTestStore(t)

	run, err := s.CreateRun("job001,job099", "/tmp/out")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(run.ID, RunStatusFailed, 0, "job099: job directory missing"))

	got, err := s.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Contains(t, got.Error, "job099")
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	first, err := s.CreateRun("job001,job002", "/tmp/a")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := s.CreateRun("job003,job004", "/tmp/b")
	require.NoError(t, err)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
