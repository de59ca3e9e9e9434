package stats

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_FingerprintChangeIsMiss(t *testing.T) {
	m := NewMemo(8)
	exam := uuid.New()
	calls := 0
	compute := func() (Snapshot, error) {
		calls++
		return Snapshot{Stats: Statistics{TotalStudents: calls}}, nil
	}

	snap, hit, err := m.GetOrCompute(exam, "v1", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, snap.Stats.TotalStudents)

	snap, hit, err = m.GetOrCompute(exam, "v1", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, snap.Stats.TotalStudents)

	snap, hit, err = m.GetOrCompute(exam, "v2", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, snap.Stats.TotalStudents)
	assert.Equal(t, 2, calls)
}

func TestMemo_FailedComputeIsNotStored(t *testing.T) {
	m := NewMemo(8)
	exam := uuid.New()
	boom := errors.New("boom")

	_, _, err := m.GetOrCompute(exam, "v1", func() (Snapshot, error) { return Snapshot{}, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Len())

	snap, hit, err := m.GetOrCompute(exam, "v1", func() (Snapshot, error) {
		return Snapshot{Stats: Statistics{Enrolled: 2}}, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, snap.Stats.Enrolled)
}

func TestMemo_KeyedPerExam(t *testing.T) {
	m := NewMemo(8)
	a, b := uuid.New(), uuid.New()
	m.Put(a, "fp", Snapshot{Stats: Statistics{Enrolled: 1}})

	_, ok := m.Get(b, "fp")
	assert.False(t, ok)

	got, ok := m.Get(a, "fp")
	assert.True(t, ok)
	assert.Equal(t, 1, got.Stats.Enrolled)
}

func TestMemo_EvictsOldest(t *testing.T) {
	m := NewMemo(2)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	m.Put(a, "x", Snapshot{})
	m.Put(b, "x", Snapshot{})
	m.Put(c, "x", Snapshot{})

	assert.Equal(t, 2, m.Len())
	_, ok := m.Get(a, "x")
	assert.False(t, ok)
}

func TestMemo_ConcurrentAccess(t *testing.T) {
	m := NewMemo(16)
	exam := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = m.GetOrCompute(exam, "fp", func() (Snapshot, error) { return Snapshot{}, nil })
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, m.Len())
}
