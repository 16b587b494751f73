package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tether-education/schoolchoice-da/core"
)

func TestAssignmentQueue_CutoffScore(t *testing.T) {
	t.Run("zero capacity is infinite cutoff", func(t *testing.T) {
		q := core.NewAssignmentQueue(0)
		assert.True(t, math.IsInf(q.CutoffScore(), 1))
	})

	t.Run("free slot returns zero", func(t *testing.T) {
		q := core.NewAssignmentQueue(2)
		q.Add(&core.Applicant{ID: "a1"}, 0.5)
		assert.Equal(t, 0.0, q.CutoffScore())
	})

	t.Run("full queue returns max assigned score", func(t *testing.T) {
		q := core.NewAssignmentQueue(2)
		q.Add(&core.Applicant{ID: "a1"}, 0.2)
		q.Add(&core.Applicant{ID: "a2"}, 1.7)
		assert.Equal(t, 1.7, q.CutoffScore())
	})
}

func TestAssignmentQueue_WorstOccupantAndReplace(t *testing.T) {
	q := core.NewAssignmentQueue(2)
	a1 := &core.Applicant{ID: "a1"}
	a2 := &core.Applicant{ID: "a2"}
	q.Add(a1, 0.2)
	q.Add(a2, 1.7)

	worst, err := q.WorstOccupant(1.7)
	require.NoError(t, err)
	assert.Same(t, a2, worst)

	_, err = q.WorstOccupant(9.9)
	require.ErrorIs(t, err, core.ErrOccupantNotFound)

	newcomer := &core.Applicant{ID: "a3"}
	require.NoError(t, q.Replace(a2, newcomer, 0.9))
	assert.Equal(t, []*core.Applicant{a1, newcomer}, q.AssignedApplicants)
	assert.Equal(t, []float64{0.2, 0.9}, q.AssignedScores)
}

func TestAssignmentQueue_CapacityAndReset(t *testing.T) {
	q := core.NewAssignmentQueue(1)
	q.ModifyCapacity(2)
	assert.Equal(t, 3, q.Capacity)
	q.ModifyOverCapacity(1)
	assert.Equal(t, 1, q.OverCapacity)
	q.Add(&core.Applicant{ID: "a1"}, 0.1)

	q.Reset()
	assert.Equal(t, 1, q.Capacity)
	assert.Equal(t, 0, q.OverCapacity)
	assert.Empty(t, q.AssignedApplicants)
	assert.Empty(t, q.AssignedScores)
}
