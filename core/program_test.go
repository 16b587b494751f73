package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tether-education/schoolchoice-da/core"
)

func newScoredApplicant(id string, programID, quotaID string, priority int, lottery float64) *core.Applicant {
	pq := core.ProgramQuota{ProgramID: programID, QuotaID: quotaID}
	return &core.Applicant{
		ID:                id,
		Postulation:       []string{programID},
		QuotaAtPosition:   []string{quotaID},
		Priority:          map[core.ProgramQuota]int{pq: priority},
		Lottery:           map[core.ProgramQuota]float64{pq: lottery},
		SpecialAssignment: 0,
	}
}

func TestProgram_ScoreAndQueueFor(t *testing.T) {
	p := core.NewProgram("P1", "Q0", "I1", 1, 1, map[int]int{1: 2})

	q, err := p.QueueFor(0)
	require.NoError(t, err)
	assert.Same(t, p.Regular, q)

	q, err = p.QueueFor(1)
	require.NoError(t, err)
	assert.Same(t, p.Special[1], q)

	_, err = p.QueueFor(2)
	require.ErrorIs(t, err, core.ErrInvalidAssignmentType)

	a := newScoredApplicant("a1", "P1", "Q0", 1, 0.25)
	score, err := p.Score(a)
	require.NoError(t, err)
	assert.Equal(t, 1.25, score)

	missing := &core.Applicant{ID: "a2"}
	_, err = p.Score(missing)
	require.ErrorIs(t, err, core.ErrMissingScore)
}

func TestProgram_CapacityTransfer(t *testing.T) {
	p := core.NewProgram("P1", "Q0", "I1", 1, 0, map[int]int{1: 2})
	special := p.Special[1]
	a := newScoredApplicant("a1", "P1", "Q0", 0, 0.1)
	special.Add(a, 0.1)

	delta, err := p.CapacityToTransfer(1)
	require.NoError(t, err)
	assert.Equal(t, 1, delta)
	assert.True(t, p.Transferred)
	assert.Equal(t, 1, special.Capacity)

	p.ReceiveTransfer(delta)
	assert.True(t, p.Received)
	assert.Equal(t, 1, p.Regular.Capacity)

	// A full special queue has nothing to transfer.
	special2 := core.NewAssignmentQueue(1)
	special2.Add(a, 0.1)
	p2 := core.NewProgram("P2", "Q0", "I1", 1, 0, map[int]int{1: 1})
	p2.Special[1].Add(a, 0.1)
	delta2, err := p2.CapacityToTransfer(1)
	require.NoError(t, err)
	assert.Equal(t, 0, delta2)
}

func TestProgram_ForceSecuredMatch(t *testing.T) {
	p := core.NewProgram("P1", "Q0", "I1", 1, 0, nil)
	p.WaitlistAdd("a1", 3)
	a := newScoredApplicant("a1", "P1", "Q0", 0, 0.4)
	a.SpecialAssignment = 0

	require.NoError(t, p.ForceSecuredMatch(a))
	assert.Equal(t, 1, p.Regular.OverCapacity)
	assert.Contains(t, p.Regular.AssignedApplicants, a)
	_, stillWaiting := p.Waitlist["a1"]
	assert.False(t, stillWaiting)
}

func TestProgram_Reset(t *testing.T) {
	p := core.NewProgram("P1", "Q0", "I1", 1, 1, map[int]int{1: 1})
	a := newScoredApplicant("a1", "P1", "Q0", 0, 0.1)
	p.Regular.Add(a, 0.1)
	p.WaitlistAdd("a2", 1)
	p.Transferred = true

	p.Reset()
	assert.Empty(t, p.Regular.AssignedApplicants)
	assert.Empty(t, p.Waitlist)
	assert.False(t, p.Transferred)
}
