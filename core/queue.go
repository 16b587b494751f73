package core

import "math"

// AssignmentQueue is the bounded, priority-ordered bag of applicants
// tentatively assigned to one (program, quota, assignment-type) slot. Lower
// scores are better; CutoffScore reports the worst score currently held when
// the queue is full.
//
// AssignmentQueue maintains no internal ordering: AssignedApplicants and
// AssignedScores are parallel slices in insertion order, and lookups scan
// linearly. Insertion order only matters as a tie-breaker for WorstOccupant
// on an exact score collision, an event of measure zero given well-formed
// lotteries.
type AssignmentQueue struct {
	OriginalCapacity int
	Capacity         int
	OverCapacity     int

	AssignedApplicants []*Applicant
	AssignedScores     []float64
}

// NewAssignmentQueue returns a queue with the given original (and current)
// capacity, zero over-capacity, and empty assignment lists.
func NewAssignmentQueue(capacity int) *AssignmentQueue {
	return &AssignmentQueue{
		OriginalCapacity: capacity,
		Capacity:         capacity,
	}
}

// Add appends applicant and score to the parallel assignment lists. No
// ordering or capacity check is performed here — the DA engine (matcher
// package) is responsible for only calling Add when CutoffScore indicated a
// free slot.
func (q *AssignmentQueue) Add(applicant *Applicant, score float64) {
	q.AssignedApplicants = append(q.AssignedApplicants, applicant)
	q.AssignedScores = append(q.AssignedScores, score)
}

// CutoffScore reports the worst score a proposer must beat to enter the
// queue:
//
//   - +Inf if the queue has zero capacity (a zero-capacity queue never
//     admits a proposer).
//   - max(AssignedScores) if the queue is at or above capacity.
//   - 0 otherwise (a free slot is available; any non-negative score enters).
func (q *AssignmentQueue) CutoffScore() float64 {
	if q.Capacity == 0 {
		return math.Inf(1)
	}
	if len(q.AssignedApplicants) >= q.Capacity {
		worst := q.AssignedScores[0]
		for _, s := range q.AssignedScores[1:] {
			if s > worst {
				worst = s
			}
		}
		return worst
	}
	return 0
}

// WorstOccupant returns the first assigned applicant whose score equals
// cutoff (ties broken by first occurrence, i.e. insertion order).
func (q *AssignmentQueue) WorstOccupant(cutoff float64) (*Applicant, error) {
	for i, s := range q.AssignedScores {
		if s == cutoff {
			return q.AssignedApplicants[i], nil
		}
	}
	return nil, wrapf(ErrOccupantNotFound, "cutoff=%v", cutoff)
}

// Replace swaps the occupant at old's position with newApplicant/newScore,
// preserving the slot's position in both parallel lists.
func (q *AssignmentQueue) Replace(old, newApplicant *Applicant, newScore float64) error {
	for i, a := range q.AssignedApplicants {
		if a == old {
			q.AssignedApplicants[i] = newApplicant
			q.AssignedScores[i] = newScore
			return nil
		}
	}
	return wrapf(ErrOccupantNotFound, "applicant %s not assigned", old.ID)
}

// ModifyCapacity adds delta (positive or negative) to Capacity, used by
// capacity-transfer adjustments between special and regular queues.
func (q *AssignmentQueue) ModifyCapacity(delta int) {
	q.Capacity += delta
}

// ModifyOverCapacity adds delta to OverCapacity. Only forced secured
// enrollment should ever push this above zero.
func (q *AssignmentQueue) ModifyOverCapacity(delta int) {
	q.OverCapacity += delta
}

// Reset restores the queue to its post-construction state: capacity reverts
// to OriginalCapacity, over-capacity to zero, and both assignment lists are
// cleared. Used by policy.Driver.ResetMatching so repeated runs over the
// same inputs start clean.
func (q *AssignmentQueue) Reset() {
	q.Capacity = q.OriginalCapacity
	q.OverCapacity = 0
	q.AssignedApplicants = nil
	q.AssignedScores = nil
}
