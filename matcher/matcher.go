package matcher

import (
	"math"

	"github.com/tether-education/schoolchoice-da/core"
)

// ProgramKey looks up a program by (program_id, quota_id); the scope passed
// to Run is exactly the programs belonging to one grade, keyed the same way
// the policy.Driver's global program map is keyed.
type ProgramKey = core.ProgramQuota

// Run executes the Deferred Acceptance loop over applicants against
// programs, both already scoped to a single (grade, assignment_type) pass.
// All applicants must have Matched=false and Cursor=0 on entry, unless a
// pre-round mutation intentionally matched them to no program already (an
// empty preference list).
//
// Run mutates Cursor/Matched/Assigned on the given applicants and the queues
// of the given programs in place; it returns nothing on success. The
// worklist processing order does not affect the result — DA is confluent
// under fixed preferences and scores — so Run pops from the back of an
// internal stack for O(1) amortized removal.
func Run(applicants []*core.Applicant, programs map[ProgramKey]*core.Program) error {
	worklist := append([]*core.Applicant(nil), applicants...)

	for len(worklist) > 0 {
		n := len(worklist) - 1
		applicant := worklist[n]
		worklist = worklist[:n]

		if applicant.Matched {
			continue
		}

		pq := applicant.CurrentProgramQuota()
		program, ok := programs[pq]
		if !ok {
			return wrapf(ErrMatching, "applicant %s: program (%s,%s) not in scope", applicant.ID, pq.ProgramID, pq.QuotaID)
		}

		rejected, rejectedScore, err := proposeOnce(applicant, program)
		if err != nil {
			return err
		}
		if rejected == nil {
			continue
		}

		program.WaitlistAdd(rejected.ID, int(math.Floor(rejectedScore)))

		if hasMore := rejected.Advance(); hasMore {
			rejected.Matched = false
			rejected.Assigned = nil
			worklist = append(worklist, rejected)
		} else {
			rejected.Matched = true
			rejected.Assigned = nil
		}
	}

	return nil
}

// proposeOnce implements one proposal-acceptance step for a single
// applicant against a single program. It returns the applicant that
// ends up rejected (nil if the proposer was accepted) together with that
// applicant's score at program, for waitlist registration by the caller.
func proposeOnce(applicant *core.Applicant, program *core.Program) (rejected *core.Applicant, rejectedScore float64, err error) {
	queue, err := program.QueueFor(applicant.SpecialAssignment)
	if err != nil {
		return nil, 0, wrapf(ErrMatching, "applicant %s at program %s", applicant.ID, program.ProgramID)
	}
	score, err := program.Score(applicant)
	if err != nil {
		return nil, 0, wrapf(ErrMatching, "applicant %s at program %s", applicant.ID, program.ProgramID)
	}
	cutoff := queue.CutoffScore()

	switch {
	case cutoff == 0 && len(queue.AssignedApplicants) < queue.Capacity:
		applicant.Matched = true
		applicant.Assigned = program
		queue.Add(applicant, score)
		return nil, 0, nil

	case math.IsInf(cutoff, 1):
		return applicant, score, nil

	case cutoff > score:
		worst, werr := queue.WorstOccupant(cutoff)
		if werr != nil {
			return nil, 0, wrapf(ErrMatching, "program %s: %v", program.ProgramID, werr)
		}
		if err := queue.Replace(worst, applicant, score); err != nil {
			return nil, 0, wrapf(ErrMatching, "program %s: %v", program.ProgramID, err)
		}
		applicant.Matched = true
		applicant.Assigned = program
		return worst, cutoff, nil

	default: // cutoff <= score
		return applicant, score, nil
	}
}
