package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for core entity operations. Callers branch on these with
// errors.Is; messages are never used for control flow.
var (
	// ErrInvalidAssignmentType is returned by Program.QueueFor when asked for
	// a special queue tag the program was never configured with.
	ErrInvalidAssignmentType = errors.New("core: invalid assignment type")

	// ErrMissingScore is returned by Program.Score when the applicant has no
	// priority/lottery entry for (program_id, quota_id) — a fatal condition
	// the policy layer surfaces as a matching error.
	ErrMissingScore = errors.New("core: missing priority/lottery entry")

	// ErrOccupantNotFound is returned by AssignmentQueue.WorstOccupant when
	// no assigned applicant carries the given score, and by Replace when the
	// applicant to replace is not assigned to the queue.
	ErrOccupantNotFound = errors.New("core: occupant not found for score")

	// ErrNoSecuredEnrollment is returned by
	// Applicant.TruncateAtSecuredEnrollment when the applicant's SE program
	// does not appear in its postulation.
	ErrNoSecuredEnrollment = errors.New("core: applicant has no secured enrollment")
)

// wrapf prefixes err with a "<context>: " formatted message, preserving the
// sentinel for errors.Is/errors.As at call sites.
func wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
