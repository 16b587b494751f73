package policy

import (
	"errors"
	"fmt"
)

// Sentinel errors for the policy package. Callers branch with errors.Is;
// messages are never used for control flow.
var (
	// ErrConfig covers bad criteria strings, missing required input columns,
	// contradictory feature flags, and the unimplemented external lottery
	// fallback.
	ErrConfig = errors.New("policy: invalid configuration or input shape")

	// ErrInvalidInput covers referential-integrity violations: an unknown
	// applicant referenced from siblings/links, an application to a
	// non-existent program, or a non-unique applicant_id.
	ErrInvalidInput = errors.New("policy: invalid input")

	// ErrInvalidSecuredEnrollment is returned when an applicant's SE
	// program/quota pair is not present in their postulation.
	ErrInvalidSecuredEnrollment = errors.New("policy: secured enrollment pair not in postulation")

	// ErrMissingTransition is returned when a priority profile has no
	// sibling transition entry, or the transitioned profile has no priority
	// entry for the quota in question.
	ErrMissingTransition = errors.New("policy: missing priority profile transition")
)

func wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
