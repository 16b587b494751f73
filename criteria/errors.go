package criteria

import (
	"errors"
	"fmt"
)

// ErrUnknownCriterion is returned when a criterion string is not one of the
// fixed set of recognized operator names.
var ErrUnknownCriterion = errors.New("criteria: unknown criterion operator")

// ErrEvaluation wraps any failure expr-lang/expr reports while compiling or
// running a criterion expression (e.g. incomparable operand types).
var ErrEvaluation = errors.New("criteria: evaluation failed")

func wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
