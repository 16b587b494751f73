package result

import (
	"errors"
	"fmt"
)

// ErrExtraction wraps a failure to recompute an applicant's assigned score,
// which should be unreachable given a driver that completed Run
// successfully — it surfaces entity-graph corruption rather than expected
// user input errors.
var ErrExtraction = errors.New("result: extraction failed")

func wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
