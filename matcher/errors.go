package matcher

import (
	"errors"
	"fmt"
)

// ErrMatching is the fatal matching error condition: an applicant's current
// postulation entry names a (program_id, quota_id) that does not exist in
// the scope handed to Run, or that program lacks a score/priority entry for
// the applicant.
var ErrMatching = errors.New("matcher: inconsistent scope")

func wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
