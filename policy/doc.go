// Package policy implements the Policy Driver: it builds the entity graph
// (applicants, programs, sibling/link adjacency, priority profile
// transitions, quota-order rules) from seven tabular inputs, then sequences
// the matcher across (grade, assignment_type) passes, applying pre-round
// mutations (dynamic sibling priority, linked postulation reorder, quota
// reorder, secured-enrollment truncation) and post-round adjustments
// (capacity transfer, forced secured enrollment) around each call into
// matcher.Run.
//
// Config follows the functional-options idiom: an unexported config struct
// plus exported With* constructors, resolved once by NewDriver.
package policy
