// Package core defines the fundamental, mutable entities of the school-choice
// matching domain — Applicant, Program, and AssignmentQueue — and the
// primitive operations the matching engine and policy driver compose.
//
// These types intentionally hold no behavior beyond the minimum needed to
// run a match: an AssignmentQueue only knows how to accept, evict, and
// report a cutoff score; a Program only knows how to route an applicant to
// the right queue and score it there; an Applicant only knows its own
// postulation state and the mutations a round may apply to it.
//
// Concurrency: none of these types are safe for concurrent mutation. The
// system is single-threaded by design — every Applicant and Program is
// owned, for its whole lifetime, by exactly one policy.Driver on one
// goroutine. Callers needing concurrent access must serialize it
// themselves; core does not pay for locks nobody needs.
package core
