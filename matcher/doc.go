// Package matcher implements the Deferred Acceptance engine: the pure
// matching loop at the core of a school-choice match. Given a population of
// applicants and a set of programs already scoped to a single (grade,
// assignment_type) pass, it runs proposals to a fixed point and produces the
// unique applicant-optimal stable matching within that scope.
//
// The engine never mutates an applicant's preference list, priority, or
// lottery — those are frozen for the duration of Run by the policy.Driver's
// pre-round mutations. It only mutates Cursor/Matched/Assigned on
// core.Applicant and the queues of core.Program. This separation is what
// makes the stability guarantee hold.
package matcher
