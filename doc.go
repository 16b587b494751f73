// Package schoolchoiceda computes a stable matching between applicants and
// school programs under the Gale–Shapley Deferred Acceptance algorithm,
// extended with the school-choice rules real districts run on top of it:
// dynamic sibling priority, linked (family) postulations, secured
// enrollment, forced secured enrollment, and capacity transfer between
// special and regular queues.
//
// The module is organized under four subpackages plus a result extractor:
//
//	core/     — Applicant, Program, AssignmentQueue: the entity model
//	matcher/  — the DA engine: one worklist-driven proposal round
//	criteria/ — the small comparison DSL quota-order rules are expressed in
//	policy/   — the Driver: sequences rounds across grades and assignment
//	            types, applying pre- and post-round mutations
//	result/   — reads the final assignment off a Driver into output rows
//
// Tabular input parsing, CSV I/O, and the result serializer are
// deliberately left to callers; this module's boundary is the seven input
// relations described in policy's doc comment, not any particular file
// format.
package schoolchoiceda
