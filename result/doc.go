// Package result reads each applicant's final assignment off a
// policy.Driver and emits one row per applicant, in the driver's insertion
// order.
package result
