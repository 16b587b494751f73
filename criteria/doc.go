// Package criteria evaluates the small criterion DSL driving quota-order
// rules: the "<name>_criteria" / "<name>_value" column pairs of the
// quota_order input table. Given an applicant attribute, a criterion
// operator name, and a comparison value, it reports whether the attribute
// satisfies the criterion.
//
// The operator synonym table is deliberately asymmetric — "ge" means strict
// greater-than while "geq" means greater-or-equal — a documented quirk that
// is preserved rather than corrected. Evaluation itself is delegated to
// expr-lang/expr so that operator composition and attribute coercion follow
// a real expression-language's numeric/string comparison rules rather than a
// hand-rolled type switch.
package criteria
