package criteria

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tether-education/schoolchoice-da/core"
)

// symbols maps each recognized criterion name to the expr-lang operator it
// compiles to. This table is intentionally asymmetric: "ge" compiles to
// strict ">" and "geq" to ">=", a deliberately preserved naming quirk rather
// than a more "correct" symmetric scheme.
var symbols = map[string]string{
	"<":   "<",
	"<=":  "<=",
	">":   ">",
	">=":  ">=",
	"=":   "==",
	"==":  "==",
	"!=":  "!=",
	"le":  "<",
	"leq": "<=",
	"ge":  ">",
	"geq": ">=",
	"eq":  "==",
	"neq": "!=",
}

var programs map[string]*vm.Program

func init() {
	programs = make(map[string]*vm.Program, len(symbols))
	seen := make(map[string]*vm.Program, 6)
	for _, symbol := range symbols {
		if _, ok := seen[symbol]; ok {
			continue
		}
		program, err := expr.Compile(fmt.Sprintf("attr %s value", symbol), expr.AllowUndefinedVariables())
		if err != nil {
			panic(fmt.Sprintf("criteria: failed to compile built-in operator %q: %v", symbol, err))
		}
		seen[symbol] = program
	}
	for name, symbol := range symbols {
		programs[name] = seen[symbol]
	}
}

// IsKnownCriterion reports whether name is one of the fixed set of
// recognized operator names, without evaluating anything. Callers validate
// quota_order input columns with this at driver-build time, before any
// applicant is evaluated — an unrecognized name is a configuration error.
func IsKnownCriterion(name string) bool {
	_, ok := symbols[name]
	return ok
}

// Evaluate reports whether attr satisfies criterion against value, per the
// synonym table above. Returns ErrUnknownCriterion for any criterion name
// outside the fixed set, and ErrEvaluation-wrapped errors for operand types
// expr cannot compare (e.g. comparing a string to a float64 with "<").
func Evaluate(attr core.Attribute, criterion string, value core.Attribute) (bool, error) {
	program, ok := programs[criterion]
	if !ok {
		return false, wrapf(ErrUnknownCriterion, "%q", criterion)
	}
	result, err := expr.Run(program, map[string]interface{}{"attr": attr, "value": value})
	if err != nil {
		return false, wrapf(ErrEvaluation, "criterion %q: attr=%v value=%v", criterion, attr, value)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, wrapf(ErrEvaluation, "criterion %q produced non-bool result %v", criterion, result)
	}
	return ok, nil
}
