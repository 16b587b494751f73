package criteria_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tether-education/schoolchoice-da/criteria"
)

func TestEvaluate_SymmetricOperators(t *testing.T) {
	cases := []struct {
		criterion string
		attr      interface{}
		value     interface{}
		want      bool
	}{
		{"<", 1, 2, true},
		{"<=", 2, 2, true},
		{">", 3, 2, true},
		{">=", 2, 2, true},
		{"=", 5, 5, true},
		{"==", 5, 6, false},
		{"!=", 5, 6, true},
	}
	for _, c := range cases {
		got, err := criteria.Evaluate(c.attr, c.criterion, c.value)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "criterion %q", c.criterion)
	}
}

// The "ge"/"geq" (and "le"/"leq") pair is intentionally asymmetric: "ge"
// means strict greater-than, not "greater-or-equal" as the name suggests.
// This is a deliberately preserved naming quirk and must not be "fixed".
func TestEvaluate_AsymmetricSynonyms(t *testing.T) {
	geEqual, err := criteria.Evaluate(2, "ge", 2)
	require.NoError(t, err)
	assert.False(t, geEqual, "ge on equal operands must be false (strict >)")

	geqEqual, err := criteria.Evaluate(2, "geq", 2)
	require.NoError(t, err)
	assert.True(t, geqEqual)

	leEqual, err := criteria.Evaluate(2, "le", 2)
	require.NoError(t, err)
	assert.False(t, leEqual, "le on equal operands must be false (strict <)")

	leqEqual, err := criteria.Evaluate(2, "leq", 2)
	require.NoError(t, err)
	assert.True(t, leqEqual)

	eqTrue, err := criteria.Evaluate(3, "eq", 3)
	require.NoError(t, err)
	assert.True(t, eqTrue)

	neqTrue, err := criteria.Evaluate(3, "neq", 4)
	require.NoError(t, err)
	assert.True(t, neqTrue)
}

func TestEvaluate_StringAttributes(t *testing.T) {
	got, err := criteria.Evaluate("urban", "==", "urban")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluate_UnknownCriterion(t *testing.T) {
	_, err := criteria.Evaluate(1, "between", 2)
	require.ErrorIs(t, err, criteria.ErrUnknownCriterion)
}

func TestEvaluate_IncomparableOperands(t *testing.T) {
	_, err := criteria.Evaluate("urban", "<", 2)
	require.ErrorIs(t, err, criteria.ErrEvaluation)
}
