package wkrq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Property 6: evaluating every signed formula on an open branch under its
// extracted model reproduces the sign.
func TestModelVerification(t *testing.T) {
	p := NewAtom("P", nil)
	q := NewAtom("Q", nil)
	impl := NewCompound(OpImpl, p, q)
	conj := NewCompound(OpAnd, NewCompound(OpAnd, p, impl), q)

	formula := NewCompound(OpImpl, conj, q)
	res, err := Solve([]SignedFormula{NewSignedFormula(SignT, formula)}, DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Satisfiable, "((P & (P->Q)) & Q) -> Q must be satisfiable")

	for _, m := range res.Models {
		sfs := []SignedFormula{NewSignedFormula(SignT, formula)}
		require.True(t, m.Verify(sfs), "model %v failed to verify %v", m, sfs)
	}
}

func TestModelValueOfDefaultsFalse(t *testing.T) {
	m := &Model{values: map[string]TruthValue{}}
	p := NewAtom("P", nil)
	require.Equal(t, FALSE, m.ValueOf(p))
}

func TestModelCanonicalKeyDeduplicates(t *testing.T) {
	m1 := &Model{Domain: []Term{NewConstant("a")}, values: map[string]TruthValue{"k": TRUE}}
	m2 := &Model{Domain: []Term{NewConstant("a")}, values: map[string]TruthValue{"k": TRUE}}
	require.Equal(t, m1.CanonicalKey(), m2.CanonicalKey())
}
