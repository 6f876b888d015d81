package wkrq

import (
	"fmt"
	"sort"
	"strings"
)

// Model is the three-valued interpretation extracted from one open branch
// (§4.8): a domain of constants, a valuation over every ground atom that
// occurred on the branch, and — for ACrQ — a bilateral extension grouping
// each predicate's positive and negative evidence.
type Model struct {
	Domain []Term

	// values maps an atom's canonical Key() to its assigned truth value.
	// Absent keys default to FALSE, as §4.8 specifies for unconstrained
	// atoms; sign v never contributes an entry here (§9).
	values map[string]TruthValue
	atoms  map[string]*Atom

	// Bilateral is only populated under ACrQ: basePredKey -> bilateral
	// value, where basePredKey ignores polarity.
	Bilateral map[string]BilateralTruthValue
}

// ValueOf returns the model's truth value for atom, defaulting to FALSE for
// an atom never constrained on the branch (§4.8).
func (m *Model) ValueOf(atom *Atom) TruthValue {
	if v, ok := m.values[atom.Key()]; ok {
		return v
	}
	return FALSE
}

func basePredKey(a *Atom) string {
	var b strings.Builder
	b.WriteString(a.Pred)
	for _, t := range a.Args {
		b.WriteByte('\x1f')
		b.WriteString(t.Name)
	}
	return b.String()
}

// extractModel builds a Model from an open branch, per §4.8.
func extractModel(branch *Branch, nodes *nodeStore, logic Logic) *Model {
	m := &Model{
		values: make(map[string]TruthValue),
		atoms:  make(map[string]*Atom),
	}
	for t := range branch.groundTerms {
		m.Domain = append(m.Domain, t)
	}
	sort.Slice(m.Domain, func(i, j int) bool { return m.Domain[i].Name < m.Domain[j].Name })

	assign := func(sign Sign, value TruthValue) {
		for key, ids := range branch.signIndex[sign] {
			if len(ids) == 0 {
				continue
			}
			f := nodes.get(ids[0]).Signed.Formula
			a, ok := f.(*Atom)
			if !ok {
				continue
			}
			if _, already := m.values[key]; already {
				continue
			}
			m.values[key] = value
			m.atoms[key] = a
		}
	}
	// Order matters only in the pathological case where invariant 1 was
	// somehow violated; on a genuinely open branch at most one of
	// {t,f,e} is present per formula key.
	assign(SignT, TRUE)
	assign(SignF, FALSE)
	assign(SignE, UNDEFINED)

	if logic == LogicACrQ {
		m.Bilateral = make(map[string]BilateralTruthValue)
		bases := make(map[string]bool)
		for _, a := range m.atoms {
			bases[basePredKey(a)] = true
		}
		for base := range bases {
			// Reconstruct a representative atom for each polarity sharing
			// this base key by scanning m.atoms; cheap given branch sizes
			// in this domain.
			var pos, neg *Atom
			for _, a := range m.atoms {
				if basePredKey(a) != base {
					continue
				}
				if a.Negative {
					neg = a
				} else {
					pos = a
				}
			}
			bv := BilateralTruthValue{Positive: FALSE, Negative: FALSE}
			if pos != nil {
				bv.Positive = m.ValueOf(pos)
			}
			if neg != nil {
				bv.Negative = m.ValueOf(neg)
			}
			m.Bilateral[base] = bv
		}
	}
	return m
}

// CanonicalKey returns a deterministic, sort-stable encoding of the model,
// used to deduplicate models across branches (§4.8).
func (m *Model) CanonicalKey() string {
	var b strings.Builder
	for _, t := range m.Domain {
		b.WriteString(t.Name)
		b.WriteByte(',')
	}
	b.WriteByte('|')
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s;", k, m.values[k])
	}
	if m.Bilateral != nil {
		b.WriteByte('|')
		bkeys := make([]string, 0, len(m.Bilateral))
		for k := range m.Bilateral {
			bkeys = append(bkeys, k)
		}
		sort.Strings(bkeys)
		for _, k := range bkeys {
			bv := m.Bilateral[k]
			fmt.Fprintf(&b, "%s=<%s,%s>;", k, bv.Positive, bv.Negative)
		}
	}
	return b.String()
}

// String renders the model as a list of atom=value assignments, sorted for
// reproducibility.
func (m *Model) String() string {
	keys := make([]string, 0, len(m.values))
	for k, a := range m.atoms {
		keys = append(keys, fmt.Sprintf("%s=%s", a, m.values[k]))
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ", ") + "}"
}

// Verify re-evaluates every signed formula the branch asserted under m's
// valuation using weak-Kleene semantics and checks it reproduces the sign
// (§4.8, Testable Property 6). It is a diagnostic, not a runtime
// precondition.
func (m *Model) Verify(formulas []SignedFormula) bool {
	for _, sf := range formulas {
		if sf.Sign == SignV {
			continue // v carries no semantic commitment to verify
		}
		got := m.evaluate(sf.Formula)
		want := signForTruth(got)
		switch sf.Sign {
		case SignT, SignF, SignE:
			if sf.Sign != want {
				return false
			}
		case SignM:
			if got == UNDEFINED {
				return false
			}
		case SignN:
			if got == TRUE {
				return false
			}
		}
	}
	return true
}

func (m *Model) evaluate(f Formula) TruthValue {
	switch n := f.(type) {
	case *Atom:
		return m.ValueOf(n)
	case *Compound:
		switch n.Op {
		case OpNeg:
			return Neg(m.evaluate(n.Args[0]))
		case OpAnd:
			return And(m.evaluate(n.Args[0]), m.evaluate(n.Args[1]))
		case OpOr:
			return Or(m.evaluate(n.Args[0]), m.evaluate(n.Args[1]))
		case OpImpl:
			return Impl(m.evaluate(n.Args[0]), m.evaluate(n.Args[1]))
		}
	case *RestrictedExists:
		result := FALSE
		for _, c := range m.Domain {
			r := m.evaluate(substitute(n.Restriction, n.Var, c))
			p := m.evaluate(substitute(n.Matrix, n.Var, c))
			v := And(r, p)
			result = Or(result, v)
			if result == TRUE {
				return TRUE
			}
		}
		return result
	case *RestrictedForall:
		result := TRUE
		for _, c := range m.Domain {
			r := m.evaluate(substitute(n.Restriction, n.Var, c))
			p := m.evaluate(substitute(n.Matrix, n.Var, c))
			v := Impl(r, p)
			result = And(result, v)
			if result == FALSE {
				return FALSE
			}
		}
		return result
	}
	return UNDEFINED
}
