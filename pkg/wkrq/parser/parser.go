package parser

import (
	"fmt"
	"unicode"

	"github.com/gitrdm/wkrq/pkg/wkrq"
)

// Parser recursive-descends over the grammar of spec §6:
//
//	φ ::= atom | ~φ | (φ & φ) | (φ | φ) | (φ -> φ) | (φ <-> φ)
//	    | [forall X α(X)]β(X) | [exists X α(X)]β(X)
//	atom ::= Ident | Ident'(' term (',' term)* ')' | Ident'*'(...)
//
// every binary connective is fully parenthesized in the surface syntax, so
// no precedence climbing is needed: one token of lookahead always
// determines which production applies.
type Parser struct {
	lex *lexer
	cur token
}

// New builds a Parser over src. Call Parse to consume one complete formula.
func New(src string) (*Parser, error) {
	p := &Parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses src as a single formula (§6 grammar) and returns the ADT.
func Parse(src string) (wkrq.Formula, error) {
	p, err := New(src)
	if err != nil {
		return nil, fmt.Errorf("Parse: %w", err)
	}
	f, err := p.parseFormula()
	if err != nil {
		return nil, fmt.Errorf("Parse: %w", err)
	}
	if p.cur.kind != tokEOF {
		return nil, fmt.Errorf("Parse: unexpected trailing input at offset %d", p.cur.pos)
	}
	return f, nil
}

func (p *Parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *Parser) expect(k tokenKind, what string) error {
	if p.cur.kind != k {
		return fmt.Errorf("expected %s at offset %d, got %q", what, p.cur.pos, p.cur.text)
	}
	return p.advance()
}

func (p *Parser) parseFormula() (wkrq.Formula, error) {
	switch p.cur.kind {
	case tokTilde:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return wkrq.NewCompound(wkrq.OpNeg, inner), nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		left, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		op, err := p.parseBinOp()
		if err != nil {
			return nil, err
		}
		right, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return applyBinOp(op, left, right), nil

	case tokLBracket:
		return p.parseQuantifier()

	case tokIdent:
		return p.parseAtom()
	}
	return nil, fmt.Errorf("unexpected token %q at offset %d", p.cur.text, p.cur.pos)
}

type binOp int

const (
	binAnd binOp = iota
	binOr
	binImpl
	binBicond
)

func (p *Parser) parseBinOp() (binOp, error) {
	switch p.cur.kind {
	case tokAmp:
		return binAnd, p.advance()
	case tokPipe:
		return binOr, p.advance()
	case tokArrow:
		return binImpl, p.advance()
	case tokBiArrow:
		return binBicond, p.advance()
	}
	return 0, fmt.Errorf("expected a binary connective at offset %d, got %q", p.cur.pos, p.cur.text)
}

// applyBinOp builds the compound for op. <-> has no connective of its own
// in the core ADT (§3 lists only neg/and/or/impl); it desugars here to
// ((l -> r) & (r -> l)), a pure surface-syntax expansion that never reaches
// the tableau engine as anything but ordinary & and ->.
func applyBinOp(op binOp, left, right wkrq.Formula) wkrq.Formula {
	switch op {
	case binAnd:
		return wkrq.NewCompound(wkrq.OpAnd, left, right)
	case binOr:
		return wkrq.NewCompound(wkrq.OpOr, left, right)
	case binImpl:
		return wkrq.NewCompound(wkrq.OpImpl, left, right)
	case binBicond:
		fwd := wkrq.NewCompound(wkrq.OpImpl, left, right)
		bwd := wkrq.NewCompound(wkrq.OpImpl, right, left)
		return wkrq.NewCompound(wkrq.OpAnd, fwd, bwd)
	}
	panic("parser: unreachable binOp")
}

// parseQuantifier parses [forall X α(X)]β(X) or [exists X α(X)]β(X).
func (p *Parser) parseQuantifier() (wkrq.Formula, error) {
	if err := p.expect(tokLBracket, "'['"); err != nil {
		return nil, err
	}
	if p.cur.kind != tokIdent {
		return nil, fmt.Errorf("expected 'forall' or 'exists' at offset %d", p.cur.pos)
	}
	keyword := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.kind != tokIdent || !isVariableName(p.cur.text) {
		return nil, fmt.Errorf("expected an uppercase variable name at offset %d", p.cur.pos)
	}
	v := wkrq.NewVariable(p.cur.text)
	if err := p.advance(); err != nil {
		return nil, err
	}
	restriction, err := p.parseFormula()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, err
	}
	matrix, err := p.parseFormula()
	if err != nil {
		return nil, err
	}

	switch keyword {
	case "forall":
		return wkrq.NewRestrictedForall(v, restriction, matrix), nil
	case "exists":
		return wkrq.NewRestrictedExists(v, restriction, matrix), nil
	}
	return nil, fmt.Errorf("expected 'forall' or 'exists', got %q", keyword)
}

// parseAtom parses Ident, Ident*, Ident(term,...) or Ident*(term,...).
func (p *Parser) parseAtom() (wkrq.Formula, error) {
	pred := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	negative := false
	if p.cur.kind == tokStar {
		negative = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	var args []wkrq.Term
	if p.cur.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
			if p.cur.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
	}

	return wkrq.NewBilateralAtom(pred, args, negative), nil
}

func (p *Parser) parseTerm() (wkrq.Term, error) {
	if p.cur.kind != tokIdent {
		return wkrq.Term{}, fmt.Errorf("expected a term at offset %d, got %q", p.cur.pos, p.cur.text)
	}
	name := p.cur.text
	if err := p.advance(); err != nil {
		return wkrq.Term{}, err
	}
	if isVariableName(name) {
		return wkrq.NewVariable(name), nil
	}
	if wkrq.IsFreshName(name) {
		return wkrq.Term{}, fmt.Errorf("constant %q is reserved for engine-generated fresh constants (prefix %q)", name, wkrq.FreshConstantPrefix)
	}
	return wkrq.NewConstant(name), nil
}

// isVariableName implements §6's "variables are uppercase identifiers;
// constants are lowercase identifiers".
func isVariableName(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper([]rune(name)[0])
}
