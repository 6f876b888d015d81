// Package main demonstrates the core wkrq usage patterns.
package main

import (
	"context"
	"fmt"

	"github.com/gitrdm/wkrq/pkg/wkrq"
	"github.com/gitrdm/wkrq/pkg/wkrq/parser"
)

func main() {
	fmt.Println("=== wkrq Examples ===")
	fmt.Println()

	satisfiability()
	validity()
	quantifiedEntailment()
	bilateralGlut()
	oracleEvaluation()
	batchSolving()
}

// satisfiability checks P ∨ ~P and reports its models.
func satisfiability() {
	fmt.Println("1. Satisfiability:")

	f, err := parser.Parse("(P|~P)")
	if err != nil {
		fmt.Println("   parse error:", err)
		return
	}

	res, err := wkrq.Solve([]wkrq.SignedFormula{wkrq.NewSignedFormula(wkrq.SignT, f)}, wkrq.DefaultOptions())
	if err != nil {
		fmt.Println("   solve error:", err)
		return
	}

	fmt.Printf("   satisfiable(P ∨ ~P) = %v, %d model(s)\n", res.Satisfiable, len(res.Models))
	fmt.Println()
}

// validity checks (P & (P->Q)) -> Q.
func validity() {
	fmt.Println("2. Validity (modus ponens):")

	f, err := parser.Parse("((P&(P->Q))->Q)")
	if err != nil {
		fmt.Println("   parse error:", err)
		return
	}

	valid, err := wkrq.Valid(f, wkrq.DefaultOptions())
	if err != nil {
		fmt.Println("   valid error:", err)
		return
	}

	fmt.Printf("   valid((P & (P->Q)) -> Q) = %v\n", valid)
	fmt.Println()
}

// quantifiedEntailment checks Human(socrates), [forall X Human(X)]Mortal(X)
// entails Mortal(socrates).
func quantifiedEntailment() {
	fmt.Println("3. Restricted quantification:")

	forall, err := parser.Parse("[forall X Human(X)]Mortal(X)")
	if err != nil {
		fmt.Println("   parse error:", err)
		return
	}
	humanSocrates, _ := parser.Parse("Human(socrates)")
	mortalSocrates, _ := parser.Parse("Mortal(socrates)")

	entails, err := wkrq.Entails([]wkrq.Formula{forall, humanSocrates}, mortalSocrates, wkrq.DefaultOptions())
	if err != nil {
		fmt.Println("   entails error:", err)
		return
	}

	fmt.Printf("   Human(socrates), [∀X Human(X)]Mortal(X) ⊨ Mortal(socrates) = %v\n", entails)
	fmt.Println()
}

// bilateralGlut compares a glut's satisfiability under wKrQ and ACrQ.
func bilateralGlut() {
	fmt.Println("4. Bilateral predicates (ACrQ):")

	pos, _ := parser.Parse("Bird(tweety)")
	neg, _ := parser.Parse("Bird*(tweety)")
	initial := []wkrq.SignedFormula{
		wkrq.NewSignedFormula(wkrq.SignT, pos),
		wkrq.NewSignedFormula(wkrq.SignT, neg),
	}

	wkrqRes, _ := wkrq.Solve(initial, wkrq.DefaultOptions())
	acrqOpts := wkrq.DefaultOptions()
	acrqOpts.Logic = wkrq.LogicACrQ
	acrqRes, _ := wkrq.Solve(initial, acrqOpts)

	fmt.Printf("   glut satisfiable under wkrq = %v\n", wkrqRes.Satisfiable)
	fmt.Printf("   glut satisfiable under acrq = %v\n", acrqRes.Satisfiable)
	fmt.Println()
}

// oracleEvaluation wires an external atomic evaluator into an ACrQ solve.
func oracleEvaluation() {
	fmt.Println("5. Oracle-backed evaluation:")

	human, _ := parser.Parse("Human(socrates)")
	opts := wkrq.DefaultOptions()
	opts.Logic = wkrq.LogicACrQ
	opts.Oracle = func(atom wkrq.Formula) (wkrq.BilateralTruthValue, error) {
		return wkrq.BilateralTruthValue{Positive: wkrq.TRUE, Negative: wkrq.FALSE}, nil
	}

	res, err := wkrq.Solve([]wkrq.SignedFormula{wkrq.NewSignedFormula(wkrq.SignT, human)}, opts)
	if err != nil {
		fmt.Println("   solve error:", err)
		return
	}
	fmt.Printf("   oracle-backed solve satisfiable = %v (%d distinct rule(s) applied)\n", res.Satisfiable, len(res.Stats.RuleApplications))
	fmt.Println()
}

// batchSolving runs several independent queries concurrently via SolveAll.
func batchSolving() {
	fmt.Println("6. Batch solving:")

	formulas := []string{"(P|~P)", "(P&~P)", "((P&(P->Q))->Q)"}
	queries := make([]wkrq.Query, 0, len(formulas))
	for _, src := range formulas {
		f, err := parser.Parse(src)
		if err != nil {
			fmt.Println("   parse error:", err)
			return
		}
		queries = append(queries, wkrq.Query{Initial: []wkrq.SignedFormula{wkrq.NewSignedFormula(wkrq.SignT, f)}})
	}

	results, err := wkrq.SolveAll(context.Background(), queries, wkrq.DefaultOptions())
	if err != nil {
		fmt.Println("   solveAll error:", err)
		return
	}
	for i, src := range formulas {
		fmt.Printf("   satisfiable(%s) = %v\n", src, results[i].Satisfiable)
	}
	fmt.Println()
}
