// Package engine implements the saturation-based rule engine: compiling
// a rule list into an indexed, read-only table, scanning raw input for
// coarse activation signals, and growing a stash of matched nodes to a
// fixpoint before resolving and filtering them into user-facing
// entities.
package engine

import (
	"fmt"

	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

// Dimension tags the semantic class of a token.
type Dimension int

const (
	DimTime Dimension = iota
	DimNumeral
	DimRegexMatch
)

func (d Dimension) String() string {
	switch d {
	case DimTime:
		return "time"
	case DimNumeral:
		return "numeral"
	case DimRegexMatch:
		return "regex"
	default:
		return "dim?"
	}
}

// Numeral is the value carried by a Numeral token.
type Numeral struct {
	Value        float64
	Grain        *int // power-of-ten trailing-zero count, when known
	Multipliable bool
}

// TokenKind is the tagged union of what a Token carries.
type TokenKind interface {
	tokenKindNode()
}

// RegexMatchKind carries the lowercased capture groups of a regex hit;
// Groups[0] is always the full match.
type RegexMatchKind struct {
	Groups []string
}

// NumeralKind carries a parsed numeral.
type NumeralKind struct {
	Numeral Numeral
}

// TimeExprKind carries a symbolic time expression awaiting normalization.
type TimeExprKind struct {
	Expr timeexpr.Expr
}

func (RegexMatchKind) tokenKindNode() {}
func (NumeralKind) tokenKindNode()    {}
func (TimeExprKind) tokenKindNode()   {}

// Token is (dimension, kind).
type Token struct {
	Dim  Dimension
	Kind TokenKind
}

// Range is a half-open byte span [Start, End) into the original input.
type Range struct {
	Start, End int
}

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Node is a produced or seeded match: its span, its token, the name of
// the rule that produced it ("<regex>" for raw seeds), and the ordered
// evidence trail of the derivation.
type Node struct {
	Range    Range
	Token    Token
	RuleName string
	Evidence []string
}
