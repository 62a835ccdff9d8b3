package engine

import (
	"sort"
	"strconv"
	"time"

	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

// ResolvedNode is a Node after value resolution, carrying its formatted
// value string. Nodes whose value cannot be resolved, and RegexMatch
// nodes, produce no ResolvedNode; resolveNode leaves Latent false.
type ResolvedNode struct {
	Range    Range
	Dim      Dimension
	Value    string
	Latent   bool
	RuleName string
	Evidence []string
}

// resolveNode formats a Node's value per spec section 4.6: Time nodes
// normalize their TimeExpr and format the result; Numeral nodes format
// the bare numeral; RegexMatch nodes carry no value and are always
// dropped downstream.
func resolveNode(n Node, reference time.Time) (ResolvedNode, bool) {
	rn := ResolvedNode{Range: n.Range, Dim: n.Token.Dim, RuleName: n.RuleName, Evidence: n.Evidence}

	switch k := n.Token.Kind.(type) {
	case TimeExprKind:
		v, ok := timeexpr.Normalize(k.Expr, reference)
		if !ok {
			return ResolvedNode{}, false
		}
		rn.Value = timeexpr.FormatValue(v)
		return rn, true
	case NumeralKind:
		rn.Value = formatNumeral(k.Numeral.Value)
		return rn, true
	case RegexMatchKind:
		return ResolvedNode{}, false
	default:
		return ResolvedNode{}, false
	}
}

func formatNumeral(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// resolveAndFilter resolves every node in the stash, then applies the
// subsumption filter described in spec section 4.6: sort by (dim,
// start, -end, -priority) and drop any entity strictly contained in the
// last-kept span of the same dimension.
func resolveAndFilter(stash *Stash, rulePriority map[string]int, reference time.Time) (all []ResolvedNode, kept []ResolvedNode) {
	for _, n := range stash.all() {
		if rn, ok := resolveNode(n, reference); ok {
			all = append(all, rn)
		}
	}

	sorted := make([]ResolvedNode, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Dim != b.Dim {
			return a.Dim < b.Dim
		}
		if a.Range.Start != b.Range.Start {
			return a.Range.Start < b.Range.Start
		}
		if a.Range.End != b.Range.End {
			return a.Range.End > b.Range.End
		}
		return rulePriority[a.RuleName] > rulePriority[b.RuleName]
	})

	var lastDim Dimension = -1
	var lastRange Range
	haveLast := false
	for _, rn := range sorted {
		if haveLast && rn.Dim == lastDim && containsStrictly(lastRange, rn.Range) {
			continue
		}
		kept = append(kept, rn)
		if !haveLast || rn.Dim != lastDim || !(rn.Range == lastRange) {
			lastDim = rn.Dim
			lastRange = rn.Range
			haveLast = true
		}
	}
	return all, kept
}

func containsStrictly(outer, inner Range) bool {
	if outer == inner {
		return false
	}
	return outer.Start <= inner.Start && inner.End <= outer.End
}
