package engine

import (
	"math"
	"strings"

	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

// NodeKey is the dedup key used by the saturation parser's seen-set: a
// compact representation of "is this node equivalent to one we've
// already kept". Two nodes with identical NodeKeys are collapsed;
// including RuleName is deliberately conservative, avoiding collapsing
// distinct derivations that share the same span and value.
type NodeKey struct {
	Start, End int
	Dim        Dimension
	RuleName   string
	KindKey    string
}

// keyForNode computes the NodeKey for a Node. Numeral kind-keys use the
// bit pattern of the float value so NaN/-0 behave consistently; TimeExpr
// kind-keys use its structural fingerprint; RegexMatch kind-keys use the
// lowercased full match (group 0).
func keyForNode(n Node) NodeKey {
	var kind string
	switch k := n.Token.Kind.(type) {
	case NumeralKind:
		bits := math.Float64bits(k.Numeral.Value)
		kind = "n:" + uitoa(bits)
	case TimeExprKind:
		kind = "t:" + timeexpr.Fingerprint(k.Expr)
	case RegexMatchKind:
		g0 := ""
		if len(k.Groups) > 0 {
			g0 = k.Groups[0]
		}
		kind = "r:" + strings.ToLower(g0)
	}
	return NodeKey{Start: n.Range.Start, End: n.Range.End, Dim: n.Token.Dim, RuleName: n.RuleName, KindKey: kind}
}

func uitoa(v uint64) string {
	const hexDigits = "0123456789abcdef"
	if v == 0 {
		return "0"
	}
	var buf [16]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(buf[i:])
}
