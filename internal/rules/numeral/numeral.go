// Package numeral is the rule corpus for the Numeral dimension: bare
// digit runs, decimal numbers with k/m/b-style magnitude suffixes, and
// a small closed set of spelled-out cardinals and halves.
package numeral

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/az-ai-labs/timexpr/internal/engine"
)

// reDecimal matches an integer or decimal, optionally immediately
// followed (with or without a space) by a magnitude suffix: "1.2M",
// "3 thousand", "42".
var reDecimal = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)(?:\s*(k|m|b|thousand|million|billion)\b)?`)

var suffixMultiplier = map[string]float64{
	"k": 1e3, "thousand": 1e3,
	"m": 1e6, "million": 1e6,
	"b": 1e9, "billion": 1e9,
}

// wordCardinals is the closed set of spelled-out numbers the corpus
// resolves directly; rules composing duration shifts ("two hours")
// depend on this dimension rather than re-parsing words themselves.
var wordCardinals = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50,
	"couple": 2, "few": 3, "several": 4, "dozen": 12,
}

// reWordCardinal accepts the article "a" only when glued to couple/few/
// several/dozen rather than matching it bare, since bare "a" is one of
// the most common words in English and would otherwise flood every
// parse with a spurious numeral.
var reWordCardinal = regexp.MustCompile(`(?i)\b(zero|one|two|three|four|five|six|seven|eight|nine|ten|` +
	`eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|thirty|forty|fifty|` +
	`(?:a\s+)?couple(?:\s+of)?|(?:a\s+)?few|(?:a\s+)?several|(?:a\s+)?dozen)` +
	`(\s+and\s+a\s+half)?\b`)

func digitsProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 3 {
		return engine.Token{}, false
	}
	value, err := strconv.ParseFloat(m.Groups[1], 64)
	if err != nil {
		return engine.Token{}, false
	}
	multipliable := true
	if suffix := m.Groups[2]; suffix != "" {
		mult, known := suffixMultiplier[strings.ToLower(suffix)]
		if !known {
			return engine.Token{}, false
		}
		value *= mult
		multipliable = false
	}
	return engine.Token{
		Dim:  engine.DimNumeral,
		Kind: engine.NumeralKind{Numeral: engine.Numeral{Value: value, Multipliable: multipliable}},
	}, true
}

// normalizeCardinalWord strips a leading article and trailing "of" so
// "a couple of", "a few" and "couple" all key the same map entry.
func normalizeCardinalWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "a ")
	s = strings.TrimPrefix(s, "an ")
	s = strings.TrimSuffix(s, " of")
	return s
}

func wordCardinalProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 2 {
		return engine.Token{}, false
	}
	word := normalizeCardinalWord(m.Groups[1])
	value, known := wordCardinals[word]
	if !known {
		return engine.Token{}, false
	}
	if len(m.Groups) > 2 && m.Groups[2] != "" {
		value += 0.5
	}
	return engine.Token{
		Dim:  engine.DimNumeral,
		Kind: engine.NumeralKind{Numeral: engine.Numeral{Value: value, Multipliable: true}},
	}, true
}

// Rules returns the numeral rule corpus.
func Rules() []engine.Rule {
	return []engine.Rule{
		{
			Name:     "numeral/decimal",
			Pattern:  []engine.Pattern{engine.RegexPattern(reDecimal)},
			Produce:  digitsProduce,
			Buckets:  engine.HasDigits,
			Priority: 10,
		},
		{
			Name:     "numeral/word-cardinal",
			Pattern:  []engine.Pattern{engine.RegexPattern(reWordCardinal)},
			Produce:  wordCardinalProduce,
			Priority: 5,
		},
	}
}
