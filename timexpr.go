// Package timexpr recognizes natural-language temporal expressions —
// dates, times, durations, holidays, and bare numerals — and resolves
// them against a reference instant.
//
// Two API layers are provided:
//
//   - Parse returns []Entity with byte offsets, the resolved value
//     string, and the producing rule's name.
//   - VerboseParse additionally returns a per-pass saturation trace,
//     the active rule set, and every pre-filter candidate, for
//     debugging and the CLI's --explain mode.
//
// All functions are safe for concurrent use by multiple goroutines:
// Parse and VerboseParse build a fresh engine.Parser per call and share
// no mutable state across calls.
package timexpr

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/az-ai-labs/timexpr/internal/engine"
	"github.com/az-ai-labs/timexpr/internal/rules/numeral"
	timerules "github.com/az-ai-labs/timexpr/internal/rules/time"
)

// Dimension classifies a recognized entity.
type Dimension int

const (
	Time Dimension = iota
	Numeral
	Regex
)

var dimensionNames = [...]string{
	Time:    "time",
	Numeral: "numeral",
	Regex:   "regex",
}

// String returns the name of the dimension.
func (d Dimension) String() string {
	if int(d) >= 0 && int(d) < len(dimensionNames) {
		return dimensionNames[d]
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// MarshalJSON encodes the dimension as a JSON string (e.g. "time").
func (d Dimension) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func dimensionFromEngine(d engine.Dimension) Dimension {
	switch d {
	case engine.DimTime:
		return Time
	case engine.DimNumeral:
		return Numeral
	default:
		return Regex
	}
}

// Entity is a recognized and resolved temporal (or numeral) expression.
type Entity struct {
	Name   Dimension `json:"name"`
	Body   string    `json:"body"`
	Value  string    `json:"value"`
	Start  int       `json:"start"`
	End    int       `json:"end"`
	Latent bool      `json:"latent"`
	Rule   string    `json:"rule"`
}

// String returns a debug representation, e.g.
// Time("tomorrow")[0:8]=2013-02-13 00:00:00/2013-02-14 00:00:00.
func (e Entity) String() string {
	name := e.Name.String()
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s(%q)[%d:%d]=%s", name, e.Body, e.Start, e.End, e.Value)
}

// Context carries the caller-supplied configuration for a parse: the
// reference instant every relative expression resolves against. It is
// passed explicitly rather than read from a package-level global, the
// way the teacher's Extract/Parse take an explicit ref time.Time.
type Context struct {
	Reference time.Time
}

// maxInputBytes is the maximum input length Parse will process.
// Inputs exceeding this are returned with no results.
const maxInputBytes = 1 << 20 // 1 MiB

func corpus() []engine.Rule {
	var all []engine.Rule
	all = append(all, numeral.Rules()...)
	all = append(all, timerules.Rules()...)
	return all
}

var compiled = engine.Compile(corpus())

// Parse recognizes every temporal/numeral expression in s and resolves
// it against ctx.Reference. Returns entities ordered by dimension, then
// by Start offset, already subsumption-filtered per spec section 4.6, plus the total
// elapsed duration. Parsing never fails: an input with no matches
// returns an empty slice.
func Parse(s string, ctx Context) ([]Entity, time.Duration) {
	if s == "" || len(s) > maxInputBytes {
		return nil, 0
	}
	p := engine.NewParser(s, compiled)
	result := p.Run(ctx.Reference)
	return withBody(s, toEntities(result.Nodes)), result.Metrics.Total
}

// VerboseResult is Parse's output plus a full diagnostic trace: per-pass
// saturation counts, the active rule set, and every candidate node
// before the subsumption filter.
type VerboseResult struct {
	Entities      []Entity
	AllCandidates []Entity
	ActiveRules   []string
	Metrics       engine.RunMetrics
}

// VerboseParse runs the same pipeline as Parse but additionally
// reports the saturation trace, active rule names, and pre-filter
// candidates, for the CLI's --explain mode and TIMEXPR_TRACE logging.
func VerboseParse(s string, ctx Context) VerboseResult {
	if s == "" || len(s) > maxInputBytes {
		return VerboseResult{}
	}
	p := engine.NewParser(s, compiled)
	result := p.Run(ctx.Reference)
	return VerboseResult{
		Entities:      withBody(s, toEntities(result.Nodes)),
		AllCandidates: withBody(s, toEntities(result.AllNodes)),
		ActiveRules:   p.ActiveRuleNames(),
		Metrics:       result.Metrics,
	}
}

func toEntities(nodes []engine.ResolvedNode) []Entity {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Entity, len(nodes))
	for i, n := range nodes {
		out[i] = Entity{
			Name:   dimensionFromEngine(n.Dim),
			Value:  n.Value,
			Start:  n.Range.Start,
			End:    n.Range.End,
			Latent: n.Latent,
			Rule:   n.RuleName,
		}
	}
	return out
}

// withBody fills in each entity's Body from the original input; Parse
// defers this until after filtering so it only slices kept entities.
func withBody(s string, entities []Entity) []Entity {
	for i := range entities {
		entities[i].Body = s[entities[i].Start:entities[i].End]
	}
	return entities
}

// Times returns all Time-dimension resolved values found in s.
func Times(s string, ctx Context) []string {
	return filterValues(s, ctx, Time)
}

// Durations returns all Time-dimension resolved values found in s that
// a duration rule produced ("time/in-duration" or "time/duration-*").
func Durations(s string, ctx Context) []string {
	entities, _ := Parse(s, ctx)
	var out []string
	for _, e := range entities {
		if e.Name == Time && isDurationRule(e.Rule) {
			out = append(out, e.Value)
		}
	}
	return out
}

// Numerals returns all Numeral-dimension resolved values found in s.
func Numerals(s string, ctx Context) []string {
	return filterValues(s, ctx, Numeral)
}

func filterValues(s string, ctx Context, dim Dimension) []string {
	entities, _ := Parse(s, ctx)
	var out []string
	for _, e := range entities {
		if e.Name == dim {
			out = append(out, e.Value)
		}
	}
	return out
}

func isDurationRule(rule string) bool {
	switch rule {
	case "time/duration-from-now", "time/duration-ago", "time/duration-hence", "time/in-duration":
		return true
	default:
		return false
	}
}
