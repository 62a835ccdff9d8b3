package engine

import (
	"slices"
	"strings"
	"time"
)

// partialMatch is one in-progress attempt to satisfy a Rule's pattern
// sequence: next_idx is the index of the next Pattern to match, position
// is the end offset of the last consumed node, and route is the ordered
// list of consumed Nodes.
type partialMatch struct {
	ruleID  int
	nextIdx int
	pos     int
	route   []Node
}

// Parser runs the saturation algorithm (spec section 4.4) over a single
// input against a CompiledRules table.
type Parser struct {
	input    string
	compiled *CompiledRules
	active   []int
	seen     map[NodeKey]bool
	stash    Stash
}

// NewParser selects the active rule subset for input via the trigger
// scanner and activation gates, and prepares an empty stash.
func NewParser(input string, compiled *CompiledRules) *Parser {
	trig := Scan(input)
	return &Parser{
		input:    input,
		compiled: compiled,
		active:   compiled.activeRuleIDs(trig),
		seen:     make(map[NodeKey]bool),
	}
}

// lookupAnywhere finds every match of pattern p anywhere in the input
// (for regex patterns) or stash (for predicate patterns), used to seed
// a rule's first pattern.
func (pr *Parser) lookupAnywhere(p Pattern) []Node {
	if p.isRegex() {
		var out []Node
		for _, loc := range p.Regex.FindAllStringSubmatchIndex(pr.input, -1) {
			out = append(out, regexNode(pr.input, loc))
		}
		return out
	}
	var out []Node
	for _, n := range pr.stash.all() {
		if p.Predicate(n.Token) {
			out = append(out, n)
		}
	}
	return out
}

// lookupAt finds matches of pattern p anchored exactly at position pos.
func (pr *Parser) lookupAt(p Pattern, pos int) []Node {
	if p.isRegex() {
		var out []Node
		rest := pr.input[pos:]
		for _, loc := range p.Regex.FindAllStringSubmatchIndex(rest, -1) {
			if loc[0] != 0 {
				continue
			}
			shifted := make([]int, len(loc))
			for i, v := range loc {
				if v < 0 {
					shifted[i] = v
				} else {
					shifted[i] = v + pos
				}
			}
			out = append(out, regexNode(pr.input, shifted))
		}
		return out
	}
	var out []Node
	for _, n := range pr.stash.startingAt(pos) {
		if p.Predicate(n.Token) {
			out = append(out, n)
		}
	}
	return out
}

func regexNode(input string, loc []int) Node {
	groups := make([]string, 0, len(loc)/2)
	for i := 0; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, strings.ToLower(input[loc[i]:loc[i+1]]))
	}
	return Node{
		Range:    Range{Start: loc[0], End: loc[1]},
		Token:    Token{Dim: DimRegexMatch, Kind: RegexMatchKind{Groups: groups}},
		RuleName: "<regex>",
	}
}

// matchAll runs the DFS extension described in spec section 4.4 for a
// single rule, returning every Node its production function built from
// a complete route. Stack ordering pushes matching nodes in reverse so
// popping yields forward iteration order, making enumeration
// deterministic.
func (pr *Parser) matchAll(ruleID int) []Node {
	rule := pr.compiled.Rules[ruleID]
	if len(rule.Pattern) == 0 {
		return nil
	}

	var stack []partialMatch
	for _, hit := range pr.lookupAnywhere(rule.Pattern[0]) {
		stack = append(stack, partialMatch{ruleID: ruleID, nextIdx: 1, pos: hit.Range.End, route: []Node{hit}})
	}

	var produced []Node
	for len(stack) > 0 {
		pm := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if pm.nextIdx >= len(rule.Pattern) {
			tokens := make([]Token, len(pm.route))
			for i, n := range pm.route {
				tokens[i] = n.Token
			}
			tok, ok := rule.Produce(tokens)
			if !ok {
				continue
			}
			produced = append(produced, Node{
				Range:    Range{Start: pm.route[0].Range.Start, End: pm.route[len(pm.route)-1].Range.End},
				Token:    tok,
				RuleName: rule.Name,
				Evidence: flattenEvidence(pm.route),
			})
			continue
		}

		hits := pr.lookupAt(rule.Pattern[pm.nextIdx], pm.pos)
		for i := len(hits) - 1; i >= 0; i-- {
			hit := hits[i]
			route := make([]Node, len(pm.route)+1)
			copy(route, pm.route)
			route[len(pm.route)] = hit
			stack = append(stack, partialMatch{ruleID: ruleID, nextIdx: pm.nextIdx + 1, pos: hit.Range.End, route: route})
		}
	}
	return produced
}

func flattenEvidence(route []Node) []string {
	var out []string
	for _, n := range route {
		out = append(out, n.RuleName)
		out = append(out, n.Evidence...)
	}
	return out
}

// applyOnce applies every rule id in ids once, merging newly produced
// (by NodeKey) nodes into the stash, and returns how many were added.
func (pr *Parser) applyOnce(ids []int) int {
	produced := 0
	for _, id := range ids {
		for _, n := range pr.matchAll(id) {
			key := keyForNode(n)
			if pr.seen[key] {
				continue
			}
			pr.seen[key] = true
			pr.stash.add(n)
			produced++
		}
	}
	return produced
}

func (pr *Parser) depsSatisfied(ruleID int) bool {
	return pr.stash.dimensionSet().satisfies(pr.compiled.Meta[ruleID].Deps)
}

func (pr *Parser) partitionByFirstPattern() (regexRules, predicateRules []int) {
	for _, id := range pr.active {
		rule := pr.compiled.Rules[id]
		if len(rule.Pattern) == 0 {
			continue
		}
		if rule.Pattern[0].isRegex() {
			regexRules = append(regexRules, id)
		} else {
			predicateRules = append(predicateRules, id)
		}
	}
	return regexRules, predicateRules
}

// Saturate runs the fixpoint loop (spec section 4.4): an initial
// regex-only pass, then alternating predicate+regex passes gated by
// dependency satisfaction, until a pass adds nothing.
func (pr *Parser) Saturate() SaturationMetrics {
	start := time.Now()
	regexRules, predicateRules := pr.partitionByFirstPattern()

	var metrics SaturationMetrics
	passStart := time.Now()
	produced := pr.applyOnce(regexRules)
	metrics.InitialRegex = PassMetrics{Duration: time.Since(passStart), Produced: produced}

	for {
		var eligible []int
		for _, id := range predicateRules {
			if pr.depsSatisfied(id) {
				eligible = append(eligible, id)
			}
		}
		for _, id := range regexRules {
			if pr.depsSatisfied(id) {
				eligible = append(eligible, id)
			}
		}

		passStart = time.Now()
		produced = pr.applyOnce(eligible)
		metrics.Iterations = append(metrics.Iterations, PassMetrics{Duration: time.Since(passStart), Produced: produced})
		if produced == 0 {
			break
		}
	}

	metrics.Total = time.Since(start)
	return metrics
}

// ResolveFiltered resolves every node in the stash against reference,
// sorts and subsumption-filters it, and returns both the full candidate
// list and the filtered result (spec section 4.6).
func (pr *Parser) ResolveFiltered(reference time.Time) (all, kept []ResolvedNode, elapsed time.Duration) {
	start := time.Now()
	priority := make(map[string]int, len(pr.compiled.Rules))
	for i, r := range pr.compiled.Rules {
		priority[r.Name] = pr.compiled.Meta[i].Priority
	}
	all, kept = resolveAndFilter(&pr.stash, priority, reference)
	elapsed = time.Since(start)
	return all, kept, elapsed
}

// Run executes the full pipeline: saturate, then resolve and filter.
func (pr *Parser) Run(reference time.Time) RunResult {
	start := time.Now()
	satMetrics := pr.Saturate()
	all, kept, resolveElapsed := pr.ResolveFiltered(reference)
	return RunResult{
		AllNodes: all,
		Nodes:    kept,
		Metrics: RunMetrics{
			Total:      time.Since(start),
			Saturation: satMetrics,
			Resolve:    resolveElapsed,
		},
	}
}

// ActiveRuleNames returns the sorted, deduplicated names of rules in
// the active set, for verbose-parse output.
func (pr *Parser) ActiveRuleNames() []string {
	names := make([]string, 0, len(pr.active))
	for _, id := range pr.active {
		names = append(names, pr.compiled.Rules[id].Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
