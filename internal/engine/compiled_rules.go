package engine

// RuleMeta is the per-rule metadata extracted once at compile time,
// kept in a slice parallel to CompiledRules.Rules.
type RuleMeta struct {
	Required []string
	Optional []string
	Buckets  BucketMask
	Deps     DimensionSet
	Priority int
}

// ruleIndex groups rule ids by activation gate: rules with no bucket
// requirement are always on; the rest are indexed by each bucket bit
// they require.
type ruleIndex struct {
	alwaysOn []int
	byBucket map[BucketMask][]int
}

// CompiledRules is the read-only, indexed output of the rule compiler
// (spec section 4.1). Construction is deterministic and allocation-only:
// no regex is recompiled per run and Rule references remain stable for
// the engine's lifetime.
type CompiledRules struct {
	Rules []Rule
	Meta  []RuleMeta
	index ruleIndex
}

// Compile builds a CompiledRules from a static rule list, in insertion
// order. The caller owns the backing rules slice's lifetime; Compile
// does not mutate it.
func Compile(rules []Rule) *CompiledRules {
	cr := &CompiledRules{
		Rules: rules,
		Meta:  make([]RuleMeta, len(rules)),
		index: ruleIndex{byBucket: make(map[BucketMask][]int, len(bucketBits))},
	}
	for i, r := range rules {
		cr.Meta[i] = RuleMeta{
			Required: r.Required,
			Optional: r.Optional,
			Buckets:  r.Buckets,
			Deps:     r.Deps,
			Priority: r.Priority,
		}
		if r.Buckets == 0 {
			cr.index.alwaysOn = append(cr.index.alwaysOn, i)
			continue
		}
		for _, bit := range bucketBits {
			if r.Buckets.Has(bit) {
				cr.index.byBucket[bit] = append(cr.index.byBucket[bit], i)
			}
		}
	}
	return cr
}

// activeRuleIDs computes the active rule set for a given TriggerInfo,
// per spec section 4.3: start from always_on, union in each present
// bucket's rules, then drop rules whose phrase gates fail.
func (cr *CompiledRules) activeRuleIDs(trig TriggerInfo) []int {
	seen := make(map[int]bool)
	var ids []int
	add := func(id int) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, id := range cr.index.alwaysOn {
		add(id)
	}
	for _, bit := range bucketBits {
		if trig.Buckets.Has(bit) {
			for _, id := range cr.index.byBucket[bit] {
				add(id)
			}
		}
	}

	active := ids[:0]
	for _, id := range ids {
		meta := cr.Meta[id]
		if !phraseSetContained(meta.Required, trig.Phrases) {
			continue
		}
		if len(meta.Optional) > 0 && !phraseSetIntersects(meta.Optional, trig.Phrases) {
			continue
		}
		active = append(active, id)
	}
	return active
}

func phraseSetContained(required []string, have map[string]bool) bool {
	for _, p := range required {
		if !have[p] {
			return false
		}
	}
	return true
}

func phraseSetIntersects(optional []string, have map[string]bool) bool {
	for _, p := range optional {
		if have[p] {
			return true
		}
	}
	return false
}
