package timeexpr

import "fmt"

// Fingerprint returns a stable structural string for expr, used as the
// kind_key component of a saturation dedup key. Expressions that differ
// structurally always produce different fingerprints, so distinct
// values are never collapsed. Pointer fields (such as Absolute.Hour or
// MonthPart.Month) print as addresses, so two equal expressions built
// separately with non-nil pointers get different fingerprints and are
// both kept.
//
// This mirrors the source engine's debug-format dedup key: correct but
// not allocation-free.
func Fingerprint(expr Expr) string {
	return fmt.Sprintf("%#v", expr)
}
