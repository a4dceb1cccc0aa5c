package engine

import (
	"fmt"
	"sort"
	"strings"
)

// mergeShards enumerates the union of keys across every shard and
// reduces their per-shard aggregates via MetaInfo.combine, mirroring
// the two-step "union the key sets, then reduce" shape of the
// original's Database::keys()/find() (see original_source/test.cpp).
// Reduction is associative and commutative, so shard iteration order
// never affects min/max/count, nor sum, which is integral tenths.
func mergeShards(shards []*Shard) map[string]MetaInfo {
	merged := make(map[string]MetaInfo)
	for _, shard := range shards {
		shard.Enumerate(func(name string, agg MetaInfo) {
			cur, ok := merged[name]
			if !ok {
				cur = identityMetaInfo()
			}
			cur.combine(agg)
			merged[name] = cur
		})
	}
	return merged
}

// Render produces the single-line report spec.md §6 requires: entries
// `name=min/mean/max` in ascending byte-lexicographic order of name,
// joined by ", " with no trailing separator. Each numeric field carries
// exactly one fractional digit; sum/min/max are integral tenths so the
// division below is exact up to the final float64 rounding at render
// time.
func Render(merged map[string]MetaInfo) string {
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		agg := merged[name]
		fmt.Fprintf(&b, "%s=%s/%s/%s", name, formatTenths(agg.MinTenths), formatMean(agg), formatTenths(agg.MaxTenths))
	}
	return b.String()
}

// formatTenths renders an integer tenths value with exactly one
// fractional digit, e.g. -5 -> "-0.5", 123 -> "12.3".
func formatTenths(tenths int64) string {
	sign := ""
	if tenths < 0 {
		sign = "-"
		tenths = -tenths
	}
	return fmt.Sprintf("%s%d.%d", sign, tenths/10, tenths%10)
}

// formatMean renders sum/count with exactly one fractional digit,
// half-to-even rounding as spec.md §6 permits. Working in tenths keeps
// min/max/count exact; mean alone needs an actual division and so is
// the one field rendered through float64 formatting.
func formatMean(agg MetaInfo) string {
	if agg.Count == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", agg.Mean())
}
