package engine

import "strconv"

// parseTenths converts a byte range known to match `-?\d+\.\d` into the
// value expressed as an integer count of tenths, e.g. "12.3" -> 123 and
// "-0.5" -> -5.
//
// This is the fast-path parser spec.md's Parser component describes: it
// does not validate the grammar, it trusts it. The chunk-boundary
// algorithm in pipeline.go is what makes that trust safe — every byte
// range handed here always comes from a `;`-to-`\n` split of a
// reassembled line.
//
// Ported from the digit-scan in the teacher's ParseFloat, generalized
// to accumulate as tenths (int64) instead of float64 so shard sums stay
// exact under merge, and to walk from the end the way the original
// C++ parse_digit does (scan the integer part right-to-left, place
// value climbing by 10 each step, stop at '-' or the start of range).
func parseTenths(b []byte) int64 {
	n := len(b)
	frac := int64(b[n-1] - '0')

	var whole int64
	place := int64(1)
	i := n - 3 // skip the trailing digit and the '.'
	for ; i >= 0 && b[i] != '-'; i-- {
		whole += int64(b[i]-'0') * place
		place *= 10
	}

	v := whole*10 + frac
	if i >= 0 && b[i] == '-' {
		return -v
	}
	return v
}

// parseGeneral is the fallback general-purpose parser spec.md §4.1
// allows "for diagnostics" — never used on the hot path. Nothing in the
// pipeline calls it: scanLines hands every value straight to
// parseTenths without checking the grammar.
func parseGeneral(b []byte) (float64, error) {
	return strconv.ParseFloat(string(b), 64)
}
