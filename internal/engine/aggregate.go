package engine

import "math"

// MetaInfo is the running {min, max, sum, count} for one name. Sum is
// kept as a count of tenths rather than a float so that merges across
// shards are bit-exact regardless of reduction order (spec recommends
// this; every input value has exactly one fractional digit, so no
// precision is lost converting to tenths and back).
type MetaInfo struct {
	MinTenths int64
	MaxTenths int64
	SumTenths int64
	Count     uint64
}

// identityMetaInfo is the combine operator's identity element: min=+inf,
// max=-inf so that combining with any real observation replaces both.
func identityMetaInfo() MetaInfo {
	return MetaInfo{
		MinTenths: math.MaxInt64,
		MaxTenths: math.MinInt64,
	}
}

// update folds a single observed value (in tenths) into the aggregate.
func (m *MetaInfo) update(tenths int64) {
	if tenths < m.MinTenths {
		m.MinTenths = tenths
	}
	if tenths > m.MaxTenths {
		m.MaxTenths = tenths
	}
	m.SumTenths += tenths
	m.Count++
}

// combine merges another aggregate into m. Commutative and associative,
// so shard-order and reduction-order never affect min/max/count; sum is
// exact because it is integral.
func (m *MetaInfo) combine(other MetaInfo) {
	if other.Count == 0 {
		return
	}
	if other.MinTenths < m.MinTenths {
		m.MinTenths = other.MinTenths
	}
	if other.MaxTenths > m.MaxTenths {
		m.MaxTenths = other.MaxTenths
	}
	m.SumTenths += other.SumTenths
	m.Count += other.Count
}

// Min, Max, Mean return the float64 values in the original units
// (tenths divided back down), for rendering or consumption by callers
// that don't care about the fixed-point representation.
func (m MetaInfo) Min() float64 { return float64(m.MinTenths) / 10 }
func (m MetaInfo) Max() float64 { return float64(m.MaxTenths) / 10 }
func (m MetaInfo) Mean() float64 {
	if m.Count == 0 {
		return 0
	}
	return float64(m.SumTenths) / 10 / float64(m.Count)
}
