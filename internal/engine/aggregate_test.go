package engine

import "testing"

func TestMetaInfoUpdate(t *testing.T) {
	m := identityMetaInfo()
	for _, v := range []int64{10, -5, 30, 5} {
		m.update(v)
	}
	if m.MinTenths != -5 {
		t.Errorf("min = %d, want -5", m.MinTenths)
	}
	if m.MaxTenths != 30 {
		t.Errorf("max = %d, want 30", m.MaxTenths)
	}
	if m.SumTenths != 40 {
		t.Errorf("sum = %d, want 40", m.SumTenths)
	}
	if m.Count != 4 {
		t.Errorf("count = %d, want 4", m.Count)
	}
	if got := m.Mean(); got != 1.0 {
		t.Errorf("mean = %v, want 1.0", got)
	}
}

func TestMetaInfoCombineIsAssociativeAndCommutative(t *testing.T) {
	a := identityMetaInfo()
	a.update(10)
	a.update(-20)

	b := identityMetaInfo()
	b.update(30)

	c := identityMetaInfo()
	c.update(5)

	ab := a
	ab.combine(b)
	abc1 := ab
	abc1.combine(c)

	bc := b
	bc.combine(c)
	abc2 := a
	abc2.combine(bc)

	if abc1 != abc2 {
		t.Fatalf("combine not associative: %+v vs %+v", abc1, abc2)
	}

	ba := b
	ba.combine(a)
	if ba.MinTenths != ab.MinTenths || ba.MaxTenths != ab.MaxTenths || ba.SumTenths != ab.SumTenths || ba.Count != ab.Count {
		t.Fatalf("combine not commutative: %+v vs %+v", ba, ab)
	}
}

func TestMetaInfoCombineWithEmptyIsIdentity(t *testing.T) {
	a := identityMetaInfo()
	a.update(42)

	empty := identityMetaInfo()
	got := a
	got.combine(empty)
	if got != a {
		t.Fatalf("combine with identity changed value: %+v vs %+v", got, a)
	}
}
