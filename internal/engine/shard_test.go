package engine

import "testing"

func TestShardAcceptAndLookup(t *testing.T) {
	s := NewShard()
	s.accept([]byte("a"), 10)
	s.accept([]byte("a"), 30)
	s.accept([]byte("b"), -5)

	a := s.Lookup("a")
	if a.MinTenths != 10 || a.MaxTenths != 30 || a.SumTenths != 40 || a.Count != 2 {
		t.Fatalf("a = %+v, want min=10 max=30 sum=40 count=2", a)
	}

	b := s.Lookup("b")
	if b.MinTenths != -5 || b.MaxTenths != -5 || b.Count != 1 {
		t.Fatalf("b = %+v", b)
	}

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestShardLookupMissingReturnsIdentity(t *testing.T) {
	s := NewShard()
	got := s.Lookup("missing")
	want := identityMetaInfo()
	if got != want {
		t.Fatalf("Lookup(missing) = %+v, want identity %+v", got, want)
	}
}

func TestShardEnumerate(t *testing.T) {
	s := NewShard()
	s.accept([]byte("x"), 1)
	s.accept([]byte("y"), 2)

	seen := map[string]MetaInfo{}
	s.Enumerate(func(name string, agg MetaInfo) {
		seen[name] = agg
	})

	if len(seen) != 2 {
		t.Fatalf("enumerate saw %d entries, want 2", len(seen))
	}
	if seen["x"].SumTenths != 1 || seen["y"].SumTenths != 2 {
		t.Fatalf("enumerate values wrong: %+v", seen)
	}
}
