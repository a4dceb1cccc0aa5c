package engine

import "testing"

func TestRenderSortsByteLexicographically(t *testing.T) {
	merged := map[string]MetaInfo{
		"z": {MinTenths: 10, MaxTenths: 10, SumTenths: 10, Count: 1},
		"a": {MinTenths: 20, MaxTenths: 20, SumTenths: 20, Count: 1},
		"m": {MinTenths: 30, MaxTenths: 30, SumTenths: 30, Count: 1},
	}
	got := Render(merged)
	want := "a=2.0/2.0/2.0, m=3.0/3.0/3.0, z=1.0/1.0/1.0"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(map[string]MetaInfo{}); got != "" {
		t.Fatalf("Render(empty) = %q, want \"\"", got)
	}
}

func TestFormatTenths(t *testing.T) {
	cases := map[int64]string{
		0:    "0.0",
		5:    "0.5",
		-5:   "-0.5",
		999:  "99.9",
		-999: "-99.9",
		10:   "1.0",
	}
	for in, want := range cases {
		if got := formatTenths(in); got != want {
			t.Errorf("formatTenths(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderRoundTrip(t *testing.T) {
	merged := map[string]MetaInfo{
		"a": {MinTenths: 10, MaxTenths: 30, SumTenths: 40, Count: 2},
	}
	rendered := Render(merged)
	want := "a=1.0/2.0/3.0"
	if rendered != want {
		t.Fatalf("got %q, want %q", rendered, want)
	}
}
