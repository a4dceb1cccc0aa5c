package engine

import "testing"

func TestParseTenths(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0.0", 0},
		{"1.0", 10},
		{"-0.5", -5},
		{"0.5", 5},
		{"99.9", 999},
		{"-99.9", -999},
		{"12.3", 123},
		{"-12.3", -123},
		{"3.4", 34},
		{"100.1", 1001},
		{"-100.1", -1001},
	}
	for _, c := range cases {
		got := parseTenths([]byte(c.in))
		if got != c.want {
			t.Errorf("parseTenths(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseGeneral(t *testing.T) {
	v, err := parseGeneral([]byte("12.3"))
	if err != nil {
		t.Fatalf("parseGeneral returned error: %v", err)
	}
	if v != 12.3 {
		t.Fatalf("parseGeneral(12.3) = %v, want 12.3", v)
	}

	if _, err := parseGeneral([]byte("not-a-number")); err == nil {
		t.Fatal("parseGeneral should error on invalid input")
	}
}
