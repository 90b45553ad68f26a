package custid

import "testing"

func TestIncrement(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"WPAY0000", "WPAY0001"},
		{"WPAY0001", "WPAY0002"},
		{"WPAY0099", "WPAY0100"},
		{"WPAY9999", "WPAY10000"},
		{"WPAY10000", "WPAY10001"},
		{"WPAY007", "WPAY0008"},
	}
	for _, tc := range cases {
		got, err := Increment(tc.in)
		if err != nil {
			t.Fatalf("increment %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("increment %q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIncrementMalformed(t *testing.T) {
	if _, err := Increment("WPAY"); err == nil {
		t.Fatalf("expected error for id without numeric suffix")
	}
}

func TestSeed(t *testing.T) {
	if got := Seed("WPAY"); got != "WPAY0000" {
		t.Fatalf("seed: got %q", got)
	}
}
