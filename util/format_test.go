package util

import (
	"testing"
)

func TestParseNumber(t *testing.T) {
	var cases = map[string]int{
		"12":  12,
		"0":   0,
		"-3":  -3,
		"abc": 0,
		"":    0,
	}
	for in, want := range cases {
		if got := ParseNumber(in); got != want {
			t.Errorf("ParseNumber(%q) = %d, want %d", in, got, want)
		}
	}
}
