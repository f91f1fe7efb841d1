package util

import (
	"testing"
)

func TestHttpsUrl(t *testing.T) {
	var cases = map[string]string{
		"http://i0.hdslb.com/bfs/archive/a.jpg":  "https://i0.hdslb.com/bfs/archive/a.jpg",
		"//i0.hdslb.com/bfs/archive/a.jpg":       "https://i0.hdslb.com/bfs/archive/a.jpg",
		"https://i0.hdslb.com/bfs/archive/a.jpg": "https://i0.hdslb.com/bfs/archive/a.jpg",
		"": "",
	}
	for in, want := range cases {
		if got := HttpsUrl(in); got != want {
			t.Errorf("HttpsUrl(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFillUrlHost(t *testing.T) {
	var cases = [][3]string{
		{"https://b23.tv/abc123", "/video/BV1xx411c7mD/", "https://b23.tv/video/BV1xx411c7mD/"},
		{"https://b23.tv/abc123", "https://www.bilibili.com/video/BV1xx411c7mD/", "https://www.bilibili.com/video/BV1xx411c7mD/"},
		{"", "/video/BV1xx411c7mD/", "/video/BV1xx411c7mD/"},
	}
	for _, c := range cases {
		if got := FillUrlHost(c[0], c[1]); got != c[2] {
			t.Errorf("FillUrlHost(%q, %q) = %q, want %q", c[0], c[1], got, c[2])
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename(`a/b\c:d*e?f"g<h>i|j`); got != "a_b_c_d_e_f_g_h_i_j" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeFilename(" 标题\n第二行 "); got != "标题 第二行" {
		t.Fatalf("got %q", got)
	}
}

func TestLeadingNumber(t *testing.T) {
	var cases = map[string]int64{
		"123456":   123456,
		"av170001": 170001,
		"ep327107": 327107,
		"ss33073":  33073,
		"au13598":  13598,
		"abc":      0,
		"":         0,
	}
	for in, want := range cases {
		if got := LeadingNumber(in); got != want {
			t.Errorf("LeadingNumber(%q) = %d, want %d", in, got, want)
		}
	}
}
