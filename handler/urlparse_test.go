package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/airplayTV/bili-api/model"
)

func TestParseMediaUrl(t *testing.T) {
	var cases = []struct {
		rawUrl string
		id     string
		t      model.MediaType
	}{
		{"https://www.bilibili.com/video/BV17x411w7KC", "BV17x411w7KC", model.MediaTypeVideo},
		{"https://www.bilibili.com/video/av170001?p=2", "av170001", model.MediaTypeVideo},
		{"https://www.bilibili.com/bangumi/play/ss33073", "ss33073", model.MediaTypeBangumi},
		{"https://www.bilibili.com/bangumi/play/ep327107?from=share", "ep327107", model.MediaTypeBangumi},
		{"https://www.bilibili.com/cheese/play/ep501", "ep501", model.MediaTypeLesson},
		{"https://www.bilibili.com/cheese/play/ss100", "ss100", model.MediaTypeLesson},
		{"https://www.bilibili.com/audio/au13598", "au13598", model.MediaTypeMusic},
		{"https://www.bilibili.com/audio/am66", "am66", model.MediaTypeMusicList},
		{"https://space.bilibili.com/88/favlist?fid=3000", "3000", model.MediaTypeFavorite},
	}
	var h = NewUrlParseHandler()
	for _, c := range cases {
		id, mt, err := h.Parse(c.rawUrl)
		if err != nil {
			t.Errorf("Parse(%s): %v", c.rawUrl, err)
			continue
		}
		if id != c.id || mt != c.t {
			t.Errorf("Parse(%s) = %s/%s, want %s/%s", c.rawUrl, id, mt, c.id, c.t)
		}
	}
}

func TestParseUnknownUrl(t *testing.T) {
	if _, _, err := NewUrlParseHandler().Parse("https://example.com/whatever"); err != model.ErrUnsupportedType {
		t.Fatalf("err = %v", err)
	}
}

func TestParseShortUrlOgMeta(t *testing.T) {
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head>
			<meta property="og:url" content="https://www.bilibili.com/video/BV17x411w7KC/" />
			</head><body></body></html>`)
	}))
	defer server.Close()
	var oldShort = shortHost
	shortHost = server.URL
	defer func() { shortHost = oldShort }()

	id, mt, err := NewUrlParseHandler().Parse(server.URL + "/abc123")
	if err != nil {
		t.Fatal(err)
	}
	if id != "BV17x411w7KC" || mt != model.MediaTypeVideo {
		t.Fatalf("got %s/%s", id, mt)
	}
}

func TestParseShortUrlInitialState(t *testing.T) {
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head><script>
			window.__INITIAL_STATE__ = {aid: 170001, loaded: !0, ts: Date.now()};
			</script></head><body></body></html>`)
	}))
	defer server.Close()
	var oldShort = shortHost
	shortHost = server.URL
	defer func() { shortHost = oldShort }()

	id, mt, err := NewUrlParseHandler().Parse(server.URL + "/xyz")
	if err != nil {
		t.Fatal(err)
	}
	// 页面脚本是JS字面量不是严格JSON，得靠求值拿到aid
	if id != "av170001" || mt != model.MediaTypeVideo {
		t.Fatalf("got %s/%s", id, mt)
	}
}
