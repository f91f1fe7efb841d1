package handler

import (
	"bytes"
	"compress/flate"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/airplayTV/bili-api/model"
	"google.golang.org/protobuf/encoding/protowire"
)

func appendDanmakuElem(seg []byte, id int64, progress int64, content, midHash string) []byte {
	var elem []byte
	elem = protowire.AppendTag(elem, 1, protowire.VarintType)
	elem = protowire.AppendVarint(elem, uint64(id))
	elem = protowire.AppendTag(elem, 2, protowire.VarintType)
	elem = protowire.AppendVarint(elem, uint64(progress))
	elem = protowire.AppendTag(elem, 3, protowire.VarintType)
	elem = protowire.AppendVarint(elem, 1) // mode
	elem = protowire.AppendTag(elem, 4, protowire.VarintType)
	elem = protowire.AppendVarint(elem, 25) // fontsize
	elem = protowire.AppendTag(elem, 5, protowire.VarintType)
	elem = protowire.AppendVarint(elem, 16777215) // color
	elem = protowire.AppendTag(elem, 6, protowire.BytesType)
	elem = protowire.AppendString(elem, midHash)
	elem = protowire.AppendTag(elem, 7, protowire.BytesType)
	elem = protowire.AppendString(elem, content)
	elem = protowire.AppendTag(elem, 8, protowire.VarintType)
	elem = protowire.AppendVarint(elem, 1700000000) // ctime

	seg = protowire.AppendTag(seg, 1, protowire.BytesType)
	return protowire.AppendBytes(seg, elem)
}

func TestDanmakuSingleSegment(t *testing.T) {
	var requests int
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write(appendDanmakuElem(nil, 7001, 1500, "前方高能", "abcdef"))
	}))
	defer server.Close()
	var oldApi = apiHost
	apiHost = server.URL
	defer func() { apiHost = oldApi }()

	var h = NewDanmakuHandler(false)
	h.sleep = func(time.Duration) { t.Error("单段不应等待") }

	buff, err := h.Fetch(model.Episode{Cid: 279786, Duration: 0}, true)
	if err != nil {
		t.Fatal(err)
	}
	// 时长为0也至少取一段
	if requests != 1 {
		t.Fatalf("requests = %d", requests)
	}
	var doc = string(buff)
	if !strings.Contains(doc, ">前方高能</d>") {
		t.Fatalf("doc = %s", doc)
	}
	// progress毫秒转秒，p属性顺序固定
	if !strings.Contains(doc, `p="1.50000,1,25,16777215,1700000000,0,abcdef,7001"`) {
		t.Fatalf("doc = %s", doc)
	}
	if !strings.Contains(doc, "<chatid>279786</chatid>") {
		t.Fatalf("doc = %s", doc)
	}
}

func TestDanmakuSequentialSegments(t *testing.T) {
	var indexes []string
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		indexes = append(indexes, r.URL.Query().Get("segment_index"))
		_, _ = w.Write(appendDanmakuElem(nil, int64(len(indexes)), int64(len(indexes))*1000, fmt.Sprintf("第%d段", len(indexes)), "x"))
	}))
	defer server.Close()
	var oldApi = apiHost
	apiHost = server.URL
	defer func() { apiHost = oldApi }()

	var sleeps []time.Duration
	var h = NewDanmakuHandler(false)
	h.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	buff, err := h.Fetch(model.Episode{Cid: 1, Duration: 720}, true)
	if err != nil {
		t.Fatal(err)
	}
	// 720秒正好两段，严格顺序
	if len(indexes) != 2 || indexes[0] != "1" || indexes[1] != "2" {
		t.Fatalf("indexes = %v", indexes)
	}
	if len(sleeps) != 1 {
		t.Fatalf("sleeps = %v", sleeps)
	}
	if sleeps[0] < 100*time.Millisecond || sleeps[0] >= 500*time.Millisecond {
		t.Fatalf("sleep = %v", sleeps[0])
	}
	var doc = string(buff)
	if !strings.Contains(doc, "第1段") || !strings.Contains(doc, "第2段") {
		t.Fatalf("doc = %s", doc)
	}
}

func TestDanmakuSegmentCeiling(t *testing.T) {
	var requests int
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write(appendDanmakuElem(nil, 1, 0, "x", "y"))
	}))
	defer server.Close()
	var oldApi = apiHost
	apiHost = server.URL
	defer func() { apiHost = oldApi }()

	var h = NewDanmakuHandler(false)
	h.sleep = func(time.Duration) {}

	// 361秒跨进第二段
	if _, err := h.Fetch(model.Episode{Cid: 1, Duration: 361}, true); err != nil {
		t.Fatal(err)
	}
	if requests != 2 {
		t.Fatalf("requests = %d", requests)
	}
}

func TestDanmakuXmlEscape(t *testing.T) {
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(appendDanmakuElem(nil, 1, 0, `<b>&"quote"`, "z"))
	}))
	defer server.Close()
	var oldApi = apiHost
	apiHost = server.URL
	defer func() { apiHost = oldApi }()

	var h = NewDanmakuHandler(false)
	h.sleep = func(time.Duration) {}
	buff, err := h.Fetch(model.Episode{Cid: 1}, true)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(buff), "<b>") {
		t.Fatalf("未转义: %s", buff)
	}
	if !strings.Contains(string(buff), "&lt;b&gt;&amp;") {
		t.Fatalf("doc = %s", buff)
	}
}

func TestDanmakuLegacy(t *testing.T) {
	var raw = []byte(`<?xml version="1.0" encoding="UTF-8"?><i><d p="1.00,1,25,16777215,1700000000,0,ab,1">旧格式</d></i>`)
	var compressed bytes.Buffer
	zw, _ := flate.NewWriter(&compressed, flate.DefaultCompression)
	_, _ = zw.Write(raw)
	_ = zw.Close()

	var requests int
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != dmLegacyPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		// 旧接口本体就是raw deflate，不带Content-Encoding头
		_, _ = w.Write(compressed.Bytes())
	}))
	defer server.Close()
	var oldApi = apiHost
	apiHost = server.URL
	defer func() { apiHost = oldApi }()

	var h = NewDanmakuHandler(false)
	buff, err := h.Fetch(model.Episode{Cid: 1, Duration: 9999}, false)
	if err != nil {
		t.Fatal(err)
	}
	// 不分段，解压后原样返回
	if requests != 1 {
		t.Fatalf("requests = %d", requests)
	}
	if !bytes.Equal(buff, raw) {
		t.Fatalf("buff = %s", buff)
	}
}

func TestDanmakuHistory(t *testing.T) {
	var gotDate string
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != dmHistoryPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotDate = r.URL.Query().Get("date")
		_, _ = w.Write(appendDanmakuElem(nil, 5, 2000, "历史弹幕", "h"))
	}))
	defer server.Close()
	var oldApi = apiHost
	apiHost = server.URL
	defer func() { apiHost = oldApi }()

	var h = NewDanmakuHandler(true)
	buff, err := h.FetchHistory(model.Episode{Cid: 1}, "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if gotDate != "2024-01-01" {
		t.Fatalf("date = %s", gotDate)
	}
	if !strings.Contains(string(buff), "历史弹幕") {
		t.Fatalf("doc = %s", buff)
	}
}
