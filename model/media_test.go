package model

import (
	"testing"
)

func TestParseMediaType(t *testing.T) {
	for _, s := range []string{"video", "bangumi", "lesson", "music", "music_list", "favorite"} {
		if _, err := ParseMediaType(s); err != nil {
			t.Errorf("ParseMediaType(%s): %v", s, err)
		}
	}
	if _, err := ParseMediaType("live"); err != ErrUnsupportedType {
		t.Fatalf("err = %v", err)
	}
}

func TestStreamCodecId(t *testing.T) {
	var cases = map[StreamCodec]int{CodecFlv: 0, CodecMp4: 1, CodecDash: 2}
	for codec, id := range cases {
		if codec.Id() != id {
			t.Errorf("%s.Id() = %d", codec, codec.Id())
		}
	}
	if StreamCodec("hls").Id() != -1 {
		t.Fatal("未知编码应返回-1")
	}
}

func TestParseStreamCodecDefault(t *testing.T) {
	codec, err := ParseStreamCodec("")
	if err != nil || codec != CodecDash {
		t.Fatalf("codec = %s, err = %v", codec, err)
	}
	if _, err = ParseStreamCodec("webm"); err == nil {
		t.Fatal("应报不支持")
	}
}

func TestSelectionExt(t *testing.T) {
	var sel = DefaultSelection()
	if got := sel.Ext(true); got != ".mp4" {
		t.Fatalf("ext = %s", got)
	}
	if got := sel.Ext(false); got != ".m4a" {
		t.Fatalf("ext = %s", got)
	}
	sel.Ads = QualityFlac
	if got := sel.Ext(false); got != ".flac" {
		t.Fatalf("ext = %s", got)
	}
	sel = DefaultSelection()
	sel.Fmt = CodecFlv.Id()
	if got := sel.Ext(true); got != ".flv" {
		t.Fatalf("ext = %s", got)
	}
}
