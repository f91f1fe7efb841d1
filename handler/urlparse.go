package handler

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/dop251/goja"
	"github.com/tidwall/gjson"
)

var (
	videoUrlRegex    = regexp.MustCompile(`/video/((?i:BV)[0-9A-Za-z]+|(?i:av)\d+)`)
	bangumiUrlRegex  = regexp.MustCompile(`/bangumi/play/((?i:ss|ep)\d+)`)
	lessonUrlRegex   = regexp.MustCompile(`/cheese/play/((?i:ss|ep)\d+)`)
	musicUrlRegex    = regexp.MustCompile(`/audio/((?i:au)\d+)`)
	musicMenuRegex   = regexp.MustCompile(`/audio/((?i:am)\d+)`)
	favoriteUrlRegex = regexp.MustCompile(`\bfid=(\d+)`)
	initialStateRe   = regexp.MustCompile(`window\.__INITIAL_STATE__\s*=\s*(\{.+?\});`)
)

type UrlParseHandler struct {
	Handler
}

func NewUrlParseHandler() UrlParseHandler {
	var x = UrlParseHandler{}
	x.initClient()
	return x
}

// Parse 从分享链接里提取媒体ID和类型，短链先跟一跳展开
func (x UrlParseHandler) Parse(rawUrl string) (string, model.MediaType, error) {
	if id, t, ok := matchMediaUrl(rawUrl); ok {
		return id, t, nil
	}
	if strings.Contains(rawUrl, strings.TrimPrefix(shortHost, "https://")) {
		return x.parseShortUrl(rawUrl)
	}
	return "", "", model.ErrUnsupportedType
}

func matchMediaUrl(rawUrl string) (string, model.MediaType, bool) {
	if m := videoUrlRegex.FindStringSubmatch(rawUrl); m != nil {
		return m[1], model.MediaTypeVideo, true
	}
	if m := bangumiUrlRegex.FindStringSubmatch(rawUrl); m != nil {
		return m[1], model.MediaTypeBangumi, true
	}
	if m := lessonUrlRegex.FindStringSubmatch(rawUrl); m != nil {
		return m[1], model.MediaTypeLesson, true
	}
	if m := musicMenuRegex.FindStringSubmatch(rawUrl); m != nil {
		return m[1], model.MediaTypeMusicList, true
	}
	if m := musicUrlRegex.FindStringSubmatch(rawUrl); m != nil {
		return m[1], model.MediaTypeMusic, true
	}
	if m := favoriteUrlRegex.FindStringSubmatch(rawUrl); m != nil {
		return m[1], model.MediaTypeFavorite, true
	}
	return "", "", false
}

// parseShortUrl 请求落地页，先看og:url，再退到页面脚本里的初始状态
func (x UrlParseHandler) parseShortUrl(rawUrl string) (string, model.MediaType, error) {
	buff, err := x.httpClient.Get(rawUrl)
	if err != nil {
		return "", "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buff))
	if err != nil {
		return "", "", err
	}
	if ogUrl, ok := doc.Find(`meta[property="og:url"]`).Attr("content"); ok {
		// 落地页的og:url偶尔是相对地址，按落地页host补全
		if id, t, matched := matchMediaUrl(util.FillUrlHost(rawUrl, ogUrl)); matched {
			return id, t, nil
		}
	}

	if id, t, ok := x.parseInitialState(string(buff)); ok {
		return id, t, nil
	}
	return "", "", model.ErrUnsupportedType
}

// parseInitialState 页面内嵌的状态对象是JS字面量，丢给goja求值再转JSON取ID
func (x UrlParseHandler) parseInitialState(html string) (string, model.MediaType, bool) {
	var m = initialStateRe.FindStringSubmatch(html)
	if m == nil {
		return "", "", false
	}
	vm := goja.New()
	value, err := vm.RunString(fmt.Sprintf("JSON.stringify(%s)", m[1]))
	if err != nil {
		return "", "", false
	}
	var state = gjson.Parse(value.String())
	if bvid := state.Get("bvid").String(); len(bvid) > 0 {
		return bvid, model.MediaTypeVideo, true
	}
	if aid := state.Get("aid").Int(); aid > 0 {
		return fmt.Sprintf("av%d", aid), model.MediaTypeVideo, true
	}
	if epid := state.Get("epInfo.id").Int(); epid > 0 {
		return fmt.Sprintf("ep%d", epid), model.MediaTypeBangumi, true
	}
	if ssid := state.Get("mediaInfo.season_id").Int(); ssid > 0 {
		return fmt.Sprintf("ss%d", ssid), model.MediaTypeBangumi, true
	}
	return "", "", false
}
