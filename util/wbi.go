package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// wbi签名：key来自nav接口的两张图片地址，按固定表打乱后取前32位做盐
// https://api.bilibili.com/x/web-interface/nav

var mixinKeyEncTab = []int{
	46, 47, 18, 2, 53, 8, 23, 32, 15, 50, 10, 31, 58, 3, 45, 35, 27, 43, 5, 49,
	33, 9, 42, 19, 29, 28, 14, 39, 12, 38, 41, 13, 37, 48, 7, 16, 24, 55, 40,
	61, 26, 17, 0, 1, 60, 51, 30, 4, 22, 25, 54, 21, 56, 59, 6, 63, 57, 62, 11,
	36, 20, 34, 44, 52,
}

var (
	wbiMu        sync.Mutex
	wbiImgKey    string
	wbiSubKey    string
	wbiFetchedAt time.Time
)

var NavUrl = "https://api.bilibili.com/x/web-interface/nav"

func mixinKey(imgKey, subKey string) string {
	var raw = imgKey + subKey
	var sb strings.Builder
	for _, idx := range mixinKeyEncTab {
		if idx < len(raw) {
			sb.WriteByte(raw[idx])
		}
	}
	var s = sb.String()
	if len(s) > 32 {
		s = s[:32]
	}
	return s
}

// SignWbiParams 追加 wts 时间戳并计算 w_rid 签名
func SignWbiParams(params url.Values, imgKey, subKey string, ts int64) url.Values {
	params.Set("wts", fmt.Sprintf("%d", ts))

	var keys = make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// 过滤特殊字符
	var replacer = strings.NewReplacer("!", "", "'", "", "(", "", ")", "", "*", "")
	var parts = make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, url.QueryEscape(replacer.Replace(params.Get(k)))))
	}
	var query = strings.Join(parts, "&")

	var sum = md5.Sum([]byte(query + mixinKey(imgKey, subKey)))
	params.Set("w_rid", hex.EncodeToString(sum[:]))
	return params
}

func wbiKeys(x *HttpClient) (string, string, error) {
	wbiMu.Lock()
	defer wbiMu.Unlock()
	if len(wbiImgKey) > 0 && time.Since(wbiFetchedAt) < time.Hour*12 {
		return wbiImgKey, wbiSubKey, nil
	}
	buff, err := x.Get(NavUrl)
	if err != nil {
		return "", "", err
	}
	var result = gjson.ParseBytes(buff)
	var imgUrl = result.Get("data").Get("wbi_img").Get("img_url").String()
	var subUrl = result.Get("data").Get("wbi_img").Get("sub_url").String()
	if len(imgUrl) == 0 || len(subUrl) == 0 {
		return "", "", fmt.Errorf("获取wbi签名key失败：%s", result.Get("message").String())
	}
	wbiImgKey = strings.TrimSuffix(path.Base(imgUrl), path.Ext(imgUrl))
	wbiSubKey = strings.TrimSuffix(path.Base(subUrl), path.Ext(subUrl))
	wbiFetchedAt = time.Now()
	return wbiImgKey, wbiSubKey, nil
}

// SignWbiUrl 给完整url的query部分追加wbi签名
func SignWbiUrl(x *HttpClient, requestUrl string) (string, error) {
	imgKey, subKey, err := wbiKeys(x)
	if err != nil {
		return "", err
	}
	parsed, err := url.Parse(requestUrl)
	if err != nil {
		return "", err
	}
	parsed.RawQuery = SignWbiParams(parsed.Query(), imgKey, subKey, time.Now().Unix()).Encode()
	return parsed.String(), nil
}
