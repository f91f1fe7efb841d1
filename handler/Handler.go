package handler

import (
	"fmt"
	"strings"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/tidwall/gjson"
	"github.com/zc310/headers"
)

// Handler 各解析器的公共部分：请求客户端和通用的上游访问逻辑
type Handler struct {
	httpClient util.HttpClient
}

func (x *Handler) initClient() {
	x.httpClient = util.HttpClient{}
	x.httpClient.AddHeader(headers.UserAgent, useragent)
	x.httpClient.AddHeader(headers.Referer, referer)
	var cookies = make([]string, 0)
	if sess := model.SessData(); len(sess) > 0 {
		cookies = append(cookies, fmt.Sprintf("SESSDATA=%s", sess))
	}
	if buvid := model.GetSetting(model.SettingBuvid); len(buvid) > 0 {
		cookies = append(cookies, fmt.Sprintf("buvid3=%s", buvid))
	}
	if len(cookies) > 0 {
		x.httpClient.AddHeader(headers.Cookie, strings.Join(cookies, "; "))
	}
}

// hasPrefixFold 判断id前缀（大小写不敏感），bv/ss前缀决定请求参数形态
func (x *Handler) hasPrefixFold(id, prefix string) bool {
	if len(id) < len(prefix) {
		return false
	}
	return strings.EqualFold(id[:len(prefix)], prefix)
}

// getJson 请求并解析上游json，传输/解码错误原样抛出
func (x *Handler) getJson(requestUrl string) (gjson.Result, error) {
	buff, err := x.httpClient.Get(requestUrl)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(buff), nil
}

func (x *Handler) getJsonSigned(requestUrl string) (gjson.Result, error) {
	buff, err := x.httpClient.GetSigned(requestUrl)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(buff), nil
}

// resolveCid 根据aid查分P列表取第一个cid
func (x *Handler) resolveCid(aid int64) (int64, error) {
	if aid <= 0 {
		return 0, model.ErrMissingIdentifier
	}
	result, err := x.getJson(fmt.Sprintf("%s%s?aid=%d", apiHost, pageListPath, aid))
	if err != nil {
		return 0, err
	}
	if result.Get("code").Int() != 0 {
		return 0, model.NewUpstreamError(result.Get("code").Int(), result.Get("message").String())
	}
	var cid = result.Get("data").Get("0").Get("cid").Int()
	if cid <= 0 {
		return 0, model.ErrMissingIdentifier
	}
	return cid, nil
}

// upstreamOk code非0时转成UpstreamError
func upstreamOk(result gjson.Result) error {
	if result.Get("code").Int() != 0 {
		return model.NewUpstreamError(result.Get("code").Int(), result.Get("message").String())
	}
	return nil
}

// appendCover 空地址的封面直接丢弃
func appendCover(covers []model.Cover, id int64, tmpUrl string) []model.Cover {
	if len(tmpUrl) == 0 {
		return covers
	}
	return append(covers, model.Cover{Id: id, Url: util.HttpsUrl(tmpUrl)})
}

// sparseStat 构造稀疏统计，上游没有的字段不写入
func sparseStat(pairs map[string]gjson.Result) map[string]int64 {
	var stat = make(map[string]int64)
	for name, v := range pairs {
		if v.Exists() {
			stat[name] = v.Int()
		}
	}
	return stat
}
