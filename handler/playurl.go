package handler

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// PlayUrlHandler 针对某一集协商可下载的播放地址
type PlayUrlHandler struct {
	Handler
	login bool
}

func NewPlayUrlHandler(login bool) PlayUrlHandler {
	var x = PlayUrlHandler{login: login}
	x.initClient()
	return x
}

func (x PlayUrlHandler) Negotiate(ep model.Episode, t model.MediaType, codec model.StreamCodec) (*model.PlayUrlResult, error) {
	if t == model.MediaTypeMusic {
		return x.negotiateMusic(ep)
	}

	path, params, signed, err := x.buildRequest(ep, t, codec)
	if err != nil {
		return nil, err
	}

	fetch := func(qn int64) (gjson.Result, error) {
		var p = cloneValues(params)
		p.Set("qn", cast.ToString(qn))
		var requestUrl = fmt.Sprintf("%s%s?%s", apiHost, path, p.Encode())
		if signed {
			return x.getJsonSigned(requestUrl)
		}
		return x.getJson(requestUrl)
	}

	result, err := fetch(x.defaultQuality())
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(result); err != nil {
		return nil, err
	}
	var data = result.Get("data")
	if !data.Exists() {
		data = result.Get("result")
	}

	// 同一端点族返回三种互斥的载荷形态，按固定优先级识别
	switch {
	case len(data.Get("durls").Array()) > 0:
		return x.parseDurls(data), nil
	case data.Get("durl").Exists():
		return x.parseDurl(data, fetch), nil
	case data.Get("dash").Exists():
		return x.parseDash(data), nil
	}
	return nil, model.ErrNoStreamFound
}

func (x PlayUrlHandler) defaultQuality() int64 {
	if x.login {
		return qnLogin
	}
	return qnAnon
}

func (x PlayUrlHandler) fnvalFor(codec model.StreamCodec) int {
	switch codec {
	case model.CodecFlv:
		return fnvalFlv
	case model.CodecMp4:
		return fnvalMp4
	}
	if x.login {
		return fnvalFull
	}
	return fnvalDefault
}

// buildRequest 按媒体类型组装参数，视频缺cid时走分P接口补齐
func (x PlayUrlHandler) buildRequest(ep model.Episode, t model.MediaType, codec model.StreamCodec) (string, url.Values, bool, error) {
	var params = url.Values{}
	params.Set("fnval", cast.ToString(x.fnvalFor(codec)))
	params.Set("fnver", "0")
	params.Set("fourk", "1")
	switch t {
	case model.MediaTypeVideo:
		var cid = ep.Cid
		if cid <= 0 {
			var err error
			if cid, err = x.resolveCid(ep.Aid); err != nil {
				return "", nil, false, err
			}
		}
		params.Set("avid", cast.ToString(ep.Aid))
		params.Set("cid", cast.ToString(cid))
		return playUrlPath, params, true, nil
	case model.MediaTypeBangumi:
		params.Set("ep_id", cast.ToString(ep.Epid))
		params.Set("season_id", cast.ToString(ep.Ssid))
		return pgcPlayUrlPath, params, false, nil
	case model.MediaTypeLesson:
		params.Set("avid", cast.ToString(ep.Aid))
		params.Set("cid", cast.ToString(ep.Cid))
		params.Set("ep_id", cast.ToString(ep.Epid))
		params.Set("season_id", cast.ToString(ep.Ssid))
		return pugvPlayUrlPath, params, false, nil
	}
	return "", nil, false, model.ErrUnsupportedType
}

// negotiateMusic 音频走独立端点，固定单候选
func (x PlayUrlHandler) negotiateMusic(ep model.Episode) (*model.PlayUrlResult, error) {
	var requestUrl = fmt.Sprintf("%s%s?sid=%d&privilege=2&quality=0", musicHost, musicUrlPath, ep.Sid)
	result, err := x.getJson(requestUrl)
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(result); err != nil {
		return nil, err
	}
	var data = result.Get("data")
	var cdns = make([]string, 0)
	data.Get("cdns").ForEach(func(_, v gjson.Result) bool {
		cdns = append(cdns, util.HttpsUrl(v.String()))
		return true
	})
	if len(cdns) == 0 {
		return nil, model.ErrNoStreamFound
	}
	var quality = int64(-1)
	if v, ok := audioQualityMap[data.Get("type").Int()]; ok {
		quality = v
	}
	return &model.PlayUrlResult{
		Audio: []model.StreamCandidate{{
			Id:         quality,
			BaseUrl:    cdns[0],
			BackupUrls: cdns[1:],
			Size:       data.Get("size").Int(),
		}},
		VideoQualities: make([]int64, 0),
		AudioQualities: []int64{quality},
		Codec:          model.CodecMp4,
		CodecId:        model.CodecMp4.Id(),
	}, nil
}

// parseDurls 一次响应带全清晰度的老格式
func (x PlayUrlHandler) parseDurls(data gjson.Result) *model.PlayUrlResult {
	var video = make([]model.StreamCandidate, 0)
	var qualities = make([]int64, 0)
	data.Get("durls").ForEach(func(_, item gjson.Result) bool {
		var c = durlCandidate(item)
		if c == nil {
			return true
		}
		video = append(video, *c)
		qualities = append(qualities, c.Id)
		return true
	})
	return &model.PlayUrlResult{
		Video:          video,
		VideoQualities: qualities,
		AudioQualities: make([]int64, 0),
		Codec:          model.CodecMp4,
		CodecId:        model.CodecMp4.Id(),
	}
}

// parseDurl 响应只含当前清晰度，其余声明过的清晰度并发补拉，失败的直接丢弃
func (x PlayUrlHandler) parseDurl(data gjson.Result, fetch func(int64) (gjson.Result, error)) *model.PlayUrlResult {
	var accepted = make([]int64, 0)
	data.Get("accept_quality").ForEach(func(_, v gjson.Result) bool {
		accepted = append(accepted, v.Int())
		return true
	})
	var delivered = data.Get("quality").Int()

	// 按声明顺序占位，保证结果顺序与accept_quality一致
	var slots = make([]*model.StreamCandidate, len(accepted))
	var wg sync.WaitGroup
	for i, qn := range accepted {
		if qn == delivered {
			slots[i] = durlCandidate(data)
			continue
		}
		wg.Add(1)
		go func(i int, qn int64) {
			defer wg.Done()
			result, err := fetch(qn)
			if err != nil {
				return
			}
			var d = result.Get("data")
			if !d.Exists() {
				d = result.Get("result")
			}
			if d.Get("durl").Exists() {
				slots[i] = durlCandidate(d)
			}
		}(i, qn)
	}
	wg.Wait()

	var video = make([]model.StreamCandidate, 0)
	var qualities = make([]int64, 0)
	for i, c := range slots {
		if c == nil {
			continue
		}
		video = append(video, *c)
		qualities = append(qualities, accepted[i])
	}

	// accept_format是逗号串，如"flv,mp4"
	var codec = model.CodecMp4
	if strings.Contains(data.Get("accept_format").String(), "flv") {
		codec = model.CodecFlv
	}

	return &model.PlayUrlResult{
		Video:          video,
		VideoQualities: qualities,
		AudioQualities: make([]int64, 0),
		Codec:          codec,
		CodecId:        codec.Id(),
	}
}

// parseDash 音轨顺序固定：普通音轨、杜比第一轨、无损轨
func (x PlayUrlHandler) parseDash(data gjson.Result) *model.PlayUrlResult {
	var dash = data.Get("dash")
	var video = make([]model.StreamCandidate, 0)
	var audio = make([]model.StreamCandidate, 0)

	dash.Get("video").ForEach(func(_, item gjson.Result) bool {
		video = append(video, dashCandidate(item))
		return true
	})
	dash.Get("audio").ForEach(func(_, item gjson.Result) bool {
		audio = append(audio, dashCandidate(item))
		return true
	})
	if item := dash.Get("dolby.audio.0"); item.Exists() {
		audio = append(audio, dashCandidate(item))
	}
	if item := dash.Get("flac.audio"); item.Exists() {
		audio = append(audio, dashCandidate(item))
	}

	// 视频清晰度去重保序，音频不去重
	var videoQualities = make([]int64, 0)
	var seen = make(map[int64]bool)
	for _, c := range video {
		if seen[c.Id] {
			continue
		}
		seen[c.Id] = true
		videoQualities = append(videoQualities, c.Id)
	}
	var audioQualities = make([]int64, 0)
	for _, c := range audio {
		audioQualities = append(audioQualities, c.Id)
	}

	return &model.PlayUrlResult{
		Video:          video,
		Audio:          audio,
		VideoQualities: videoQualities,
		AudioQualities: audioQualities,
		Codec:          model.CodecDash,
		CodecId:        model.CodecDash.Id(),
	}
}

func durlCandidate(data gjson.Result) *model.StreamCandidate {
	var durl = data.Get("durl.0")
	if !durl.Exists() || len(durl.Get("url").String()) == 0 {
		return nil
	}
	return &model.StreamCandidate{
		Id:         data.Get("quality").Int(),
		BaseUrl:    util.HttpsUrl(durl.Get("url").String()),
		BackupUrls: firstBackup(durl),
		Size:       durl.Get("size").Int(),
	}
}

// dashCandidate dash音视频轨的字段命名在两种风格间摇摆，都认
func dashCandidate(item gjson.Result) model.StreamCandidate {
	var baseUrl = item.Get("baseUrl").String()
	if len(baseUrl) == 0 {
		baseUrl = item.Get("base_url").String()
	}
	var backups = make([]string, 0)
	var backupList = item.Get("backupUrl")
	if !backupList.Exists() {
		backupList = item.Get("backup_url")
	}
	backupList.ForEach(func(_, v gjson.Result) bool {
		backups = append(backups, util.HttpsUrl(v.String()))
		return true
	})
	return model.StreamCandidate{
		Id:         item.Get("id").Int(),
		BaseUrl:    util.HttpsUrl(baseUrl),
		BackupUrls: backups,
	}
}

func firstBackup(durl gjson.Result) []string {
	var backup = durl.Get("backup_url.0").String()
	if len(backup) == 0 {
		return nil
	}
	return []string{util.HttpsUrl(backup)}
}

func cloneValues(params url.Values) url.Values {
	var out = url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			out.Add(k, v)
		}
	}
	return out
}
