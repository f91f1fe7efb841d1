package handler

import (
	"fmt"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/tidwall/gjson"
)

type BangumiHandler struct {
	Handler
}

func (x BangumiHandler) Init() IMedia {
	x.initClient()
	return x
}

func (x BangumiHandler) Type() model.MediaType {
	return model.MediaTypeBangumi
}

func (x BangumiHandler) Resolve(id string, page int) (*model.MediaInfo, error) {
	var requestUrl string
	if x.hasPrefixFold(id, "ss") {
		requestUrl = fmt.Sprintf("%s%s?season_id=%d", apiHost, seasonInfoPath, util.LeadingNumber(id))
	} else {
		requestUrl = fmt.Sprintf("%s%s?ep_id=%d", apiHost, seasonInfoPath, util.LeadingNumber(id))
	}
	result, err := x.getJson(requestUrl)
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(result); err != nil {
		return nil, err
	}
	// 番剧接口的载荷在result而非data
	var data = result.Get("result")
	var seasonId = data.Get("season_id").Int()

	var info = &model.MediaInfo{
		Id:    seasonId,
		Title: data.Get("title").String(),
		Cover: util.HttpsUrl(data.Get("cover").String()),
		Desc:  data.Get("evaluate").String(),
		Type:  model.MediaTypeBangumi,
		Stat: sparseStat(map[string]gjson.Result{
			"play":     data.Get("stat.views"),
			"danmaku":  data.Get("stat.danmakus"),
			"reply":    data.Get("stat.reply"),
			"like":     data.Get("stat.likes"),
			"coin":     data.Get("stat.coins"),
			"favorite": data.Get("stat.favorite"),
			"share":    data.Get("stat.share"),
		}),
		Upper: model.Upper{
			Avatar: util.HttpsUrl(data.Get("up_info.avatar").String()),
			Name:   data.Get("up_info.uname").String(),
			Mid:    data.Get("up_info.mid").Int(),
		},
	}
	info.Covers = x.parseCovers(data, seasonId)
	info.List = x.parseEpisodes(data)

	return info, nil
}

// parseCovers 正片封面之外，补充同season在seasons列表里的方形封面和横版封面
func (x BangumiHandler) parseCovers(data gjson.Result, seasonId int64) []model.Cover {
	var covers = appendCover(nil, 0, data.Get("cover").String())
	data.Get("seasons").ForEach(func(_, season gjson.Result) bool {
		if season.Get("season_id").Int() != seasonId {
			return true
		}
		covers = appendCover(covers, int64(len(covers)), season.Get("square_cover").String())
		covers = appendCover(covers, int64(len(covers)), season.Get("horizontal_cover_1610").String())
		covers = appendCover(covers, int64(len(covers)), season.Get("horizontal_cover_169").String())
		return false
	})
	return covers
}

func (x BangumiHandler) parseEpisodes(data gjson.Result) []model.Episode {
	var list = make([]model.Episode, 0)
	var seriesTitle = data.Get("season_title").String()
	data.Get("episodes").ForEach(func(_, ep gjson.Result) bool {
		var title = ep.Get("share_copy").String()
		if len(title) == 0 {
			title = fmt.Sprintf("%s %s", seriesTitle, ep.Get("show_title").String())
		}
		list = append(list, model.Episode{
			Title:       title,
			Cover:       util.HttpsUrl(ep.Get("cover").String()),
			Desc:        ep.Get("share_copy").String(),
			Aid:         ep.Get("aid").Int(),
			Bvid:        ep.Get("bvid").String(),
			Cid:         ep.Get("cid").Int(),
			Epid:        ep.Get("ep_id").Int(),
			Ssid:        data.Get("season_id").Int(),
			Duration:    ep.Get("duration").Int() / 1000, // 上游单位是毫秒
			SeriesTitle: seriesTitle,
			Index:       len(list),
		})
		return true
	})
	return list
}
