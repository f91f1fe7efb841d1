package handler

import (
	"fmt"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/tidwall/gjson"
)

type MusicHandler struct {
	Handler
}

func (x MusicHandler) Init() IMedia {
	x.initClient()
	return x
}

func (x MusicHandler) Type() model.MediaType {
	return model.MediaTypeMusic
}

func (x MusicHandler) Resolve(id string, page int) (*model.MediaInfo, error) {
	var sid = util.LeadingNumber(id)
	result, err := x.getJson(fmt.Sprintf("%s%s?sid=%d", musicHost, musicInfoPath, sid))
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(result); err != nil {
		return nil, err
	}
	var data = result.Get("data")

	var info = &model.MediaInfo{
		Id:    data.Get("id").Int(),
		Title: data.Get("title").String(),
		Cover: util.HttpsUrl(data.Get("cover").String()),
		Desc:  data.Get("intro").String(),
		Type:  model.MediaTypeMusic,
		Stat: sparseStat(map[string]gjson.Result{
			"play":     data.Get("statistic.play"),
			"favorite": data.Get("statistic.collect"),
			"reply":    data.Get("statistic.comment"),
			"share":    data.Get("statistic.share"),
		}),
		Upper: model.Upper{
			Name: data.Get("uname").String(),
			Mid:  data.Get("uid").Int(),
		},
	}
	info.Covers = appendCover(nil, info.Id, data.Get("cover").String())
	// 单曲没有分集结构，兜底成单元素列表
	info.List = []model.Episode{{
		Title:       info.Title,
		Cover:       info.Cover,
		Desc:        info.Desc,
		Aid:         data.Get("aid").Int(),
		Bvid:        data.Get("bvid").String(),
		Cid:         data.Get("cid").Int(),
		Sid:         data.Get("id").Int(),
		Duration:    data.Get("duration").Int(),
		SeriesTitle: info.Title,
		Index:       0,
	}}

	return info, nil
}
