package handler

import (
	"fmt"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/tidwall/gjson"
)

type MusicListHandler struct {
	Handler
}

func (x MusicListHandler) Init() IMedia {
	x.initClient()
	return x
}

func (x MusicListHandler) Type() model.MediaType {
	return model.MediaTypeMusicList
}

func (x MusicListHandler) Resolve(id string, page int) (*model.MediaInfo, error) {
	var sid = util.LeadingNumber(id)
	result, err := x.getJson(fmt.Sprintf("%s%s?sid=%d", musicHost, musicMenuPath, sid))
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(result); err != nil {
		return nil, err
	}
	var data = result.Get("data")

	var info = &model.MediaInfo{
		Id:    data.Get("menuId").Int(),
		Title: data.Get("title").String(),
		Cover: util.HttpsUrl(data.Get("cover").String()),
		Desc:  data.Get("intro").String(),
		// 歌单的成员一律按单曲解析播放地址
		Type: model.MediaTypeMusic,
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

	list, err := x.fetchSongs(sid)
	if err != nil {
		return nil, err
	}
	info.List = list

	return info, nil
}

// fetchSongs 逐页拉取歌单成员直到翻完
func (x MusicListHandler) fetchSongs(sid int64) ([]model.Episode, error) {
	var list = make([]model.Episode, 0)
	for pn := 1; ; pn++ {
		result, err := x.getJson(fmt.Sprintf("%s%s?sid=%d&pn=%d&ps=%d", musicHost, musicOfMenuPath, sid, pn, musicMenuPageSize))
		if err != nil {
			return nil, err
		}
		if err = upstreamOk(result); err != nil {
			return nil, err
		}
		result.Get("data.data").ForEach(func(_, song gjson.Result) bool {
			list = append(list, model.Episode{
				Title:       song.Get("title").String(),
				Cover:       util.HttpsUrl(song.Get("cover").String()),
				Aid:         song.Get("aid").Int(),
				Bvid:        song.Get("bvid").String(),
				Cid:         song.Get("cid").Int(),
				Sid:         song.Get("id").Int(),
				Duration:    song.Get("duration").Int(),
				SeriesTitle: song.Get("uname").String(),
				Index:       len(list),
			})
			return true
		})
		if int64(pn) >= result.Get("data.pageCount").Int() {
			break
		}
	}
	return list, nil
}
