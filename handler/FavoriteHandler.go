package handler

import (
	"fmt"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/tidwall/gjson"
)

type FavoriteHandler struct {
	Handler
}

func (x FavoriteHandler) Init() IMedia {
	x.initClient()
	return x
}

func (x FavoriteHandler) Type() model.MediaType {
	return model.MediaTypeFavorite
}

func (x FavoriteHandler) Resolve(id string, page int) (*model.MediaInfo, error) {
	var fid = util.LeadingNumber(id)
	result, err := x.getJson(fmt.Sprintf("%s%s?media_id=%d", apiHost, favFolderPath, fid))
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
		// 收藏夹成员都是普通稿件，按视频解析播放地址
		Type: model.MediaTypeVideo,
		Stat: sparseStat(map[string]gjson.Result{
			"play":     data.Get("cnt_info.play"),
			"favorite": data.Get("cnt_info.collect"),
			"danmaku":  data.Get("cnt_info.danmaku"),
			"share":    data.Get("cnt_info.share"),
		}),
		Upper: model.Upper{
			Avatar: util.HttpsUrl(data.Get("upper.face").String()),
			Name:   data.Get("upper.name").String(),
			Mid:    data.Get("upper.mid").Int(),
		},
	}
	info.Covers = appendCover(nil, info.Id, data.Get("cover").String())

	list, err := x.fetchResources(fid, page)
	if err != nil {
		return nil, err
	}
	info.List = list

	return info, nil
}

// fetchResources 按页取收藏内容，每个成员挂上所属收藏夹ID
func (x FavoriteHandler) fetchResources(fid int64, page int) ([]model.Episode, error) {
	if page <= 0 {
		page = 1
	}
	result, err := x.getJson(fmt.Sprintf("%s%s?media_id=%d&pn=%d&ps=%d", apiHost, favResourcePath, fid, page, favPageSize))
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(result); err != nil {
		return nil, err
	}
	var list = make([]model.Episode, 0)
	result.Get("data.medias").ForEach(func(_, media gjson.Result) bool {
		list = append(list, model.Episode{
			Title:       media.Get("title").String(),
			Cover:       util.HttpsUrl(media.Get("cover").String()),
			Desc:        media.Get("intro").String(),
			Aid:         media.Get("id").Int(),
			Bvid:        media.Get("bvid").String(),
			Cid:         media.Get("ugc.first_cid").Int(),
			Fid:         fid,
			Duration:    media.Get("duration").Int(),
			SeriesTitle: media.Get("upper.name").String(),
			Index:       len(list),
		})
		return true
	})
	return list, nil
}
