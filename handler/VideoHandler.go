package handler

import (
	"fmt"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

type VideoHandler struct {
	Handler
}

func (x VideoHandler) Init() IMedia {
	x.initClient()
	return x
}

func (x VideoHandler) Type() model.MediaType {
	return model.MediaTypeVideo
}

func (x VideoHandler) Resolve(id string, page int) (*model.MediaInfo, error) {
	var requestUrl string
	if x.hasPrefixFold(id, "bv") {
		requestUrl = fmt.Sprintf("%s%s?bvid=%s", apiHost, videoInfoPath, id)
	} else {
		requestUrl = fmt.Sprintf("%s%s?aid=%d", apiHost, videoInfoPath, util.LeadingNumber(id))
	}
	result, err := x.getJson(requestUrl)
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(result); err != nil {
		return nil, err
	}
	var data = result.Get("data")

	var info = &model.MediaInfo{
		Id:    data.Get("aid").Int(),
		Title: data.Get("title").String(),
		Cover: util.HttpsUrl(data.Get("pic").String()),
		Desc:  data.Get("desc").String(),
		Type:  model.MediaTypeVideo,
		Stat: sparseStat(map[string]gjson.Result{
			"play":     data.Get("stat.view"),
			"danmaku":  data.Get("stat.danmaku"),
			"reply":    data.Get("stat.reply"),
			"like":     data.Get("stat.like"),
			"coin":     data.Get("stat.coin"),
			"favorite": data.Get("stat.favorite"),
			"share":    data.Get("stat.share"),
		}),
		Upper: model.Upper{
			Avatar: util.HttpsUrl(data.Get("owner.face").String()),
			Name:   data.Get("owner.name").String(),
			Mid:    data.Get("owner.mid").Int(),
		},
	}
	info.Covers = appendCover(nil, info.Id, data.Get("pic").String())
	info.List = x.parseEpisodes(data)

	// 互动视频：递归解析剧情图
	if data.Get("rights.is_stein_gate").Int() == 1 {
		gate, err := x.resolveSteinGate(data)
		if err != nil {
			return nil, err
		}
		info.SteinGate = gate
	}

	return info, nil
}

// parseEpisodes 优先合集分集，其次分P，最后整稿件兜底单集
func (x VideoHandler) parseEpisodes(data gjson.Result) []model.Episode {
	var list = make([]model.Episode, 0)
	var seriesTitle = data.Get("title").String()

	if data.Get("ugc_season.sections").Exists() {
		data.Get("ugc_season.sections").ForEach(func(_, section gjson.Result) bool {
			section.Get("episodes").ForEach(func(_, ep gjson.Result) bool {
				list = append(list, model.Episode{
					Title:       ep.Get("title").String(),
					Cover:       util.HttpsUrl(ep.Get("arc.pic").String()),
					Desc:        ep.Get("arc.desc").String(),
					Aid:         ep.Get("aid").Int(),
					Bvid:        ep.Get("bvid").String(),
					Cid:         ep.Get("cid").Int(),
					Duration:    ep.Get("arc.duration").Int(),
					SeriesTitle: data.Get("ugc_season.title").String(),
					Index:       len(list),
				})
				return true
			})
			return true
		})
		if len(list) > 0 {
			return list
		}
	}

	if data.Get("pages").Exists() && len(data.Get("pages").Array()) > 1 {
		data.Get("pages").ForEach(func(_, p gjson.Result) bool {
			list = append(list, model.Episode{
				Title:       p.Get("part").String(),
				Cover:       util.HttpsUrl(data.Get("pic").String()),
				Desc:        data.Get("desc").String(),
				Aid:         data.Get("aid").Int(),
				Bvid:        data.Get("bvid").String(),
				Cid:         p.Get("cid").Int(),
				Duration:    p.Get("duration").Int(),
				SeriesTitle: seriesTitle,
				Index:       len(list),
			})
			return true
		})
		return list
	}

	return append(list, model.Episode{
		Title:       seriesTitle,
		Cover:       util.HttpsUrl(data.Get("pic").String()),
		Desc:        data.Get("desc").String(),
		Aid:         data.Get("aid").Int(),
		Bvid:        data.Get("bvid").String(),
		Cid:         data.Get("cid").Int(),
		Duration:    data.Get("duration").Int(),
		SeriesTitle: seriesTitle,
		Index:       0,
	})
}

// resolveSteinGate cid缺失时先查分P，再取播放器信息里的剧情图版本，最后拉剧情分支
func (x VideoHandler) resolveSteinGate(data gjson.Result) (*model.SteinGate, error) {
	var aid = data.Get("aid").Int()
	var cid = data.Get("cid").Int()
	var err error
	if cid <= 0 {
		if cid, err = x.resolveCid(aid); err != nil {
			return nil, err
		}
	}

	player, err := x.getJsonSigned(fmt.Sprintf("%s%s?aid=%d&cid=%d", apiHost, playerInfoPath, aid, cid))
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(player); err != nil {
		return nil, err
	}
	var graphVersion = player.Get("data.interaction.graph_version").Int()

	edge, err := x.getJson(fmt.Sprintf("%s%s?aid=%d&graph_version=%d&edge_id=%d", apiHost, steinEdgePath, aid, graphVersion, 1))
	if err != nil {
		return nil, err
	}
	if err = upstreamOk(edge); err != nil {
		return nil, err
	}

	return &model.SteinGate{
		EdgeId:       edge.Get("data.edge_id").Int(),
		GraphVersion: graphVersion,
		StoryList:    json.RawMessage(edge.Get("data.story_list").Raw),
		Choices:      json.RawMessage(edge.Get("data.edges.questions.0.choices").Raw),
		HiddenVars:   json.RawMessage(edge.Get("data.hidden_vars").Raw),
	}, nil
}
