package handler

import (
	"fmt"
	"strings"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	"github.com/tidwall/gjson"
)

type LessonHandler struct {
	Handler
}

func (x LessonHandler) Init() IMedia {
	x.initClient()
	return x
}

func (x LessonHandler) Type() model.MediaType {
	return model.MediaTypeLesson
}

func (x LessonHandler) Resolve(id string, page int) (*model.MediaInfo, error) {
	var requestUrl string
	if x.hasPrefixFold(id, "ss") {
		requestUrl = fmt.Sprintf("%s%s?season_id=%d", apiHost, lessonInfoPath, util.LeadingNumber(id))
	} else {
		requestUrl = fmt.Sprintf("%s%s?ep_id=%d", apiHost, lessonInfoPath, util.LeadingNumber(id))
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
		Id:    data.Get("season_id").Int(),
		Title: data.Get("title").String(),
		Cover: util.HttpsUrl(data.Get("cover").String()),
		Desc:  x.parseDesc(data),
		Type:  model.MediaTypeLesson,
		Stat: sparseStat(map[string]gjson.Result{
			"play": data.Get("stat.play"),
		}),
		Upper: model.Upper{
			Avatar: util.HttpsUrl(data.Get("up_info.avatar").String()),
			Name:   data.Get("up_info.uname").String(),
			Mid:    data.Get("up_info.mid").Int(),
		},
	}
	info.Covers = appendCover(nil, info.Id, data.Get("cover").String())
	info.List = x.parseEpisodes(data)

	return info, nil
}

// parseDesc 简介拼上常见问题，富文本压成纯文本
func (x LessonHandler) parseDesc(data gjson.Result) string {
	var parts = make([]string, 0)
	for _, s := range []string{
		data.Get("subtitle").String(),
		data.Get("faq.title").String(),
		util.HtmlToText(data.Get("faq.content").String()),
	} {
		if len(strings.TrimSpace(s)) > 0 {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func (x LessonHandler) parseEpisodes(data gjson.Result) []model.Episode {
	var list = make([]model.Episode, 0)
	var seriesTitle = data.Get("title").String()
	data.Get("episodes").ForEach(func(_, ep gjson.Result) bool {
		list = append(list, model.Episode{
			Title:       ep.Get("title").String(),
			Cover:       util.HttpsUrl(ep.Get("cover").String()),
			Aid:         ep.Get("aid").Int(),
			Cid:         ep.Get("cid").Int(),
			Epid:        ep.Get("id").Int(),
			Ssid:        data.Get("season_id").Int(),
			Duration:    ep.Get("duration").Int(),
			SeriesTitle: seriesTitle,
			Index:       len(list),
		})
		return true
	})
	return list
}
