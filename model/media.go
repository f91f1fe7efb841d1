package model

import (
	"github.com/goccy/go-json"
)

// MediaType 支持解析的媒体类型（视频/番剧/课程/音频/歌单/收藏夹）
type MediaType string

const (
	MediaTypeVideo     MediaType = "video"
	MediaTypeBangumi   MediaType = "bangumi"
	MediaTypeLesson    MediaType = "lesson"
	MediaTypeMusic     MediaType = "music"
	MediaTypeMusicList MediaType = "music_list"
	MediaTypeFavorite  MediaType = "favorite"
)

func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaTypeVideo, MediaTypeBangumi, MediaTypeLesson, MediaTypeMusic, MediaTypeMusicList, MediaTypeFavorite:
		return MediaType(s), nil
	}
	return "", ErrUnsupportedType
}

type Cover struct {
	Id  int64  `json:"id"`
	Url string `json:"url"`
}

type Upper struct {
	Avatar string `json:"avatar,omitempty"`
	Name   string `json:"name,omitempty"`
	Mid    int64  `json:"mid,omitempty"`
}

// SteinGate 互动视频（剧情树）元数据，原样透传上游的剧情图数据
type SteinGate struct {
	EdgeId       int64           `json:"edge_id"`
	GraphVersion int64           `json:"graph_version"`
	StoryList    json.RawMessage `json:"story_list,omitempty"`
	Choices      json.RawMessage `json:"choices,omitempty"`
	HiddenVars   json.RawMessage `json:"hidden_vars,omitempty"`
}

// Episode 统一后的单集信息，不同类型只填与其来源相关的ID字段
type Episode struct {
	Title       string `json:"title"`
	Cover       string `json:"cover"`
	Desc        string `json:"desc"`
	Aid         int64  `json:"aid,omitempty"`
	Bvid        string `json:"bvid,omitempty"`
	Cid         int64  `json:"cid,omitempty"`
	Epid        int64  `json:"epid,omitempty"`
	Ssid        int64  `json:"ssid,omitempty"`
	Sid         int64  `json:"sid,omitempty"`
	Fid         int64  `json:"fid,omitempty"`
	Duration    int64  `json:"duration"` // 秒
	SeriesTitle string `json:"series_title"`
	Index       int    `json:"index"`
}

// MediaInfo 六种上游结构统一后的媒体信息
type MediaInfo struct {
	Id        int64            `json:"id"`
	Title     string           `json:"title"`
	Cover     string           `json:"cover"`
	Covers    []Cover          `json:"covers"`
	Desc      string           `json:"desc"`
	Type      MediaType        `json:"type"`
	Stat      map[string]int64 `json:"stat"`
	Upper     Upper            `json:"upper"`
	List      []Episode        `json:"list"`
	SteinGate *SteinGate       `json:"stein_gate,omitempty"`
}
