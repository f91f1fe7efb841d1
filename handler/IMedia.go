package handler

import (
	"github.com/airplayTV/bili-api/model"
)

// IMedia 每种媒体类型一个解析器，把各自的上游结构统一成 model.MediaInfo
type IMedia interface {
	Type() model.MediaType
	Resolve(id string, page int) (*model.MediaInfo, error)
}

// MediaHandler 按类型分发，未知类型报错
func MediaHandler(t model.MediaType) (IMedia, error) {
	switch t {
	case model.MediaTypeVideo:
		return VideoHandler{}.Init(), nil
	case model.MediaTypeBangumi:
		return BangumiHandler{}.Init(), nil
	case model.MediaTypeLesson:
		return LessonHandler{}.Init(), nil
	case model.MediaTypeMusic:
		return MusicHandler{}.Init(), nil
	case model.MediaTypeMusicList:
		return MusicListHandler{}.Init(), nil
	case model.MediaTypeFavorite:
		return FavoriteHandler{}.Init(), nil
	}
	return nil, model.ErrUnsupportedType
}

// Resolve 入口：分发 + 解析
func Resolve(id string, t model.MediaType, page int) (*model.MediaInfo, error) {
	h, err := MediaHandler(t)
	if err != nil {
		return nil, err
	}
	return h.Resolve(id, page)
}
