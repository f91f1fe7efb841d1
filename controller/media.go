package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/airplayTV/bili-api/handler"
	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/task"
	"github.com/airplayTV/bili-api/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type MediaController struct {
	Queue *task.DownloadQueue
}

// Info 解析媒体信息，GET /api/media/info?id=&type=&page=
func (x MediaController) Info(ctx *gin.Context) {
	var id = strings.TrimSpace(ctx.Query("id"))
	if len(id) == 0 {
		ctx.JSON(http.StatusOK, model.NewError("缺少id参数", http.StatusBadRequest))
		return
	}
	t, err := model.ParseMediaType(ctx.Query("type"))
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(err))
		return
	}
	var page = util.ParseNumber(ctx.Query("page"))

	var resp = model.WithCache(fmt.Sprintf("media:info:%s:%s:%d", t, id, page), mediaCacheExpiration, func() interface{} {
		info, err := handler.Resolve(id, t, page)
		if err != nil {
			return model.NewErrorFrom(err)
		}
		return model.NewSuccess(info)
	})
	ctx.JSON(http.StatusOK, resp)
}

// PlayUrl 协商播放地址，清晰度参数带登录态签名，不走缓存
func (x MediaController) PlayUrl(ctx *gin.Context) {
	t, err := model.ParseMediaType(ctx.Query("type"))
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(err))
		return
	}
	codec, err := model.ParseStreamCodec(ctx.Query("codec"))
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewError("不支持的编码格式", http.StatusBadRequest))
		return
	}
	var ep = episodeFromQuery(ctx)

	result, err := handler.NewPlayUrlHandler(model.IsLogin()).Negotiate(ep, t, codec)
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(err))
		return
	}
	ctx.JSON(http.StatusOK, model.NewSuccess(result))
}

// Danmaku 拉取弹幕，带date时取历史弹幕
func (x MediaController) Danmaku(ctx *gin.Context) {
	var ep = episodeFromQuery(ctx)
	if ep.Cid <= 0 {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(model.ErrMissingIdentifier))
		return
	}
	var h = handler.NewDanmakuHandler(model.IsLogin())
	var buff []byte
	var err error
	if date := strings.TrimSpace(ctx.Query("date")); len(date) > 0 {
		buff, err = h.FetchHistory(ep, date)
	} else {
		buff, err = h.Fetch(ep, model.PreferPbDanmaku())
	}
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(err))
		return
	}
	ctx.Data(http.StatusOK, "text/xml; charset=utf-8", buff)
}

type pushRequest struct {
	Title   string                 `json:"title"`
	Episode model.Episode          `json:"episode"`
	Video   *model.StreamCandidate `json:"video"`
	Audio   *model.StreamCandidate `json:"audio"`
	Select  *model.Selection       `json:"select"`
	Output  string                 `json:"output"`
}

// Push 把协商好的流装配成任务推给下载队列
func (x MediaController) Push(ctx *gin.Context) {
	var req pushRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, model.NewError("请求参数错误", http.StatusBadRequest))
		return
	}
	var sel = model.DefaultSelection()
	if req.Select != nil {
		sel = *req.Select
	}
	job, err := handler.BuildQueueJob(&model.MediaInfo{Title: req.Title}, req.Episode, req.Video, req.Audio, sel, req.Output)
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(err))
		return
	}
	result, err := x.Queue.Push(job)
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewError(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, model.NewSuccess(result))
}

// TaskState 查询下载任务状态，GET /api/task/state?id=
func (x MediaController) TaskState(ctx *gin.Context) {
	var id = strings.TrimSpace(ctx.Query("id"))
	if len(id) == 0 {
		ctx.JSON(http.StatusOK, model.NewError("缺少id参数", http.StatusBadRequest))
		return
	}
	var state = x.Queue.State(id)
	if len(state) == 0 {
		ctx.JSON(http.StatusOK, model.NewError("任务不存在", http.StatusNotFound))
		return
	}
	ctx.JSON(http.StatusOK, model.NewSuccess(gin.H{"id": id, "state": state}))
}

// ParseUrl 分享链接解析，GET /api/url/parse?url=
func (x MediaController) ParseUrl(ctx *gin.Context) {
	var rawUrl = strings.TrimSpace(ctx.Query("url"))
	if len(rawUrl) == 0 {
		ctx.JSON(http.StatusOK, model.NewError("缺少url参数", http.StatusBadRequest))
		return
	}
	id, t, err := handler.NewUrlParseHandler().Parse(rawUrl)
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(err))
		return
	}
	ctx.JSON(http.StatusOK, model.NewSuccess(gin.H{"id": id, "type": t}))
}

func episodeFromQuery(ctx *gin.Context) model.Episode {
	return model.Episode{
		Aid:      cast.ToInt64(ctx.Query("aid")),
		Bvid:     strings.TrimSpace(ctx.Query("bvid")),
		Cid:      cast.ToInt64(ctx.Query("cid")),
		Epid:     cast.ToInt64(ctx.Query("epid")),
		Ssid:     cast.ToInt64(ctx.Query("ssid")),
		Sid:      cast.ToInt64(ctx.Query("sid")),
		Duration: cast.ToInt64(ctx.Query("duration")),
	}
}
