package controller

import (
	"net/http"

	"github.com/airplayTV/bili-api/handler"
	"github.com/airplayTV/bili-api/model"
	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type PassportController struct {
}

// QrGenerate 生成扫码登录二维码PNG，qrcode_key放响应头
func (x PassportController) QrGenerate(ctx *gin.Context) {
	loginUrl, qrcodeKey, err := handler.NewPassportHandler().QrGenerate()
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(err))
		return
	}
	png, err := qrcode.Encode(loginUrl, qrcode.Medium, 256)
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewError(err.Error()))
		return
	}
	ctx.Header("X-Qrcode-Key", qrcodeKey)
	ctx.Data(http.StatusOK, "image/png", png)
}

// QrPoll 轮询扫码状态，成功时服务端已持久化登录态
func (x PassportController) QrPoll(ctx *gin.Context) {
	code, err := handler.NewPassportHandler().QrPoll(ctx.Query("qrcode_key"))
	if err != nil {
		ctx.JSON(http.StatusOK, model.NewErrorFrom(err))
		return
	}
	ctx.JSON(http.StatusOK, model.NewSuccess(gin.H{"code": code, "login": model.IsLogin()}))
}

func (x PassportController) Logout(ctx *gin.Context) {
	if err := handler.NewPassportHandler().Logout(); err != nil {
		ctx.JSON(http.StatusOK, model.NewError(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, model.NewSuccess(nil))
}

// Setting 读写本地偏好，POST body {"key":"","value":""}
func (x PassportController) Setting(ctx *gin.Context) {
	type Req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	var req Req
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, model.NewError("请求参数错误", http.StatusBadRequest))
		return
	}
	if err := model.SetSetting(req.Key, req.Value); err != nil {
		ctx.JSON(http.StatusOK, model.NewError(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, model.NewSuccess(nil))
}
