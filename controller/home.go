package controller

import (
	"net/http"

	"github.com/airplayTV/bili-api/model"
	"github.com/gin-gonic/gin"
)

type HomeController struct {
}

func (x HomeController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, model.NewSuccess(map[string]interface{}{
		"login":  model.IsLogin(),
		"header": ctx.Request.Header,
	}))
}
