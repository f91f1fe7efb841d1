package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"

	"github.com/airplayTV/bili-api/controller"
	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/task"
	"github.com/airplayTV/bili-api/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lixiang4u/goWebsocket"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	log.SetOutput(&lumberjack.Logger{
		Filename: filepath.Join(util.AppPath(), "app.log"),
		MaxSize:  100, // megabytes
		MaxAge:   90,  // days
	})
}

func main() {
	var queue = task.NewDownloadQueue()
	queue.OnEvent = controller.BroadcastTaskState
	go queue.Run()

	var port = portUse(8082)
	var app = gin.Default()
	app.Use(gin.Recovery())
	app = newRouterApi(app, queue)
	if err := app.Run(fmt.Sprintf(":%d", port)); err != nil {
		log.Fatalln(err)
	}
}

func newRouterApi(app *gin.Engine, queue *task.DownloadQueue) *gin.Engine {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "PATCH", "GET", "POST", "HEAD"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length", "X-Qrcode-Key"},
		AllowCredentials: true,
	}))

	var websocketController = new(controller.WebsocketController)
	var mediaController = controller.MediaController{Queue: queue}
	var passportController = controller.PassportController{}
	var homeController = controller.HomeController{}

	// websocket
	controller.AppSocket.On(goWebsocket.Event(goWebsocket.EventConnect).String(), websocketController.Connect)
	controller.AppSocket.On("join-group", websocketController.JoinGroup)
	app.GET("/api/wss", func(ctx *gin.Context) {
		controller.AppSocket.Handler(ctx.Writer, ctx.Request, nil)
	})

	// api接口
	app.GET("/", UseRecovery(homeController.Index))
	app.GET("/api/media/info", UseRecovery(mediaController.Info))         // 媒体信息
	app.GET("/api/media/playurl", UseRecovery(mediaController.PlayUrl))   // 播放地址协商
	app.GET("/api/media/danmaku", UseRecovery(mediaController.Danmaku))   // 弹幕
	app.POST("/api/media/push", UseRecovery(mediaController.Push))        // 推送下载任务
	app.GET("/api/task/state", UseRecovery(mediaController.TaskState))    // 下载任务状态
	app.GET("/api/url/parse", UseRecovery(mediaController.ParseUrl))      // 分享链接解析
	app.GET("/api/passport/qrcode", UseRecovery(passportController.QrGenerate)) // 登录二维码
	app.GET("/api/passport/poll", UseRecovery(passportController.QrPoll)) // 扫码状态轮询
	app.POST("/api/passport/logout", UseRecovery(passportController.Logout))
	app.POST("/api/passport/setting", UseRecovery(passportController.Setting)) // 本地偏好

	return app
}

func UseRecovery(h func(ctx *gin.Context)) func(ctx *gin.Context) {
	return func(ctx *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Println("[Err]", err)
				log.Println(fmt.Sprintf("服务器异常：%s", util.ToString(gin.H{
					"method": ctx.Request.Method,
					"path":   ctx.Request.URL.Path,
					"ip":     ctx.RemoteIP(),
					"ips":    ctx.ClientIP(),
					"err":    err,
				})))
				ctx.JSON(http.StatusOK, model.NewError("服务器异常", 500))
			}
		}()
		h(ctx)
	}
}

func portUse(port int) int {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return portUse(port + 1)
	}
	defer func() { _ = listener.Close() }()
	return port
}
