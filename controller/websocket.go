package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/lixiang4u/goWebsocket"
	"github.com/mitchellh/mapstructure"
)

var AppSocket = goWebsocket.NewWebsocketManager(true)

type WebsocketController struct {
}

func (x WebsocketController) Connect(data goWebsocket.EventCtx) bool {
	AppSocket.Send(data.From, goWebsocket.EventCtx{
		Event: data.Event,
		Data:  gin.H{"code": 200, "msg": "socket已连接", "client_id": data.From},
	})
	return true
}

func (x WebsocketController) JoinGroup(data goWebsocket.EventCtx) bool {
	type Req struct {
		Group string `json:"group"`
	}
	var req Req
	_ = mapstructure.Decode(data.Data, &req)
	if len(req.Group) <= 0 {
		return false
	}
	AppSocket.JoinGroup(data.From, req.Group)
	AppSocket.Send(data.From, goWebsocket.EventCtx{
		Event: data.Event,
		Data:  gin.H{"code": 200, "msg": "已加入分组", "client_id": data.From, "group": req.Group},
	})
	return true
}

// BroadcastTaskState 下载任务状态变化推给订阅的客户端
func BroadcastTaskState(jobId, state, message string) {
	AppSocket.SendToGroup("task", gin.H{
		"event":   "task-state",
		"id":      jobId,
		"state":   state,
		"message": message,
	})
}
