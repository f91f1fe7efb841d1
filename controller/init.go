package controller

import (
	"time"

	"github.com/eko/gocache/lib/v4/store"
)

// 媒体信息缓存时长，播放地址有签名时效不缓存
var mediaCacheExpiration = store.WithExpiration(time.Minute * 30)
