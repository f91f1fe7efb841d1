package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType   = errors.New("不支持的媒体类型")
	ErrMissingIdentifier = errors.New("缺少必要的媒体ID")
	ErrNoStreamFound     = errors.New("未找到可用的播放流")
	ErrNoVideosOrAudios  = errors.New("没有可下载的音视频流")
)

// UpstreamError 上游接口返回的错误码和信息，原样传递
type UpstreamError struct {
	Code    int64
	Message string
}

func (x *UpstreamError) Error() string {
	return fmt.Sprintf("上游接口错误(%d)：%s", x.Code, x.Message)
}

func NewUpstreamError(code int64, message string) error {
	return &UpstreamError{Code: code, Message: message}
}
