package model

import (
	"errors"
	"net/http"
)

type Success struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg,omitempty"`
	Data interface{} `json:"data"`
}

type Error struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func NewSuccess(data interface{}) Success {
	return Success{
		Code: http.StatusOK,
		Data: data,
	}
}

func NewError(msg string, code ...int) Error {
	var c = 500
	if len(code) > 0 {
		c = code[0]
	}
	return Error{
		Code: c,
		Msg:  msg,
	}
}

func NewErrorWithData(msg string, data interface{}, code ...int) Error {
	var c = 500
	if len(code) > 0 {
		c = code[0]
	}
	return Error{
		Code: c,
		Msg:  msg,
		Data: data,
	}
}

// NewErrorFrom 错误分类转成对应的HTTP语义状态码
func NewErrorFrom(err error) Error {
	switch err {
	case ErrUnsupportedType, ErrMissingIdentifier:
		return NewError(err.Error(), http.StatusBadRequest)
	case ErrNoStreamFound, ErrNoVideosOrAudios:
		return NewError(err.Error(), http.StatusNotFound)
	}
	// 上游错误把原始错误码一并带回去
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return NewErrorWithData(ue.Error(), map[string]int64{"upstream_code": ue.Code}, http.StatusBadGateway)
	}
	return NewError(err.Error())
}
