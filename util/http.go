package util

import (
	"compress/flate"
	"compress/gzip"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-http-utils/headers"
	"github.com/spf13/cast"
)

var reqTimeout = time.Second * 15 // 请求超时时间

// HttpClient 统一的上游请求封装：请求头注入、wbi签名、响应解码
type HttpClient struct {
	headers    map[string]string
	SkipVerify bool
	ProxyUrl   string
	transport  *http.Transport
}

func (x *HttpClient) InitClient() {
	if x.transport == nil {
		x.transport = &http.Transport{}
	}
	if x.SkipVerify {
		x.transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if len(x.ProxyUrl) > 0 {
		tmpUrl, _ := url.Parse(x.ProxyUrl)
		x.transport.Proxy = http.ProxyURL(tmpUrl)
	}
}

func (x *HttpClient) AddHeader(k, v string) {
	if x.headers == nil {
		x.headers = make(map[string]string)
	}
	x.headers[k] = v
}

func (x *HttpClient) SetHeaders(h map[string]string) {
	x.headers = h
}

func (x *HttpClient) GetHeaders() map[string]string {
	return x.headers
}

func (x *HttpClient) addHeaderParams(req *http.Request) {
	for k, v := range x.headers {
		req.Header.Set(k, v)
	}
}

// 解码返回的编码数据，需要根据response头的Content-Encoding确定
func (x *HttpClient) decodeEncoding(resp *http.Response) ([]byte, error) {
	switch resp.Header.Get(headers.ContentEncoding) {
	case "br":
		return io.ReadAll(brotli.NewReader(resp.Body))
	case "gzip":
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		return io.ReadAll(gr)
	case "deflate":
		zr := flate.NewReader(resp.Body)
		defer func() { _ = zr.Close() }()
		return io.ReadAll(zr)
	default:
		return io.ReadAll(resp.Body)
	}
}

func (x *HttpClient) Get(requestUrl string) ([]byte, error) {
	req, err := http.NewRequest("GET", requestUrl, nil)
	if err != nil {
		return nil, err
	}
	x.addHeaderParams(req)
	x.InitClient()
	resp, err := (&http.Client{Timeout: reqTimeout, Transport: x.transport}).Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return x.decodeEncoding(resp)
}

// GetSigned 对query做wbi签名后请求（需要登录态的接口用）
func (x *HttpClient) GetSigned(requestUrl string) ([]byte, error) {
	signedUrl, err := SignWbiUrl(x, requestUrl)
	if err != nil {
		return nil, err
	}
	return x.Get(signedUrl)
}

func (x *HttpClient) Post(requestUrl, rawBody string) ([]byte, error) {
	req, err := http.NewRequest("POST", requestUrl, strings.NewReader(rawBody))
	if err != nil {
		return nil, err
	}
	x.addHeaderParams(req)

	x.InitClient()
	resp, err := (&http.Client{Timeout: reqTimeout, Transport: x.transport}).Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return x.decodeEncoding(resp)
}

// GetResponse 返回响应头和body，限制读取大小
func (x *HttpClient) GetResponse(requestUrl string, size ...int64) (http.Header, []byte, error) {
	var readSize int64                  // 默认读取所有数据
	var maxSize int64 = 1024 * 1024 * 8 // 默认最大返回数据 8MB
	if len(size) >= 1 {
		readSize = size[0]
	}
	if len(size) >= 2 {
		maxSize = size[1]
	}

	req, err := http.NewRequest("GET", requestUrl, nil)
	if err != nil {
		return nil, nil, err
	}
	x.addHeaderParams(req)

	x.InitClient()
	resp, err := (&http.Client{Timeout: reqTimeout, Transport: x.transport}).Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var contentLength = cast.ToInt64(resp.Header.Get(headers.ContentLength))
	if contentLength > maxSize {
		return resp.Header, nil, errors.New(fmt.Sprintf("请求内容太大(%s)", resp.Header.Get(headers.ContentType)))
	}
	if contentLength == 0 {
		// 竟然有服务器不返回 ContentLength
		contentLength = maxSize
	}
	if readSize == 0 {
		readSize = contentLength
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, readSize))
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != 200 {
		if len(resp.Status) > 0 {
			return resp.Header, b, errors.New(resp.Status)
		}
		return resp.Header, b, errors.New(fmt.Sprintf("上游服务器返回错误(%d)", resp.StatusCode))
	}

	return resp.Header, b, nil
}

// Download 流式下载到writer，返回写入字节数
func (x *HttpClient) Download(requestUrl string, w io.Writer) (int64, error) {
	req, err := http.NewRequest("GET", requestUrl, nil)
	if err != nil {
		return 0, err
	}
	x.addHeaderParams(req)
	x.InitClient()
	// 下载大文件不限制整体超时
	resp, err := (&http.Client{Transport: x.transport}).Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != 200 {
		return 0, errors.New(fmt.Sprintf("上游服务器返回错误(%d)", resp.StatusCode))
	}
	return io.Copy(w, resp.Body)
}

func (x *HttpClient) Clone() HttpClient {
	return HttpClient{headers: x.GetHeaders()}
}
