package handler

import (
	"bytes"
	"compress/flate"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/airplayTV/bili-api/model"
	"google.golang.org/protobuf/encoding/protowire"
)

// 弹幕分段协议固定每段360秒
const dmSegmentSeconds = 360

// DanmakuHandler 拉取弹幕，分段protobuf和旧版deflate两种线缆格式
type DanmakuHandler struct {
	Handler
	login bool
	sleep func(time.Duration) // 分段之间的限速等待，测试时可替换
}

func NewDanmakuHandler(login bool) DanmakuHandler {
	var x = DanmakuHandler{login: login, sleep: time.Sleep}
	x.initClient()
	return x
}

// Fetch 按偏好选择线缆格式。分段协议输出统一的XML字节；
// 旧版接口解压后原样返回，两条路径的输出形态并不一致，调用方需自行识别。
func (x DanmakuHandler) Fetch(ep model.Episode, preferProto bool) ([]byte, error) {
	if preferProto {
		return x.fetchSegments(ep)
	}
	return x.fetchLegacy(ep)
}

// FetchHistory 取指定日期的历史弹幕，单次请求不分段，date形如2006-01-02
func (x DanmakuHandler) FetchHistory(ep model.Episode, date string) ([]byte, error) {
	var requestUrl = fmt.Sprintf("%s%s?type=1&oid=%d&date=%s", apiHost, dmHistoryPath, ep.Cid, date)
	buff, err := x.httpClient.Get(requestUrl)
	if err != nil {
		return nil, err
	}
	items, err := decodeDanmakuSegment(buff)
	if err != nil {
		return nil, err
	}
	return marshalDanmakuXml(ep.Cid, items)
}

// fetchSegments 逐段顺序拉取，段与段之间随机等待100~500ms防触发限流。
// 全部段解码进同一份文档，不并发。
func (x DanmakuHandler) fetchSegments(ep model.Episode) ([]byte, error) {
	var segments = int(math.Ceil(float64(ep.Duration) / dmSegmentSeconds))
	if segments < 1 {
		segments = 1
	}
	var items = make([]danmakuItem, 0)
	for seg := 1; seg <= segments; seg++ {
		if seg > 1 {
			x.sleep(time.Duration(100+rand.Intn(400)) * time.Millisecond)
		}
		var requestUrl = fmt.Sprintf("%s%s?type=1&oid=%d&segment_index=%d", apiHost, dmSegPath, ep.Cid, seg)
		var buff []byte
		var err error
		if x.login {
			buff, err = x.httpClient.GetSigned(requestUrl)
		} else {
			buff, err = x.httpClient.Get(requestUrl)
		}
		if err != nil {
			return nil, err
		}
		part, err := decodeDanmakuSegment(buff)
		if err != nil {
			return nil, err
		}
		items = append(items, part...)
	}
	return marshalDanmakuXml(ep.Cid, items)
}

// fetchLegacy 旧版接口返回raw deflate压缩的弹幕，解压后即平台原生编码
func (x DanmakuHandler) fetchLegacy(ep model.Episode) ([]byte, error) {
	buff, err := x.httpClient.Get(fmt.Sprintf("%s%s?oid=%d", apiHost, dmLegacyPath, ep.Cid))
	if err != nil {
		return nil, err
	}
	var reader = flate.NewReader(bytes.NewReader(buff))
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}

type danmakuItem struct {
	Id       int64
	Progress int64 // 毫秒
	Mode     int64
	Fontsize int64
	Color    int64
	MidHash  string
	Content  string
	Ctime    int64
	Pool     int64
}

// decodeDanmakuSegment 解析分段弹幕消息：顶层field 1重复出现，每个是一条弹幕
func decodeDanmakuSegment(buff []byte) ([]danmakuItem, error) {
	var items = make([]danmakuItem, 0)
	for len(buff) > 0 {
		num, typ, n := protowire.ConsumeTag(buff)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		buff = buff[n:]
		if num == 1 && typ == protowire.BytesType {
			elem, n := protowire.ConsumeBytes(buff)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			buff = buff[n:]
			item, err := decodeDanmakuElem(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, buff)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		buff = buff[n:]
	}
	return items, nil
}

func decodeDanmakuElem(buff []byte) (danmakuItem, error) {
	var item danmakuItem
	for len(buff) > 0 {
		num, typ, n := protowire.ConsumeTag(buff)
		if n < 0 {
			return item, protowire.ParseError(n)
		}
		buff = buff[n:]
		switch {
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(buff)
			if n < 0 {
				return item, protowire.ParseError(n)
			}
			buff = buff[n:]
			switch num {
			case 1:
				item.Id = int64(v)
			case 2:
				item.Progress = int64(v)
			case 3:
				item.Mode = int64(v)
			case 4:
				item.Fontsize = int64(v)
			case 5:
				item.Color = int64(v)
			case 8:
				item.Ctime = int64(v)
			case 11:
				item.Pool = int64(v)
			}
		case typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(buff)
			if n < 0 {
				return item, protowire.ParseError(n)
			}
			buff = buff[n:]
			switch num {
			case 6:
				item.MidHash = string(v)
			case 7:
				item.Content = string(v)
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, buff)
			if n < 0 {
				return item, protowire.ParseError(n)
			}
			buff = buff[n:]
		}
	}
	return item, nil
}

// marshalDanmakuXml 序列化为平台原生弹幕XML，p属性各字段顺序与官方一致
func marshalDanmakuXml(cid int64, items []danmakuItem) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(fmt.Sprintf("<i><chatserver>chat.bilibili.com</chatserver><chatid>%d</chatid><mission>0</mission><maxlimit>%d</maxlimit><state>0</state><real_name>0</real_name>", cid, len(items)))
	for _, item := range items {
		var attr = fmt.Sprintf("%.5f,%d,%d,%d,%d,%d,%s,%d",
			float64(item.Progress)/1000, item.Mode, item.Fontsize, item.Color, item.Ctime, item.Pool, item.MidHash, item.Id)
		buf.WriteString(`<d p="`)
		_ = xml.EscapeText(&buf, []byte(attr))
		buf.WriteString(`">`)
		_ = xml.EscapeText(&buf, []byte(item.Content))
		buf.WriteString("</d>")
	}
	buf.WriteString("</i>")
	return buf.Bytes(), nil
}
