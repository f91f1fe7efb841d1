package handler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/airplayTV/bili-api/model"
)

type PassportHandler struct {
	Handler
}

func NewPassportHandler() PassportHandler {
	var x = PassportHandler{}
	x.initClient()
	return x
}

// QrGenerate 申请扫码登录二维码，返回二维码内容和轮询用的key
func (x PassportHandler) QrGenerate() (string, string, error) {
	result, err := x.getJson(fmt.Sprintf("%s%s", passportHost, qrGeneratePath))
	if err != nil {
		return "", "", err
	}
	if err = upstreamOk(result); err != nil {
		return "", "", err
	}
	return result.Get("data.url").String(), result.Get("data.qrcode_key").String(), nil
}

// QrPoll 轮询扫码状态。code 0=成功 86038=过期 86090=已扫待确认 86101=未扫。
// 成功时从跳转地址里取出SESSDATA并持久化。
func (x PassportHandler) QrPoll(qrcodeKey string) (int64, error) {
	result, err := x.getJson(fmt.Sprintf("%s%s?qrcode_key=%s", passportHost, qrPollPath, url.QueryEscape(qrcodeKey)))
	if err != nil {
		return 0, err
	}
	if err = upstreamOk(result); err != nil {
		return 0, err
	}
	var code = result.Get("data.code").Int()
	if code != 0 {
		return code, nil
	}

	crossUrl, err := url.Parse(result.Get("data.url").String())
	if err != nil {
		return code, err
	}
	var sessData = crossUrl.Query().Get("SESSDATA")
	if len(sessData) == 0 {
		return code, fmt.Errorf("登录成功但没有取到SESSDATA")
	}
	if err = model.SetSetting(model.SettingSessData, sessData); err != nil {
		return code, err
	}
	// buvid3拿不到不影响登录
	if buvid, err := x.Buvid3(); err == nil {
		_ = model.SetSetting(model.SettingBuvid, buvid)
	}
	return code, nil
}

// Logout 先通知上游注销会话，再清空本地登录态。上游注销失败不阻塞本地清理。
func (x PassportHandler) Logout() error {
	if model.IsLogin() {
		_, _ = x.httpClient.Post(fmt.Sprintf("%s%s", passportHost, logoutPath), "")
	}
	return model.SetSetting(model.SettingSessData, "")
}

// Buvid3 设备标识，部分接口风控要求携带
func (x PassportHandler) Buvid3() (string, error) {
	header, _, err := x.httpClient.GetResponse("https://www.bilibili.com", 1)
	if err != nil {
		return "", err
	}
	for _, cookie := range header.Values("Set-Cookie") {
		if strings.HasPrefix(cookie, "buvid3=") {
			var parts = strings.SplitN(strings.TrimPrefix(cookie, "buvid3="), ";", 2)
			return parts[0], nil
		}
	}
	return "", fmt.Errorf("响应里没有buvid3")
}
