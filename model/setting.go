package model

import "github.com/spf13/cast"

// Setting 持久化的会话/偏好配置（登录cookie、弹幕格式偏好、下载目录等）
type Setting struct {
	Id    int    `json:"id"`
	Key   string `json:"key" gorm:"uniqueIndex"`
	Value string `json:"value"`
}

func (Setting) TableName() string {
	return "setting"
}

const (
	SettingSessData        = "sess_data"
	SettingBuvid           = "buvid3"
	SettingPreferPbDanmaku = "prefer_pb_danmaku"
	SettingDownloadDir     = "download_dir"
)

func GetSetting(key string) string {
	var m Setting
	if err := DB().Table(m.TableName()).Where("key = ?", key).Find(&m).Error; err != nil {
		return ""
	}
	return m.Value
}

func SetSetting(key, value string) error {
	var m Setting
	if err := DB().Table(m.TableName()).Where("key = ?", key).Find(&m).Error; err != nil {
		return err
	}
	if m.Id > 0 {
		return DB().Table(m.TableName()).Where("id = ?", m.Id).UpdateColumn("value", value).Error
	}
	return DB().Table(m.TableName()).Create(&Setting{Key: key, Value: value}).Error
}

// SessData 登录cookie，为空表示未登录
func SessData() string {
	return GetSetting(SettingSessData)
}

func IsLogin() bool {
	return len(SessData()) > 0
}

// PreferPbDanmaku 是否优先使用分段protobuf弹幕接口（默认是）
func PreferPbDanmaku() bool {
	var v = GetSetting(SettingPreferPbDanmaku)
	if len(v) == 0 {
		return true
	}
	return cast.ToBool(v)
}

func DownloadDir() string {
	var v = GetSetting(SettingDownloadDir)
	if len(v) == 0 {
		return "downloads"
	}
	return v
}
