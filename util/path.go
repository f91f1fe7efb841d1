package util

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// AppPath 可执行文件所在目录，日志和数据文件都放这下面
func AppPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func FillUrlHost(hostUrl, pathUrl string) string {
	u2, err := url.Parse(pathUrl)
	if err != nil {
		return pathUrl
	}
	if len(u2.Scheme) > 0 && len(u2.Host) > 0 {
		return pathUrl
	}
	u1, err := url.Parse(hostUrl)
	if err != nil {
		return pathUrl
	}
	if len(u1.Host) == 0 {
		return pathUrl
	}
	u2.Scheme = u1.Scheme
	u2.Host = u1.Host
	return u2.String()
}

// HttpsUrl 不安全协议地址统一改写成https
func HttpsUrl(tmpUrl string) string {
	if strings.HasPrefix(tmpUrl, "http://") {
		return "https://" + strings.TrimPrefix(tmpUrl, "http://")
	}
	if strings.HasPrefix(tmpUrl, "//") {
		return "https:" + tmpUrl
	}
	return tmpUrl
}

// SanitizeFilename 去掉文件名里的路径分隔和非法字符
func SanitizeFilename(name string) string {
	var replacer = strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
		"\n", " ", "\r", " ", "\t", " ",
	)
	return strings.TrimSpace(replacer.Replace(name))
}
