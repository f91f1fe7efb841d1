package util

import (
	"time"
)

func NowUnixMilliTime() int64 {
	return time.Now().UnixMilli()
}

func FormatDateTime(timestamp int64, layout ...string) string {
	// layout 2006-01-02 15:04:05
	if len(layout) <= 0 {
		return time.Unix(timestamp, 0).Format("2006-01-02 15:04:05")
	}
	return time.Unix(timestamp, 0).Format(layout[0])
}
