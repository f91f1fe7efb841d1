package util

import "github.com/microcosm-cc/bluemonday"

// HtmlToText 去掉上游字段里夹带的html标签（搜索标题、课程FAQ等）
func HtmlToText(html string) string {
	pStrict := bluemonday.StrictPolicy()
	return pStrict.Sanitize(html)
}
