package util

import (
	"strconv"
)

func ParseNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// LeadingNumber 跳过前缀字母，提取第一段连续数字，兼容 av123/ep123/ss123 这类ID
func LeadingNumber(s string) int64 {
	var i = 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	var j = i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	n, err := strconv.ParseInt(s[i:j], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
