package util

import "github.com/goccy/go-json"

func ToString(v any) string {
	buff, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return ""
	}
	return string(buff)
}

func ToBytes(v any) []byte {
	buff, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return buff
}
