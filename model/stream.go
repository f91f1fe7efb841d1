package model

// StreamCodec 下载流的容器/编码族
type StreamCodec string

const (
	CodecFlv  StreamCodec = "flv"
	CodecMp4  StreamCodec = "mp4"
	CodecDash StreamCodec = "dash"
)

// 下游任务队列使用的编码数字ID，保持稳定
var codecIdMap = map[StreamCodec]int{
	CodecFlv:  0,
	CodecMp4:  1,
	CodecDash: 2,
}

func (x StreamCodec) Id() int {
	if v, ok := codecIdMap[x]; ok {
		return v
	}
	return -1
}

func ParseStreamCodec(s string) (StreamCodec, error) {
	switch StreamCodec(s) {
	case CodecFlv, CodecMp4, CodecDash:
		return StreamCodec(s), nil
	case "":
		return CodecDash, nil
	}
	return "", ErrUnsupportedType
}

// QualityFlac 无损音轨的清晰度ID
const QualityFlac = 30251

type StreamCandidate struct {
	Id         int64    `json:"id"` // 清晰度
	BaseUrl    string   `json:"base_url"`
	BackupUrls []string `json:"backup_urls,omitempty"`
	Size       int64    `json:"size,omitempty"`
}

type PlayUrlResult struct {
	Video          []StreamCandidate `json:"video,omitempty"`
	Audio          []StreamCandidate `json:"audio,omitempty"`
	VideoQualities []int64           `json:"video_qualities"`
	AudioQualities []int64           `json:"audio_qualities"`
	Codec          StreamCodec       `json:"codec"`
	CodecId        int               `json:"codec_id"`
}
