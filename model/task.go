package model

type TaskType string

const (
	TaskTypeVideo TaskType = "video"
	TaskTypeAudio TaskType = "audio"
	TaskTypeMerge TaskType = "merge"
	TaskTypeFlac  TaskType = "flac"
)

type DownloadTask struct {
	Type TaskType `json:"type"`
	Urls []string `json:"urls,omitempty"`
}

// Selection 前端选择的 清晰度/编码/音质/格式，未指定时为 -1
type Selection struct {
	Dms int `json:"dms"`
	Cdc int `json:"cdc"`
	Ads int `json:"ads"`
	Fmt int `json:"fmt"`
}

func DefaultSelection() Selection {
	return Selection{Dms: -1, Cdc: -1, Ads: -1, Fmt: -1}
}

// Ext 根据选择项推导输出文件扩展名
func (x Selection) Ext(hasVideo bool) string {
	if !hasVideo {
		if x.Ads == QualityFlac {
			return ".flac"
		}
		return ".m4a"
	}
	if x.Fmt == CodecFlv.Id() {
		return ".flv"
	}
	return ".mp4"
}

type ArchiveInfo struct {
	Title     string `json:"title"`
	Cover     string `json:"cover"`
	Ts        int64  `json:"ts"`      // 毫秒时间戳
	TsString  string `json:"ts_string"`
	OutputDir string `json:"output_dir"`
	Filename  string `json:"filename"`
}

// QueueJob 推送到下载队列的完整任务描述
type QueueJob struct {
	Id      string         `json:"id"`
	Archive ArchiveInfo    `json:"archive"`
	Select  Selection      `json:"select"`
	Tasks   []DownloadTask `json:"tasks"`
	Output  string         `json:"output"`
}
