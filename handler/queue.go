package handler

import (
	"fmt"
	"strings"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
)

// BuildQueueJob 把协商结果装配成下载队列任务。
// video/audio至少要有一个，两者都有时追加合并任务，无损则追加flac转封装任务。
func BuildQueueJob(info *model.MediaInfo, ep model.Episode, video, audio *model.StreamCandidate, sel model.Selection, outputDir string) (*model.QueueJob, error) {
	if video == nil && audio == nil {
		return nil, model.ErrNoVideosOrAudios
	}

	var tasks = make([]model.DownloadTask, 0)
	if video != nil {
		tasks = append(tasks, model.DownloadTask{
			Type: model.TaskTypeVideo,
			Urls: candidateUrls(video),
		})
	}
	if audio != nil {
		tasks = append(tasks, model.DownloadTask{
			Type: model.TaskTypeAudio,
			Urls: candidateUrls(audio),
		})
	}
	if video != nil && audio != nil {
		tasks = append(tasks, model.DownloadTask{Type: model.TaskTypeMerge})
	}
	var ext = sel.Ext(video != nil)
	if ext == ".flac" {
		tasks = append(tasks, model.DownloadTask{Type: model.TaskTypeFlac})
	}

	if len(strings.TrimSpace(outputDir)) == 0 {
		outputDir = model.DownloadDir()
	}
	var ts = util.NowUnixMilliTime()
	var title = ep.Title
	if len(title) == 0 {
		title = info.Title
	}
	return &model.QueueJob{
		Id:      fmt.Sprintf("%d-%d", ep.Cid, ts),
		Archive: model.ArchiveInfo{
			Title:     title,
			Cover:     ep.Cover,
			Ts:        ts,
			TsString:  util.FormatDateTime(ts / 1000),
			OutputDir: outputDir,
			Filename:  util.SanitizeFilename(title) + ext,
		},
		Select: sel,
		Tasks:  tasks,
		Output: outputDir,
	}, nil
}

func candidateUrls(c *model.StreamCandidate) []string {
	var urls = []string{c.BaseUrl}
	return append(urls, c.BackupUrls...)
}
