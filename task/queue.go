package task

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/airplayTV/bili-api/model"
	"github.com/airplayTV/bili-api/util"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DownloadQueue 顺序执行的下载队列，逐任务落盘、合并、转封装
type DownloadQueue struct {
	jobs    chan *model.QueueJob
	states  sync.Map // jobId -> state
	client  util.HttpClient
	OnEvent func(jobId, state, message string)
}

func NewDownloadQueue() *DownloadQueue {
	var client = util.HttpClient{}
	// CDN校验Referer，不带会403
	client.SetHeaders(map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
		"Referer":    "https://www.bilibili.com",
	})
	return &DownloadQueue{jobs: make(chan *model.QueueJob, 64), client: client}
}

// Push 入队后立即返回，真正执行在Run的循环里
func (x *DownloadQueue) Push(job *model.QueueJob) (map[string]string, error) {
	select {
	case x.jobs <- job:
		x.setState(job, "queued", "")
		return map[string]string{"id": job.Id, "state": "queued"}, nil
	default:
		return nil, fmt.Errorf("下载队列已满")
	}
}

func (x *DownloadQueue) State(jobId string) string {
	if v, ok := x.states.Load(jobId); ok {
		return v.(string)
	}
	return ""
}

func (x *DownloadQueue) Run() {
	for job := range x.jobs {
		x.process(job)
	}
}

func (x *DownloadQueue) process(job *model.QueueJob) {
	defer func() {
		if err := recover(); err != nil {
			log.Println("[process.recover]", err)
			x.setState(job, "failed", fmt.Sprintf("%v", err))
		}
	}()
	x.setState(job, "running", "")

	if err := x.runTasks(job); err != nil {
		log.Println("[任务执行失败]", job.Id, err.Error())
		x.setState(job, "failed", err.Error())
		return
	}
	x.setState(job, "done", "")
}

func (x *DownloadQueue) runTasks(job *model.QueueJob) error {
	var outputDir = job.Archive.OutputDir
	if len(outputDir) == 0 {
		outputDir = model.DownloadDir()
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var videoFile, audioFile string
	var finalFile = filepath.Join(outputDir, job.Archive.Filename)

	for _, t := range job.Tasks {
		switch t.Type {
		case model.TaskTypeVideo:
			p, err := x.download(t.Urls, filepath.Join(outputDir, job.Id+".video.tmp"))
			if err != nil {
				return err
			}
			videoFile = p
		case model.TaskTypeAudio:
			p, err := x.download(t.Urls, filepath.Join(outputDir, job.Id+".audio.tmp"))
			if err != nil {
				return err
			}
			audioFile = p
		case model.TaskTypeMerge:
			if err := x.merge(videoFile, audioFile, finalFile); err != nil {
				return err
			}
		case model.TaskTypeFlac:
			var src = audioFile
			if len(src) == 0 {
				src = videoFile
			}
			if err := x.transcodeFlac(src, finalFile); err != nil {
				return err
			}
		}
	}

	// 没有合并/转封装环节时直接落到目标名
	if !hasType(job.Tasks, model.TaskTypeMerge) && !hasType(job.Tasks, model.TaskTypeFlac) {
		var src = videoFile
		if len(src) == 0 {
			src = audioFile
		}
		if err := os.Rename(src, finalFile); err != nil {
			return err
		}
	} else {
		x.cleanup(videoFile, audioFile)
	}
	// 归档信息落一份到旁边，记录来源稿件
	_ = os.WriteFile(finalFile+".json", util.ToBytes(job.Archive), 0644)
	return nil
}

// download 主地址失败依次换备用地址
func (x *DownloadQueue) download(urls []string, dst string) (string, error) {
	var client = x.client.Clone()
	client.InitClient()
	var lastErr error
	for _, u := range urls {
		f, err := os.Create(dst)
		if err != nil {
			return "", err
		}
		_, err = client.Download(u, f)
		_ = f.Close()
		if err == nil {
			return dst, nil
		}
		lastErr = err
		log.Println("[下载失败换备用地址]", u, err.Error())
	}
	return "", lastErr
}

// merge 音视频轨道合并，视频流直接拷贝
func (x *DownloadQueue) merge(videoFile, audioFile, dst string) error {
	return ffmpeg.Output(
		[]*ffmpeg.Stream{ffmpeg.Input(videoFile), ffmpeg.Input(audioFile)},
		dst,
		ffmpeg.KwArgs{"c:v": "copy", "c:a": "copy", "shortest": ""},
	).OverWriteOutput().Run()
}

// transcodeFlac 去掉视频轨，音频转无损封装
func (x *DownloadQueue) transcodeFlac(src, dst string) error {
	return ffmpeg.Input(src).
		Output(dst, ffmpeg.KwArgs{"vn": "", "acodec": "flac"}).
		OverWriteOutput().Run()
}

func (x *DownloadQueue) cleanup(files ...string) {
	for _, f := range files {
		if len(f) == 0 {
			continue
		}
		_ = os.Remove(f)
	}
}

func (x *DownloadQueue) setState(job *model.QueueJob, state, message string) {
	x.states.Store(job.Id, state)
	if x.OnEvent != nil {
		x.OnEvent(job.Id, state, message)
	}
}

func hasType(tasks []model.DownloadTask, t model.TaskType) bool {
	for _, task := range tasks {
		if task.Type == t {
			return true
		}
	}
	return false
}
