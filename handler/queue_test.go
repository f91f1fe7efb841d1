package handler

import (
	"strings"
	"testing"

	"github.com/airplayTV/bili-api/model"
)

func TestBuildQueueJobNothing(t *testing.T) {
	_, err := BuildQueueJob(&model.MediaInfo{Title: "x"}, model.Episode{}, nil, nil, model.DefaultSelection(), "")
	if err != model.ErrNoVideosOrAudios {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildQueueJobVideoAndAudio(t *testing.T) {
	var video = &model.StreamCandidate{Id: 80, BaseUrl: "https://cdn/v.m4s", BackupUrls: []string{"https://cdn2/v.m4s"}}
	var audio = &model.StreamCandidate{Id: 30280, BaseUrl: "https://cdn/a.m4s"}

	job, err := BuildQueueJob(&model.MediaInfo{Title: "标题"}, model.Episode{Title: "第1集", Cid: 1}, video, audio, model.DefaultSelection(), "out")
	if err != nil {
		t.Fatal(err)
	}
	var types = make([]model.TaskType, 0)
	for _, task := range job.Tasks {
		types = append(types, task.Type)
	}
	// 音视频各一个下载任务，外加合并
	if len(types) != 3 || types[0] != model.TaskTypeVideo || types[1] != model.TaskTypeAudio || types[2] != model.TaskTypeMerge {
		t.Fatalf("types = %v", types)
	}
	if len(job.Tasks[0].Urls) != 2 || job.Tasks[0].Urls[0] != "https://cdn/v.m4s" {
		t.Fatalf("urls = %v", job.Tasks[0].Urls)
	}
	if !strings.HasSuffix(job.Archive.Filename, ".mp4") {
		t.Fatalf("filename = %s", job.Archive.Filename)
	}
	if job.Archive.Title != "第1集" {
		t.Fatalf("title = %s", job.Archive.Title)
	}
	if job.Archive.Ts <= 0 || len(job.Archive.TsString) == 0 {
		t.Fatalf("archive = %+v", job.Archive)
	}
}

func TestBuildQueueJobAudioOnlyFlac(t *testing.T) {
	var audio = &model.StreamCandidate{Id: model.QualityFlac, BaseUrl: "https://cdn/flac.m4s"}
	var sel = model.DefaultSelection()
	sel.Ads = model.QualityFlac

	job, err := BuildQueueJob(&model.MediaInfo{Title: "无损曲"}, model.Episode{}, nil, audio, sel, "")
	if err != nil {
		t.Fatal(err)
	}
	// 纯音频无损：下载 + flac转封装，没有合并
	if len(job.Tasks) != 2 || job.Tasks[0].Type != model.TaskTypeAudio || job.Tasks[1].Type != model.TaskTypeFlac {
		t.Fatalf("tasks = %+v", job.Tasks)
	}
	if !strings.HasSuffix(job.Archive.Filename, ".flac") {
		t.Fatalf("filename = %s", job.Archive.Filename)
	}
}

func TestBuildQueueJobAudioOnly(t *testing.T) {
	var audio = &model.StreamCandidate{Id: 30280, BaseUrl: "https://cdn/a.m4s"}

	job, err := BuildQueueJob(&model.MediaInfo{Title: "a/b:c"}, model.Episode{}, nil, audio, model.DefaultSelection(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(job.Tasks) != 1 {
		t.Fatalf("tasks = %+v", job.Tasks)
	}
	if !strings.HasSuffix(job.Archive.Filename, ".m4a") {
		t.Fatalf("filename = %s", job.Archive.Filename)
	}
	// 文件名里的非法字符要清理
	if strings.ContainsAny(job.Archive.Filename, "/:") {
		t.Fatalf("filename = %s", job.Archive.Filename)
	}
}

func TestBuildQueueJobFlvSelection(t *testing.T) {
	var video = &model.StreamCandidate{Id: 64, BaseUrl: "https://cdn/v.flv"}
	var sel = model.DefaultSelection()
	sel.Fmt = model.CodecFlv.Id()

	job, err := BuildQueueJob(&model.MediaInfo{Title: "x"}, model.Episode{}, video, nil, sel, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(job.Archive.Filename, ".flv") {
		t.Fatalf("filename = %s", job.Archive.Filename)
	}
}
