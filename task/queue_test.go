package task

import (
	"testing"

	"github.com/airplayTV/bili-api/model"
)

func TestPushAndState(t *testing.T) {
	var q = NewDownloadQueue()
	result, err := q.Push(&model.QueueJob{Id: "job-1"})
	if err != nil {
		t.Fatal(err)
	}
	if result["id"] != "job-1" || result["state"] != "queued" {
		t.Fatalf("result = %+v", result)
	}
	if q.State("job-1") != "queued" {
		t.Fatalf("state = %s", q.State("job-1"))
	}
	// 未知任务返回空串
	if q.State("job-404") != "" {
		t.Fatalf("state = %s", q.State("job-404"))
	}
}
