package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/airplayTV/bili-api/model"
)

func TestLogoutNotifiesUpstream(t *testing.T) {
	var exits int32
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == logoutPath && r.Method == http.MethodPost {
			atomic.AddInt32(&exits, 1)
		}
		_, _ = fmt.Fprint(w, `{"code":0}`)
	}))
	var oldPassport = passportHost
	passportHost = server.URL
	t.Cleanup(func() {
		passportHost = oldPassport
		server.Close()
	})

	if err := model.SetSetting(model.SettingSessData, "test-sess"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = model.SetSetting(model.SettingSessData, "") })

	if err := NewPassportHandler().Logout(); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&exits) != 1 {
		t.Fatalf("上游注销请求次数 = %d", atomic.LoadInt32(&exits))
	}
	if model.IsLogin() {
		t.Fatal("本地登录态应已清空")
	}
}
