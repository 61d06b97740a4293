package etl

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleBody = `[
	{"name":"University of California","country":"USA","domains":["uc.edu"],"web_pages":["http://uc.edu"],"alpha_two_code":"US","state-province":null},
	{"name":"MIT","country":"USA","domains":["mit.edu"],"web_pages":["http://mit.edu"],"alpha_two_code":"US","state-province":null}
]`

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func tempStore(t *testing.T) Store {
	t.Helper()
	return Store{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "my_lite_store.db")}
}
