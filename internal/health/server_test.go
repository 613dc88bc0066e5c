package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthAndLive(t *testing.T) {
	s := NewServer(Config{ServiceName: "rr-analyzer", Version: "1.0.0"})
	h := s.Handler()

	rec := get(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Empty(t, resp.LastRun)

	s.RecordRun(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), nil)
	rec = get(t, h, "/health")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-02T03:04:05Z", resp.LastRun)

	rec = get(t, h, "/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name    string
		ready   bool
		runErr  error
		db      DatabasePinger
		want    int
		checkID string
		check   string
	}{
		{name: "not marked ready", ready: false, want: http.StatusServiceUnavailable, checkID: "service", check: "not_ready"},
		{name: "ready without db", ready: true, want: http.StatusOK, checkID: "service", check: "ok"},
		{name: "ready with db", ready: true, db: fakePinger{}, want: http.StatusOK, checkID: "database", check: "ok"},
		{name: "db down", ready: true, db: fakePinger{err: errors.New("refused")}, want: http.StatusServiceUnavailable, checkID: "database", check: "error: refused"},
		{name: "last run failed", ready: true, runErr: errors.New("bad input"), want: http.StatusServiceUnavailable, checkID: "last_run", check: "error: bad input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{ServiceName: "rr-analyzer", DB: tt.db})
			s.SetReady(tt.ready)
			if tt.runErr != nil {
				s.RecordRun(time.Now(), tt.runErr)
			}

			rec := get(t, s.Handler(), "/ready")
			assert.Equal(t, tt.want, rec.Code)

			var resp ReadyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.check, resp.Checks[tt.checkID])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	rec := get(t, NewServer(Config{Registry: reg}).Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_total 1"))

	rec = get(t, NewServer(Config{}).Handler(), "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShutdownWithoutStart(t *testing.T) {
	assert.NoError(t, NewServer(Config{}).Shutdown())
}
