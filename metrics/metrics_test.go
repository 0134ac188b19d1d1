package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/stonerview/engine"
	"github.com/lixenwraith/stonerview/logging"
)

func gathered(t *testing.T, c *Collector) map[string]float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[name] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[name] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestCollectorObserveFrame(t *testing.T) {
	c := NewCollector()
	var _ engine.Observer = c

	c.ObserveFrame(engine.FrameStats{Tick: 1, Duration: time.Millisecond})
	c.ObserveFrame(engine.FrameStats{Tick: 2, Duration: 2 * time.Millisecond, Late: true})
	c.ObserveFrame(engine.FrameStats{Tick: 3, Late: true, Skipped: true})

	m := gathered(t, c)
	assert.Equal(t, 3.0, m["stonerview_frames_total"])
	assert.Equal(t, 2.0, m["stonerview_frames_late_total"])
	assert.Equal(t, 1.0, m["stonerview_frames_resync_total"])
	assert.Equal(t, 3.0, m["stonerview_frame_duration_seconds"])
	assert.Equal(t, 3.0, m["stonerview_tick"])

	last, at := c.Last()
	assert.Equal(t, uint64(3), last.Tick)
	assert.False(t, at.IsZero())
}

func TestCollectorGraphShape(t *testing.T) {
	c := NewCollector()
	c.SetGraphShape(map[string]int{"wrap": 3, "linear": 2})
	m := gathered(t, c)
	assert.Equal(t, 3.0, m["stonerview_oscillators{kind=wrap}"])
	assert.Equal(t, 2.0, m["stonerview_oscillators{kind=linear}"])

	c.SetGraphShape(map[string]int{"buffer": 1})
	m = gathered(t, c)
	_, stale := m["stonerview_oscillators{kind=wrap}"]
	assert.False(t, stale)
	assert.Equal(t, 1.0, m["stonerview_oscillators{kind=buffer}"])
}

func TestHandlerRoutes(t *testing.T) {
	c := NewCollector()
	c.ObserveFrame(engine.FrameStats{Tick: 7, Duration: 3 * time.Millisecond})
	srv := httptest.NewServer(NewHandler(c, logging.NewNop()))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok\n", string(body))

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Contains(t, string(body), "stonerview_frames_total 1")

	res, err = http.Get(srv.URL + "/frame")
	require.NoError(t, err)
	var frame struct {
		Tick       uint64  `json:"tick"`
		DurationMS float64 `json:"duration_ms"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&frame))
	res.Body.Close()
	assert.Equal(t, uint64(7), frame.Tick)
	assert.InDelta(t, 3.0, frame.DurationMS, 1e-9)

	res, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// brokenWriter fails every body write
type brokenWriter struct {
	header http.Header
	status int
}

func (w *brokenWriter) Header() http.Header        { return w.header }
func (w *brokenWriter) Write([]byte) (int, error)  { return 0, errors.New("connection reset") }
func (w *brokenWriter) WriteHeader(statusCode int) { w.status = statusCode }

func TestFrameEncodeErrorUsesLogger(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(NewCollector(), logging.New(slog.LevelDebug, &buf))

	w := &brokenWriter{header: make(http.Header)}
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/frame", nil))

	assert.Contains(t, buf.String(), "frame response encode failed")
	assert.Contains(t, buf.String(), "error=\"connection reset\"")
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, NewCollector(), logging.NewNop()) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		res, err := http.Get(url)
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeBadAddress(t *testing.T) {
	err := Serve(context.Background(), "not-an-address", NewCollector(), logging.NewNop())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "metrics listen"))
}
