package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/stonerview/engine"
)

// Collector records frame pacing, it satisfies engine.Observer
type Collector struct {
	registry *prometheus.Registry

	frames        prometheus.Counter
	lateFrames    prometheus.Counter
	skippedFrames prometheus.Counter
	frameDuration prometheus.Histogram
	tick          prometheus.Gauge
	oscillators   *prometheus.GaugeVec

	mu   sync.RWMutex
	last engine.FrameStats
	at   time.Time
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stonerview_frames_total",
			Help: "Total number of frames stepped",
		}),
		lateFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stonerview_frames_late_total",
			Help: "Frames started a full interval or more after their deadline",
		}),
		skippedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stonerview_frames_resync_total",
			Help: "Times the scheduler dropped its backlog and resynced its deadline",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stonerview_frame_duration_seconds",
			Help:    "Wall time spent advancing, rendering and presenting one frame",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		tick: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stonerview_tick",
			Help: "Current oscillator tick",
		}),
		oscillators: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stonerview_oscillators",
			Help: "Oscillators in the running graph by kind",
		}, []string{"kind"}),
	}
	c.registry.MustRegister(c.frames, c.lateFrames, c.skippedFrames, c.frameDuration, c.tick, c.oscillators)
	return c
}

// Registry returns the registry holding the collector's metrics
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveFrame records one completed frame
func (c *Collector) ObserveFrame(s engine.FrameStats) {
	c.frames.Inc()
	if s.Late {
		c.lateFrames.Inc()
	}
	if s.Skipped {
		c.skippedFrames.Inc()
	}
	c.frameDuration.Observe(s.Duration.Seconds())
	c.tick.Set(float64(s.Tick))

	c.mu.Lock()
	c.last = s
	c.at = time.Now()
	c.mu.Unlock()
}

// SetGraphShape publishes the oscillator count per kind name
func (c *Collector) SetGraphShape(counts map[string]int) {
	c.oscillators.Reset()
	for kind, n := range counts {
		c.oscillators.WithLabelValues(kind).Set(float64(n))
	}
}

// Last returns the most recent frame stats and when they were recorded
func (c *Collector) Last() (engine.FrameStats, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last, c.at
}
