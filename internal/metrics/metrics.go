// Package metrics exposes frame loop and audio gauges to prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "etherwall"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	frames           prometheus.Counter
	frameSeconds     prometheus.Histogram
	effects          *prometheus.GaugeVec
	paletteRefreshes prometheus.Counter
	rebuilds         *prometheus.CounterVec
	audioLevel       prometheus.Gauge
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames simulated by the animation engine.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_delta_seconds",
			Help:      "Clamped simulation step per frame.",
			Buckets:   []float64{0.004, 0.008, 0.012, 0.016, 0.02, 0.033, 0.05, 0.1},
		}),
		effects: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_effects",
			Help:      "Active effect primitives by kind.",
		}, []string{"kind"}),
		paletteRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "palette_refreshes_total",
			Help:      "Target palette replacements.",
		}),
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_rebuilds_total",
			Help:      "Scene rebuilds by cause.",
		}, []string{"reason"}),
		audioLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audio_level",
			Help:      "Recent RMS level of the audio output.",
		}),
	}
	reg.MustRegister(m.frames, m.frameSeconds, m.effects, m.paletteRefreshes, m.rebuilds, m.audioLevel)
	return m
}

func (m *Metrics) ObserveFrame(dt float64) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameSeconds.Observe(dt)
}

func (m *Metrics) SetEffects(counts map[string]int) {
	if m == nil {
		return
	}
	for kind, n := range counts {
		m.effects.WithLabelValues(kind).Set(float64(n))
	}
}

func (m *Metrics) PaletteRefreshed() {
	if m == nil {
		return
	}
	m.paletteRefreshes.Inc()
}

func (m *Metrics) SceneRebuilt(reason string) {
	if m == nil {
		return
	}
	m.rebuilds.WithLabelValues(reason).Inc()
}

func (m *Metrics) SetAudioLevel(v float64) {
	if m == nil {
		return
	}
	m.audioLevel.Set(v)
}

// Handler serves the registry in the prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}()

	logger.Info("serving metrics", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
