package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				key += "/" + l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveFrame(0.016)
	m.ObserveFrame(0.1)
	m.SetEffects(map[string]int{"orbs": 12, "stars": 220})
	m.PaletteRefreshed()
	m.SceneRebuilt("mode")
	m.SceneRebuilt("mode")
	m.SetAudioLevel(0.25)

	got := gather(t, reg)
	assert.Equal(t, 2.0, got["etherwall_frames_total"])
	assert.Equal(t, 2.0, got["etherwall_frame_delta_seconds"])
	assert.Equal(t, 12.0, got["etherwall_active_effects/orbs"])
	assert.Equal(t, 220.0, got["etherwall_active_effects/stars"])
	assert.Equal(t, 1.0, got["etherwall_palette_refreshes_total"])
	assert.Equal(t, 2.0, got["etherwall_scene_rebuilds_total/mode"])
	assert.Equal(t, 0.25, got["etherwall_audio_level"])
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFrame(0.016)
		m.SetEffects(map[string]int{"orbs": 1})
		m.PaletteRefreshed()
		m.SceneRebuilt("settings")
		m.SetAudioLevel(1)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveFrame(0.016)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "etherwall_frames_total 1")
}
