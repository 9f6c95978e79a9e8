package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFxFromMap(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]bool
		want Fx
	}{
		{"nil", nil, DefaultFx()},
		{"absent keys default on", map[string]bool{"lines": false}, Fx{Stars: true, Aurora: true, Shooting: true}},
		{"unknown keys ignored", map[string]bool{"sparkles": false}, DefaultFx()},
		{"all off", map[string]bool{"stars": false, "aurora": false, "shooting": false, "lines": false}, Fx{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FxFromMap(tt.in))
		})
	}
}

func TestFxToggle(t *testing.T) {
	fx := DefaultFx()

	on, ok := fx.Toggle(FxAurora)
	assert.True(t, ok)
	assert.False(t, on)
	assert.False(t, fx.Aurora)

	on, _ = fx.Toggle(FxAurora)
	assert.True(t, on)

	_, ok = fx.Toggle("sparkles")
	assert.False(t, ok)
	assert.Equal(t, DefaultFx(), fx)
}

func TestFxMapRoundTrip(t *testing.T) {
	fx := Fx{Stars: true, Lines: true}
	assert.Equal(t, fx, FxFromMap(fx.Map()))
}
