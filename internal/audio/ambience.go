package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// AmbienceGain is the level of a looped ambience file under the drone.
const AmbienceGain = 0.5

// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Decode opens an audio file and picks the decoder from its extension.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// ambience is a decoded file looped forever at the engine rate. Each attach
// hands the mixer a fresh Ctrl; clearing its streamer detaches the loop.
type ambience struct {
	path   string
	source beep.StreamSeekCloser
	stream beep.Streamer
	ctrl   *beep.Ctrl
}

func loadAmbience(path string, rate beep.SampleRate) (*ambience, error) {
	src, format, err := Decode(path)
	if err != nil {
		return nil, err
	}

	var s beep.Streamer = beep.Loop(-1, src)
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, s)
	}
	return &ambience{
		path:   path,
		source: src,
		stream: newVolume(s, AmbienceGain),
	}, nil
}

// attach and detach must be called under the sink lock.
func (a *ambience) attach(m *beep.Mixer) {
	a.ctrl = &beep.Ctrl{Streamer: a.stream}
	m.Add(a.ctrl)
}

func (a *ambience) detach() {
	if a.ctrl != nil {
		a.ctrl.Streamer = nil
		a.ctrl = nil
	}
}

func (a *ambience) close() error {
	return a.source.Close()
}
