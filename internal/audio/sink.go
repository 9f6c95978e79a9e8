package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Sink is the audio output device. Lock/Unlock guard the state of streamers
// being played; Play and Clear take the lock themselves and must not be
// called while holding it.
type Sink interface {
	Init(rate beep.SampleRate) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// speakerSink plays through the system speaker. The speaker is a process
// singleton and is initialized once per sample rate.
type speakerSink struct {
	mu   sync.Mutex
	rate beep.SampleRate
}

// NewSpeakerSink returns the production sink.
func NewSpeakerSink() Sink {
	return &speakerSink{}
}

func (s *speakerSink) Init(rate beep.SampleRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rate == rate {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	s.rate = rate
	return nil
}

func (s *speakerSink) Play(st beep.Streamer) { speaker.Play(st) }
func (s *speakerSink) Clear()                { speaker.Clear() }
func (s *speakerSink) Lock()                 { speaker.Lock() }
func (s *speakerSink) Unlock()               { speaker.Unlock() }
