package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pixil98/go-fps/internal/game"
)

const (
	DefaultSampleRate   = beep.SampleRate(44100)
	DefaultMasterVolume = 0.8
	// MaxAudibleDistance is where positional sounds fade to silence.
	MaxAudibleDistance = 50.0
)

var ErrUnknownSound = errors.New("unknown sound")

// DefaultCategoryVolumes are the per-category levels applied on top of the
// master volume.
func DefaultCategoryVolumes() map[game.SoundCategory]float64 {
	return map[game.SoundCategory]float64{
		game.CategoryWeapon:      0.9,
		game.CategoryPlayer:      0.8,
		game.CategoryEnvironment: 0.7,
		game.CategoryUI:          0.6,
		game.CategoryMusic:       0.5,
	}
}

type SynthOpt func(*Synth)

func WithSampleRate(r beep.SampleRate) SynthOpt {
	return func(s *Synth) {
		s.rate = r
	}
}

func WithMasterVolume(v float64) SynthOpt {
	return func(s *Synth) {
		s.master = v
	}
}

func WithMuted(m bool) SynthOpt {
	return func(s *Synth) {
		s.muted = m
	}
}

// WithListener supplies the listener position used to attenuate positional sounds.
func WithListener(f func() game.Vec3) SynthOpt {
	return func(s *Synth) {
		s.listener = f
	}
}

// Synth synthesizes every game sound from oscillator recipes and mixes them
// onto the speaker. Until Start is called sounds are mixed but not heard.
type Synth struct {
	mu sync.Mutex

	rate       beep.SampleRate
	master     float64
	categories map[game.SoundCategory]float64
	muted      bool
	listener   func() game.Vec3

	mixer   *beep.Mixer
	looping map[string]*beep.Ctrl
	music   string
	running bool
}

func NewSynth(opts ...SynthOpt) *Synth {
	s := &Synth{
		rate:       DefaultSampleRate,
		master:     DefaultMasterVolume,
		categories: DefaultCategoryVolumes(),
		mixer:      &beep.Mixer{},
		looping:    map[string]*beep.Ctrl{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the speaker and begins playback.
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.running = true
	return nil
}

// Close silences everything that is playing.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lock()
	defer s.unlock()
	for id, c := range s.looping {
		c.Paused = true
		delete(s.looping, id)
	}
	s.mixer.Clear()
	s.music = ""
}

func (s *Synth) SetMasterVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.master = v
}

func (s *Synth) SetCategoryVolume(c game.SoundCategory, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c] = v
}

func (s *Synth) SetMuted(m bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = m
}

// Volume returns the linear gain a sound would play at. A zero result means
// the sound is inaudible and would be skipped.
func (s *Synth) Volume(c game.SoundCategory, opts game.SoundOptions) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume(c, opts)
}

func (s *Synth) volume(c game.SoundCategory, opts game.SoundOptions) float64 {
	if s.muted {
		return 0
	}
	v := s.master * s.categories[c]
	if opts.Volume > 0 {
		v *= opts.Volume
	}
	if opts.Position != nil && s.listener != nil {
		v *= Attenuation(opts.Position.Distance(s.listener()))
	}
	return v
}

// Attenuation is the linear falloff applied to a sound dist units away.
func Attenuation(dist float64) float64 {
	return max(0, 1-dist/MaxAudibleDistance)
}

// PlaySound implements game.SoundPlayer. Unknown ids are logged and skipped.
func (s *Synth) PlaySound(c game.SoundCategory, id string, opts game.SoundOptions) {
	if err := s.Play(c, id, opts); err != nil {
		slog.Warn("playing sound", "category", c, "id", id, "error", err)
	}
}

// Play synthesizes id and adds it to the mix.
func (s *Synth) Play(c game.SoundCategory, id string, opts game.SoundOptions) error {
	r, ok := lookup(c, id)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownSound, c, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vol := s.volume(c, opts)
	if vol <= 0 {
		return nil
	}

	pitch := opts.Pitch
	if pitch <= 0 {
		pitch = 1
	}

	var st beep.Streamer
	if opts.Loop {
		st = beep.Iterate(func() beep.Streamer { return r.build(s.rate, pitch) })
	} else {
		st = r.build(s.rate, pitch)
	}
	st = newVolume(st, vol)

	s.lock()
	defer s.unlock()
	if opts.Loop {
		if prev, ok := s.looping[id]; ok {
			prev.Paused = true
		}
		ctrl := &beep.Ctrl{Streamer: st}
		s.looping[id] = ctrl
		st = ctrl
	}
	s.mixer.Add(st)
	return nil
}

// StopSound halts a looping sound.
func (s *Synth) StopSound(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop(id)
}

func (s *Synth) stop(id string) {
	c, ok := s.looping[id]
	if !ok {
		return
	}
	s.lock()
	c.Paused = true
	c.Streamer = nil
	s.unlock()
	delete(s.looping, id)
}

// PlayMusic replaces the current music track with a looping id.
func (s *Synth) PlayMusic(id string) error {
	s.mu.Lock()
	prev := s.music
	s.stop(prev)
	s.music = ""
	s.mu.Unlock()

	if err := s.Play(game.CategoryMusic, id, game.SoundOptions{Loop: true}); err != nil {
		return err
	}

	s.mu.Lock()
	s.music = id
	s.mu.Unlock()
	return nil
}

func (s *Synth) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop(s.music)
	s.music = ""
}

// Playing is the number of streams currently in the mix.
func (s *Synth) Playing() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lock()
	defer s.unlock()
	return s.mixer.Len()
}

// lock guards the mixer against the speaker goroutine once playback runs.
func (s *Synth) lock() {
	if s.running {
		speaker.Lock()
	}
}

func (s *Synth) unlock() {
	if s.running {
		speaker.Unlock()
	}
}

func (r recipe) build(rate beep.SampleRate, pitch float64) beep.Streamer {
	osc := NewOscillator(r.freq*pitch, r.sweep*pitch, r.duration, r.wave, rate)
	st := NewEnvelope(osc, r.duration, r.attack, r.release, rate)
	if r.next == nil {
		return st
	}
	return beep.Seq(st, r.next.build(rate, pitch))
}
