package audio

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/pixil98/go-fps/internal/catalog"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-testutil"
)

func approx(t *testing.T, name string, got, exp float64) {
	t.Helper()
	if math.Abs(got-exp) > 1e-9 {
		t.Errorf("%s: expected %f, got %f", name, exp, got)
	}
}

func TestOscillator_Range(t *testing.T) {
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 0, 10*time.Millisecond, w, DefaultSampleRate)
		samples := make([][2]float64, 100)
		n, ok := osc.Stream(samples)
		testutil.AssertEqual(t, "ok", ok, true)
		testutil.AssertEqual(t, "n", n, 100)
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Errorf("wave %d sample %d out of range: %f", w, i, samples[i][0])
			}
		}
	}
}

func TestOscillator_Drains(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 0, 50*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 80)
	n, ok := osc.Stream(samples)
	testutil.AssertEqual(t, "first n", n, 50)
	testutil.AssertEqual(t, "first ok", ok, true)

	n, ok = osc.Stream(samples)
	testutil.AssertEqual(t, "second n", n, 0)
	testutil.AssertEqual(t, "second ok", ok, false)
}

func TestEnvelope_FadesIn(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 0, 100*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	testutil.AssertEqual(t, "n", n, 100)
	testutil.AssertEqual(t, "start silent", samples[0][0], 0.0)
	testutil.AssertEqual(t, "sustain", samples[50][0], 1.0)
	if samples[99][0] >= 0.2 {
		t.Errorf("expected release near silence, got %f", samples[99][0])
	}
}

func TestSynth_Volume(t *testing.T) {
	listener := game.Vec3{0, 0, 0}

	tests := map[string]struct {
		opts     []SynthOpt
		category game.SoundCategory
		sound    game.SoundOptions
		exp      float64
	}{
		"weapon default": {
			category: game.CategoryWeapon,
			exp:      0.8 * 0.9,
		},
		"ui with option volume": {
			category: game.CategoryUI,
			sound:    game.SoundOptions{Volume: 0.5},
			exp:      0.8 * 0.6 * 0.5,
		},
		"muted": {
			opts:     []SynthOpt{WithMuted(true)},
			category: game.CategoryWeapon,
			exp:      0,
		},
		"positional half way": {
			category: game.CategoryWeapon,
			sound:    game.SoundOptions{Position: &game.Vec3{25, 0, 0}},
			exp:      0.8 * 0.9 * 0.5,
		},
		"positional out of range": {
			category: game.CategoryWeapon,
			sound:    game.SoundOptions{Position: &game.Vec3{0, 0, 60}},
			exp:      0,
		},
		"custom master": {
			opts:     []SynthOpt{WithMasterVolume(1)},
			category: game.CategoryMusic,
			exp:      0.5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts := append([]SynthOpt{WithListener(func() game.Vec3 { return listener })}, tt.opts...)
			s := NewSynth(opts...)
			approx(t, "volume", s.Volume(tt.category, tt.sound), tt.exp)
		})
	}
}

func TestSynth_Play(t *testing.T) {
	tests := map[string]struct {
		category   game.SoundCategory
		id         string
		muted      bool
		expErr     string
		expPlaying int
	}{
		"weapon fire": {
			category: game.CategoryWeapon, id: "m4a1_fire", expPlaying: 1,
		},
		"footstep": {
			category: game.CategoryPlayer, id: "footstep_metal_4", expPlaying: 1,
		},
		"unknown id": {
			category: game.CategoryWeapon, id: "railgun_fire", expErr: "unknown sound",
		},
		"wrong category": {
			category: game.CategoryUI, id: "m4a1_fire", expErr: "unknown sound",
		},
		"muted skips": {
			category: game.CategoryUI, id: "ui_click", muted: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewSynth(WithMuted(tt.muted))
			err := s.Play(tt.category, tt.id, game.SoundOptions{})
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "playing", s.Playing(), tt.expPlaying)
		})
	}
}

func TestSynth_EveryWeaponSoundExists(t *testing.T) {
	kinds := []game.WeaponSoundKind{
		game.WeaponSoundFire, game.WeaponSoundReloadStart, game.WeaponSoundReloadMid,
		game.WeaponSoundReloadEnd, game.WeaponSoundEmpty, game.WeaponSoundSwitch,
	}
	for _, w := range catalog.Weapons() {
		for _, k := range kinds {
			id := game.WeaponSound(w.Type, k)
			if _, ok := lookup(game.CategoryWeapon, id); !ok {
				t.Errorf("no recipe for %s %s (%s)", w.ID, k, id)
			}
		}
	}
}

func TestSynth_MusicReplacesTrack(t *testing.T) {
	s := NewSynth()

	if err := s.PlayMusic("menu_music"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.PlayMusic("combat_music"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "music", s.music, "combat_music")
	testutil.AssertEqual(t, "loops", len(s.looping), 1)

	s.StopMusic()
	testutil.AssertEqual(t, "stopped", len(s.looping), 0)
}

func TestSynth_Attach(t *testing.T) {
	store := game.NewStore(catalog.Templates{})
	s := NewSynth()
	detach := s.Attach(store)

	approx(t, "master from settings", s.master, 0.8)
	approx(t, "music from settings", s.categories[game.CategoryMusic], 0.6)

	if err := store.SetGameState(game.PhasePlaying); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "music", s.music, "combat_music")

	audio := store.Settings().Audio
	audio.Master = 50
	if err := store.UpdateSettings(game.SettingsUpdate{Audio: &audio}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "master updated", s.master, 0.5)

	detach()
	_ = store.SetGameState(game.PhaseMenu)
	testutil.AssertEqual(t, "music after detach", s.music, "combat_music")
}

func TestFootstepSound(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 20; i++ {
		id := FootstepSound(SurfaceGrass, rng)
		if !strings.HasPrefix(id, "footstep_grass_") {
			t.Fatalf("unexpected id %q", id)
		}
		if _, ok := lookup(game.CategoryPlayer, id); !ok {
			t.Errorf("no recipe for %q", id)
		}
	}
	testutil.AssertEqual(t, "facility", SurfaceFor(game.MapFacility), SurfaceMetal)
	testutil.AssertEqual(t, "urban", SurfaceFor(game.MapUrban), SurfaceConcrete)
}
