package audio

import (
	"log/slog"

	"github.com/pixil98/go-fps/internal/game"
)

// Attach plays the interface cues and music that follow store events and keeps
// the master volume in step with the audio settings. The returned func
// detaches every subscription.
func (s *Synth) Attach(store *game.Store) func() {
	s.applySettings(store.Settings().Audio)

	unsubs := []func(){
		store.Subscribe(game.EventPlayerLevelUp, func(game.Event) {
			s.PlaySound(game.CategoryUI, "level_up", game.SoundOptions{})
		}),
		store.Subscribe(game.EventAttachmentUnlocked, func(game.Event) {
			s.PlaySound(game.CategoryUI, "weapon_unlock", game.SoundOptions{})
		}),
		store.Subscribe(game.EventSettingsChanged, func(game.Event) {
			s.applySettings(store.Settings().Audio)
		}),
		store.Subscribe(game.EventGameStateChanged, func(e game.Event) {
			s.phaseMusic(game.Phase(e.ID), game.Phase(e.Name))
		}),
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// applySettings maps the 0-100 settings scale onto linear gains.
func (s *Synth) applySettings(a game.AudioSettings) {
	s.SetMasterVolume(a.Master / 100)
	s.SetCategoryVolume(game.CategoryMusic, a.Music/100)
	effects := a.Effects / 100
	defaults := DefaultCategoryVolumes()
	for _, c := range []game.SoundCategory{game.CategoryWeapon, game.CategoryPlayer, game.CategoryEnvironment, game.CategoryUI} {
		s.SetCategoryVolume(c, defaults[c]*effects)
	}
}

func (s *Synth) phaseMusic(next, prev game.Phase) {
	var track string
	switch next {
	case game.PhasePlaying:
		if prev == game.PhasePaused {
			return
		}
		s.PlaySound(game.CategoryUI, "game_start", game.SoundOptions{})
		track = "combat_music"
	case game.PhaseMenu:
		track = "menu_music"
	default:
		return
	}
	if err := s.PlayMusic(track); err != nil {
		slog.Warn("starting music", "track", track, "error", err)
	}
}
