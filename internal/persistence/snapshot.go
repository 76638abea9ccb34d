package persistence

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/storage"
)

const (
	// Key names the single saved record.
	Key = "fps-game-storage"
	// Version is the current record format.
	Version uint = 1
)

// Snapshot is the saved subset of a session.
type Snapshot struct {
	Player           *game.Player   `json:"player"`
	AvailableWeapons []*game.Weapon `json:"availableWeapons"`
	Settings         game.Settings  `json:"settings"`
	CurrentMap       game.MapType   `json:"currentMap"`
	GameMode         game.GameMode  `json:"gameMode"`
	Score            int            `json:"score"`
}

// NewSnapshot copies the persisted subset out of st.
func NewSnapshot(st game.SaveState) *Snapshot {
	return &Snapshot{
		Player:           st.Player,
		AvailableWeapons: st.Arsenal,
		Settings:         st.Settings,
		CurrentMap:       st.Map,
		GameMode:         st.Mode,
		Score:            st.Score,
	}
}

// State converts the snapshot back to the store's form.
func (s *Snapshot) State() game.SaveState {
	return game.SaveState{
		Player:   s.Player,
		Arsenal:  s.AvailableWeapons,
		Settings: s.Settings,
		Map:      s.CurrentMap,
		Mode:     s.GameMode,
		Score:    s.Score,
	}
}

func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("snapshot is empty")
	}

	el := errors.NewErrorList()

	if s.Player == nil {
		el.Add(fmt.Errorf("player is required"))
	} else if !s.Player.ActiveWeaponSlot.Valid() {
		el.Add(fmt.Errorf("active weapon slot %q is invalid", s.Player.ActiveWeaponSlot))
	}
	for i, w := range s.AvailableWeapons {
		if w == nil {
			el.Add(fmt.Errorf("available weapon %d is empty", i))
		}
	}
	if !s.CurrentMap.Valid() {
		el.Add(fmt.Errorf("map %q is invalid", s.CurrentMap))
	}
	if !s.GameMode.Valid() {
		el.Add(fmt.Errorf("game mode %q is invalid", s.GameMode))
	}
	if err := s.Settings.Validate(); err != nil {
		el.Add(fmt.Errorf("settings: %w", err))
	}

	return el.Err()
}

// Record wraps s in the current versioned envelope.
func (s *Snapshot) Record(key string) *storage.Record[*Snapshot] {
	return &storage.Record[*Snapshot]{
		Version:    Version,
		Identifier: storage.Identifier(key),
		Spec:       s,
	}
}
