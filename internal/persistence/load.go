package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/storage"
)

// Result is the outcome of loading a saved record.
type Result struct {
	State     game.SaveState
	Corrupted bool
	// Found is false when no record existed under the key.
	Found bool
}

// Load reads the record under key and merges it over fresh defaults from t.
// The returned Result is always usable. Corrupted is set when a record
// existed but could not be trusted, in which case the player falls back to
// the template. A non-nil error describes what went wrong and is never fatal.
func Load(st storage.Storer, key string, t game.Templates) (Result, error) {
	res := Result{State: defaults(t)}

	data, err := st.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return res, nil
	}
	res.Found = true
	if err != nil {
		res.Corrupted = true
		return res, fmt.Errorf("reading %s: %w", key, err)
	}

	env, err := storage.ParseDocument(data)
	if err != nil {
		res.Corrupted = true
		return res, err
	}
	if env == nil {
		res.Corrupted = true
		return res, fmt.Errorf("record %s is null", key)
	}

	var version uint
	if _, err := env.Get("version", &version); err != nil {
		slog.Warn("ignoring unreadable record version", "key", key, "error", err)
	}
	env = migrate(version, env)

	if env.Kind("state") != storage.KindObject {
		res.Corrupted = true
		return res, fmt.Errorf("record %s has no state", key)
	}
	state, err := storage.ParseDocument(env["state"])
	if err != nil {
		res.Corrupted = true
		return res, err
	}

	return merge(state, t)
}

// migrate upgrades older record layouts to the current version.
func migrate(version uint, env storage.Document) storage.Document {
	if version != Version {
		slog.Info("loading record from another version", "version", version, "current", Version)
	}
	return env
}

func defaults(t game.Templates) game.SaveState {
	return game.SaveState{
		Player:   t.NewPlayer(),
		Arsenal:  t.NewArsenal(),
		Settings: t.NewSettings(),
	}
}

// merge applies the saved members of state over the templates.
func merge(state storage.Document, t game.Templates) (Result, error) {
	res := Result{State: defaults(t), Found: true}

	p, err := mergePlayer(state, t)
	if err != nil {
		res.Corrupted = true
		mergeRest(state, &res.State)
		return res, err
	}
	res.State.Player = p

	mergeRest(state, &res.State)
	return res, nil
}

func mergePlayer(state storage.Document, t game.Templates) (*game.Player, error) {
	if state.Kind("player") != storage.KindObject {
		return nil, fmt.Errorf("player is not an object")
	}
	pd, err := storage.ParseDocument(state["player"])
	if err != nil {
		return nil, err
	}
	if !pd.Has("weapons", "activeWeaponSlot") {
		return nil, fmt.Errorf("player is missing weapons or activeWeaponSlot")
	}

	for _, k := range []string{"position", "rotation"} {
		if !isVec3(pd, k) {
			pd.Delete(k)
		}
	}

	p := t.NewPlayer()
	// Members that replace a template collection start from empty so decoding
	// does not blend saved elements into template ones.
	p.Weapons = game.Loadout{}
	for k, list := range map[string]*[]game.KillStreak{
		"availableKillStreaks": &p.AvailableKillStreaks,
		"activeKillStreaks":    &p.ActiveKillStreaks,
	} {
		if pd.Kind(k) == storage.KindArray {
			*list = nil
		} else {
			pd.Delete(k)
		}
	}

	data, err := json.Marshal(pd)
	if err != nil {
		return nil, fmt.Errorf("marshalling player: %w", err)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decoding player: %w", err)
	}

	fallback := t.NewPlayer()
	for _, slot := range game.Slots {
		if p.Weapons.Get(slot) == nil {
			p.Weapons.Set(slot, fallback.Weapons.Get(slot))
		}
	}
	if !p.ActiveWeaponSlot.Valid() {
		p.ActiveWeaponSlot = fallback.ActiveWeaponSlot
	}
	if p.ActiveKillStreaks == nil {
		p.ActiveKillStreaks = []game.KillStreak{}
	}

	return p, nil
}

func isVec3(d storage.Document, key string) bool {
	var v []float64
	if _, err := d.Get(key, &v); err != nil {
		return false
	}
	return len(v) == 3
}

// mergeRest copies the non-player members that decode cleanly. Anything else
// keeps its default.
func mergeRest(state storage.Document, st *game.SaveState) {
	if state.Kind("settings") == storage.KindObject {
		s := st.Settings
		if _, err := state.Get("settings", &s); err != nil {
			slog.Warn("ignoring saved settings", "error", err)
		} else if err := s.Validate(); err != nil {
			slog.Warn("ignoring invalid saved settings", "error", err)
		} else {
			st.Settings = s
		}
	}

	if state.Kind("availableWeapons") == storage.KindArray {
		var weapons []*game.Weapon
		if _, err := state.Get("availableWeapons", &weapons); err != nil {
			slog.Warn("ignoring saved weapon catalog", "error", err)
		} else if len(weapons) > 0 && !containsNil(weapons) {
			st.Arsenal = weapons
		}
	}

	if state.Kind("currentMap") == storage.KindString {
		var m game.MapType
		if _, err := state.Get("currentMap", &m); err == nil && m.Valid() {
			st.Map = m
		}
	}
	if state.Kind("gameMode") == storage.KindString {
		var m game.GameMode
		if _, err := state.Get("gameMode", &m); err == nil && m.Valid() {
			st.Mode = m
		}
	}
	if state.Kind("score") == storage.KindNumber {
		var score int
		if _, err := state.Get("score", &score); err == nil {
			st.Score = score
		}
	}
}

func containsNil(ws []*game.Weapon) bool {
	for _, w := range ws {
		if w == nil {
			return true
		}
	}
	return false
}
