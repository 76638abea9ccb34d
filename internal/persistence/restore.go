package persistence

import (
	"log/slog"

	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/storage"
)

// Hydrate loads the saved record into store. Load problems are logged and
// surface only through the store's corrupted flag.
func Hydrate(store *game.Store, st storage.Storer, key string, t game.Templates) Result {
	res, err := Load(st, key, t)
	if err != nil {
		slog.Warn("saved state could not be used, starting from defaults", "key", key, "error", err)
	}
	store.Restore(res.State, res.Corrupted)
	return res
}
