package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/persistence"
	"github.com/pixil98/go-fps/internal/storage"
)

type StorageBackend int

const (
	StorageBackendFile StorageBackend = iota
	StorageBackendSQLite
	StorageBackendPostgres
	StorageBackendMemory
)

func (b *StorageBackend) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file", "":
		*b = StorageBackendFile
	case "sqlite":
		*b = StorageBackendSQLite
	case "postgres":
		*b = StorageBackendPostgres
	case "memory":
		*b = StorageBackendMemory
	default:
		return fmt.Errorf("unknown storage backend: %s", text)
	}
	return nil
}

type StorageConfig struct {
	Backend StorageBackend `json:"backend"`
	// Path is a directory for the file backend and a database file for sqlite.
	Path         string `json:"path"`
	DSN          string `json:"dsn"`
	Key          string `json:"key"`
	SaveInterval string `json:"save_interval"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case StorageBackendFile:
		if c.Path == "" {
			el.Add(fmt.Errorf("storage: path is required for the file backend"))
		}
	case StorageBackendPostgres:
		if c.DSN == "" {
			el.Add(fmt.Errorf("storage: dsn is required for the postgres backend"))
		}
	}

	if c.SaveInterval != "" {
		d, err := time.ParseDuration(c.SaveInterval)
		if err != nil {
			el.Add(fmt.Errorf("storage: parsing save_interval: %w", err))
		} else if d < 0 {
			el.Add(fmt.Errorf("storage: save_interval must not be negative"))
		}
	}

	return el.Err()
}

func (c *StorageConfig) key() string {
	if c.Key == "" {
		return persistence.Key
	}
	return c.Key
}

func (c *StorageConfig) BuildStorer() (storage.Storer, error) {
	switch c.Backend {
	case StorageBackendFile:
		return storage.NewFileStore(c.Path)
	case StorageBackendSQLite:
		db, err := storage.OpenSQLite(c.Path)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLStore(db)
	case StorageBackendPostgres:
		db, err := storage.OpenPostgres(c.DSN)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLStore(db)
	case StorageBackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %v", c.Backend)
	}
}

func (c *StorageConfig) BuildSaver(store *game.Store, st storage.Storer) *persistence.Saver {
	opts := []persistence.SaverOpt{persistence.WithKey(c.key())}
	if c.SaveInterval != "" {
		d, _ := time.ParseDuration(c.SaveInterval)
		opts = append(opts, persistence.WithInterval(d))
	}
	return persistence.NewSaver(store, st, opts...)
}
