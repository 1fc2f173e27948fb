// Package storage persists board preferences between runs.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/chessboard/internal/board"
)

// Storage keys
const (
	keyBoardPrefix = "board/"
	keyStats       = "stats"
)

// BoardPreferences stores what a host restores when it remounts a board.
type BoardPreferences struct {
	Orientation string    `json:"orientation"`
	Position    string    `json:"position"`
	LastUsed    time.Time `json:"last_used"`
}

// DefaultPreferences returns preferences for a board never seen before.
func DefaultPreferences() *BoardPreferences {
	return &BoardPreferences{
		Orientation: board.WhiteSide.String(),
		Position:    board.StartFEN,
		LastUsed:    time.Now(),
	}
}

// SessionStats counts what happened on boards across runs.
type SessionStats struct {
	Sessions int `json:"sessions"`
	Moves    int `json:"moves"`
	Flips    int `json:"flips"`
	Resets   int `json:"resets"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database in dir. An empty dir means the platform database
// directory.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		dir, err = GetDatabaseDir()
		if err != nil {
			return nil, err
		}
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func boardKey(id string) []byte {
	return []byte(keyBoardPrefix + id)
}

// SavePreferences saves the preferences of the board identified by id.
func (s *Storage) SavePreferences(id string, prefs *BoardPreferences) error {
	if _, err := board.ParseOrientation(prefs.Orientation); err != nil {
		return err
	}
	prefs.LastUsed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(boardKey(id), data)
	})
}

// LoadPreferences loads the preferences of board id, returning defaults if
// none were saved.
func (s *Storage) LoadPreferences(id string) (*BoardPreferences, error) {
	prefs := DefaultPreferences()
	err := s.get(boardKey(id), prefs)
	return prefs, err
}

// ForgetBoard removes the saved preferences of board id.
func (s *Storage) ForgetBoard(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(boardKey(id))
	})
}

// Boards lists the ids with saved preferences.
func (s *Storage) Boards() ([]string, error) {
	var ids []string
	prefix := []byte(keyBoardPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})
	return ids, err
}

// LoadStats loads session statistics, returning empty stats if not found.
func (s *Storage) LoadStats() (*SessionStats, error) {
	stats := &SessionStats{}
	err := s.get([]byte(keyStats), stats)
	return stats, err
}

// UpdateStats applies fn to the stored statistics in one transaction.
func (s *Storage) UpdateStats(fn func(*SessionStats)) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats := &SessionStats{}
		item, err := txn.Get([]byte(keyStats))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, stats)
			}); err != nil {
				return err
			}
		}
		fn(stats)
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
}

func (s *Storage) get(key []byte, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, v); err != nil {
				log.Printf("[STORE] Warning: discarding unreadable %s: %v", key, err)
			}
			return nil
		})
	})
}
