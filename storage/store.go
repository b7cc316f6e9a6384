package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"vicebot/models"
)

// File names of the two persisted documents. The two namespaces are
// independent; there are no cross-file guarantees.
const (
	ledgerFile = "economy.json"
	scoresFile = "rps_leaderboard.json"
)

// Store persists the economy ledger and the RPS win counts as two JSON
// documents on disk. Writes are synchronous and best-effort: callers log
// save failures and keep the in-memory state as the source of truth.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadLedger reads the ledger document. A missing or corrupt file yields an
// empty ledger, never an error.
func (s *Store) LoadLedger() models.Ledger {
	ledger := make(models.Ledger)
	if !s.load(ledgerFile, &ledger) {
		return make(models.Ledger)
	}
	return ledger
}

// SaveLedger rewrites the ledger document.
func (s *Store) SaveLedger(ledger models.Ledger) error {
	return s.save(ledgerFile, ledger)
}

// LoadScores reads the RPS win count document. A missing or corrupt file
// yields an empty map, never an error.
func (s *Store) LoadScores() models.Scores {
	scores := make(models.Scores)
	if !s.load(scoresFile, &scores) {
		return make(models.Scores)
	}
	return scores
}

// SaveScores rewrites the RPS win count document.
func (s *Store) SaveScores(scores models.Scores) error {
	return s.save(scoresFile, scores)
}

// load reports whether the document was read and parsed cleanly. Callers
// discard any partially decoded state when it returns false.
func (s *Store) load(name string, v any) bool {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Failed to read %s, starting empty: %v", name, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warnf("Failed to parse %s, starting empty: %v", name, err)
		return false
	}
	return true
}

func (s *Store) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
