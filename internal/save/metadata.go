package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/jask/blackjack/internal/game"
)

const metadataFilename = "metadata.json"

// Metadata is one denormalized index entry per saved file, keyed by
// filename. Re-saving the same filename replaces its entry; entries
// are never removed automatically.
type Metadata struct {
	Filename     string `json:"filename"`
	Timestamp    int64  `json:"timestamp"` // unix millis at save time
	GameMode     string `json:"gameMode"`
	Tag          string `json:"tag"`
	Player1Score int    `json:"player1Score"`
	DealerScore  int    `json:"dealerScore"`
}

func (s *Store) metadataPath() string {
	return filepath.Join(s.dir, metadataFilename)
}

// readMetadata loads the index. A missing or unreadable index behaves
// as empty; corruption costs the listing, not the saves themselves.
func (s *Store) readMetadata() []Metadata {
	data, err := os.ReadFile(s.metadataPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("read metadata index", "err", err)
		}
		return nil
	}
	var entries []Metadata
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("parse metadata index", "err", err)
		return nil
	}
	return entries
}

func (s *Store) writeMetadata(entries []Metadata) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	path := s.metadataPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// upsertMetadata replaces any entry for fullName and appends a fresh
// one snapshotting the saved round.
func (s *Store) upsertMetadata(r game.Round, fullName string) error {
	entries := s.readMetadata()
	kept := entries[:0]
	for _, e := range entries {
		if e.Filename != fullName {
			kept = append(kept, e)
		}
	}
	kept = append(kept, Metadata{
		Filename:     fullName,
		Timestamp:    s.now().UnixMilli(),
		GameMode:     game.ModeLabel(r.IsTwoPlayerMode),
		Tag:          r.Tag,
		Player1Score: r.Player1Score,
		DealerScore:  r.DealerScore,
	})
	return s.writeMetadata(kept)
}

// List returns all index entries, most recently saved first.
func (s *Store) List() []Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.readMetadata()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}

// Closest suggests the known save filename nearest to name, for "did
// you mean" handling after a load miss. ok is false when the index is
// empty.
func (s *Store) Closest(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.readMetadata()
	if len(entries) == 0 {
		return "", false
	}
	best := ""
	bestDist := -1
	for _, e := range entries {
		d := levenshtein.ComputeDistance(name, e.Filename)
		if bestDist < 0 || d < bestDist {
			best, bestDist = e.Filename, d
		}
	}
	return best, true
}

// now is swappable so tests can pin timestamps.
var defaultNow = time.Now
