package save

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jask/blackjack/internal/game"
)

// Store persists encoded rounds and the metadata index in one
// directory. Decode and read failures never escape as panics: loads
// report absent, saves report an error the controller turns into a
// failure flag.
type Store struct {
	dir string
	log *slog.Logger
	now func() time.Time

	mu sync.Mutex // serializes metadata read-modify-write
}

// NewStore creates the save directory if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, log: logger, now: defaultNow}, nil
}

// Dir returns the save directory.
func (s *Store) Dir() string { return s.dir }

// Save writes the round as <filename><ext> and upserts its metadata
// entry. The index update shares the save's fate reporting: a save
// that wrote the file but failed the index still returns the error.
func (s *Store) Save(r game.Round, filename string, f Format) error {
	data, err := Encode(r, f)
	if err != nil {
		return err
	}
	fullName := filename + f.Extension()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(filepath.Join(s.dir, fullName), data, 0o644); err != nil {
		return fmt.Errorf("write save %s: %w", fullName, err)
	}
	if err := s.upsertMetadata(r, fullName); err != nil {
		return err
	}
	s.log.Info("saved round", "file", fullName, "format", f)
	return nil
}

// Load reads a save by exact filename, dispatching the decoder on the
// extension. Missing files and decode failures both report absent;
// corrupt content is a recoverable miss, not a crash.
func (s *Store) Load(filename string) (game.Round, bool) {
	f, err := FormatForFilename(filename)
	if err != nil {
		s.log.Warn("load round", "file", filename, "err", err)
		return game.Round{}, false
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("load round", "file", filename, "err", err)
		}
		return game.Round{}, false
	}
	r, err := Decode(data, f)
	if err != nil {
		s.log.Warn("load round", "file", filename, "err", err)
		return game.Round{}, false
	}
	return r, true
}

// RawContent returns the exact bytes previously written for filename,
// for export.
func (s *Store) RawContent(filename string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("read save content", "file", filename, "err", err)
		}
		return "", false
	}
	return string(data), true
}

// Export copies raw save content to an externally chosen destination.
func (s *Store) Export(content string, dst io.Writer) error {
	if _, err := io.WriteString(dst, content); err != nil {
		return fmt.Errorf("export save: %w", err)
	}
	return nil
}

// Import decodes externally supplied content via format sniffing.
// Absent means every format attempt failed.
func (s *Store) Import(content string) (game.Round, bool) {
	r, err := Sniff(content)
	if err != nil {
		s.log.Warn("import round", "err", err)
		return game.Round{}, false
	}
	return r, true
}
