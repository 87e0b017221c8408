// Package store persists the best score and the log of finished sessions.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// File names inside the data directory.
const (
	BestFile    = "highscore.json"
	RecordsFile = "game_records.txt"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	separator  = "--------------------------------------------------"
)

// ErrNoRecord is returned by ReadBest when no best score has been saved yet.
var ErrNoRecord = errors.New("no best score saved")

// Record summarizes one finished session.
type Record struct {
	Time       time.Time
	Difficulty string
	Score      int
	MaxCombo   int
	Accuracy   float64 // Percent
}

type bestFile struct {
	Highscore int `json:"highscore"`
}

// Store reads and writes the data directory. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *log.Logger
}

// Open creates the data directory if needed.
func Open(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// ReadBest reads the saved best score.
func (s *Store) ReadBest() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readBest()
}

func (s *Store) readBest() (int, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, BestFile))
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrNoRecord
	}
	if err != nil {
		return 0, fmt.Errorf("read best score: %w", err)
	}
	var bf bestFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return 0, fmt.Errorf("decode best score: %w", err)
	}
	return bf.Highscore, nil
}

// LoadBest returns the saved best score, or 0 when it is missing or unreadable.
func (s *Store) LoadBest() int {
	best, err := s.ReadBest()
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			s.logger.Debug("best score unavailable, starting from 0", "err", err)
		}
		return 0
	}
	return best
}

// SaveBest replaces the best score file if score beats the stored one.
// The compare and the write happen under one lock, so concurrent sessions
// never lower the best. A missing or unreadable file counts as 0.
func (s *Store) SaveBest(score int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readBest()
	if err != nil && !errors.Is(err, ErrNoRecord) {
		s.logger.Debug("overwriting unreadable best score", "err", err)
	}
	if score <= current {
		return false, nil
	}

	data, err := json.Marshal(bestFile{Highscore: score})
	if err != nil {
		return false, err
	}
	tmp, err := os.CreateTemp(s.dir, BestFile+".*")
	if err != nil {
		return false, fmt.Errorf("save best score: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, fmt.Errorf("save best score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("save best score: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, BestFile)); err != nil {
		return false, fmt.Errorf("save best score: %w", err)
	}
	return true, nil
}

// AppendRecord adds a block to the session log. Existing content is never rewritten.
func (s *Store) AppendRecord(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(s.dir, RecordsFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	if err := WriteRecord(f, rec); err != nil {
		f.Close()
		return fmt.Errorf("append session log: %w", err)
	}
	return f.Close()
}

// Records returns every logged session, oldest first.
func (s *Store) Records() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(filepath.Join(s.dir, RecordsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// WriteRecord formats one log block.
func WriteRecord(w io.Writer, rec Record) error {
	_, err := fmt.Fprintf(w, "Time: %s\nDifficulty: %s\nFinal score: %d\nMax combo: %d\nAccuracy: %.1f%%\n%s\n",
		rec.Time.Format(timeLayout), rec.Difficulty, rec.Score, rec.MaxCombo, rec.Accuracy, separator)
	return err
}

// ReadRecords parses log blocks. Unknown lines are ignored; a malformed value is an error.
func ReadRecords(r io.Reader) ([]Record, error) {
	var (
		out  []Record
		cur  Record
		seen bool
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == separator {
			if seen {
				out = append(out, cur)
			}
			cur, seen = Record{}, false
			continue
		}
		key, value, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		var err error
		switch key {
		case "Time":
			cur.Time, err = time.ParseInLocation(timeLayout, value, time.Local)
		case "Difficulty":
			cur.Difficulty = value
		case "Final score":
			cur.Score, err = strconv.Atoi(value)
		case "Max combo":
			cur.MaxCombo, err = strconv.Atoi(value)
		case "Accuracy":
			cur.Accuracy, err = strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		default:
			continue
		}
		if err != nil {
			return out, fmt.Errorf("session log line %d: %w", line, err)
		}
		seen = true
	}
	return out, sc.Err()
}
