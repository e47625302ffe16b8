// Package storage persists completed typing sessions under a data
// directory, one subdirectory per session.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SessionMetadata struct {
	ID         string    `json:"id"`
	Layout     string    `json:"layout"`
	Timestamp  time.Time `json:"timestamp"`
	Keystrokes int       `json:"keystrokes"`
	Distance   float64   `json:"distance"`
	Sigma      float64   `json:"sigma"`
	Theme      string    `json:"theme"`
	Output     string    `json:"output"`
}

// Save writes one session: metadata.json, keys.csv (per-key press counts)
// and intervals.csv (seconds between successive keystrokes). It returns the
// generated session id.
func (s *Store) Save(meta SessionMetadata, counts map[string]int, intervals []float64) (string, error) {
	sessionID := fmt.Sprintf("%s_%d", meta.Layout, time.Now().Unix())
	sessionDir := filepath.Join(s.baseDir, sessionID)

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return "", err
	}

	meta.ID = sessionID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(sessionDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeCounts(sessionDir, counts); err != nil {
		return "", err
	}
	if err := s.writeIntervals(sessionDir, intervals); err != nil {
		return "", err
	}

	return sessionID, nil
}

func (s *Store) writeCounts(sessionDir string, counts map[string]int) error {
	f, err := os.Create(filepath.Join(sessionDir, "keys.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"key", "count"}); err != nil {
		return err
	}

	// Deterministic order for diffable output.
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.Write([]string{k, strconv.Itoa(counts[k])}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeIntervals(sessionDir string, intervals []float64) error {
	f, err := os.Create(filepath.Join(sessionDir, "intervals.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"seconds"}); err != nil {
		return err
	}
	for _, iv := range intervals {
		if err := w.Write([]string{strconv.FormatFloat(iv, 'f', 6, 64)}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta SessionMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		sessions = append(sessions, meta)
	}

	return sessions, nil
}

func (s *Store) Load(sessionID string) (*SessionMetadata, error) {
	metaPath := filepath.Join(s.baseDir, sessionID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadCounts reads the per-key press counts of a session.
func (s *Store) LoadCounts(sessionID string) (map[string]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, sessionID, "keys.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 2 {
			continue
		}
		n, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		counts[record[0]] = n
	}
	return counts, nil
}

// LoadIntervals reads the inter-keystroke intervals of a session.
func (s *Store) LoadIntervals(sessionID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, sessionID, "intervals.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	intervals := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(records[i][0], 64)
		if err != nil {
			continue
		}
		intervals = append(intervals, v)
	}
	return intervals, nil
}
