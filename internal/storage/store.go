package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/contactlab/internal/probe"
)

// Store persists contact check reports under a base directory, one
// subdirectory per check.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one stored contact check.
type RunMetadata struct {
	ID             string    `json:"id"`
	Scene          string    `json:"scene"`
	Timestamp      time.Time `json:"timestamp"`
	ActivePoints   int       `json:"active_points"`
	InactivePoints int       `json:"inactive_points"`
	PairCount      int       `json:"pair_count"`
	MaxPenetration float64   `json:"max_penetration"`
}

// Save writes a report as metadata.json plus pairs.csv and returns the
// run id.
func (s *Store) Save(report *probe.Report) (string, error) {
	sceneName := report.SceneID
	if sceneName == "" {
		sceneName = "scene"
	}
	runID := fmt.Sprintf("%s_%d", sceneName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Scene:          report.SceneID,
		Timestamp:      time.Now(),
		ActivePoints:   report.ActivePoints,
		InactivePoints: report.InactivePoints,
		PairCount:      len(report.Pairs),
		MaxPenetration: report.MaxPenetration(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "pairs.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"object_a", "object_b", "link_a", "link_b", "name_a", "name_b", "max_distance"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range report.Pairs {
		linkA, linkB := "", ""
		if p.Key.LinkResolved {
			linkA = strconv.Itoa(p.Key.LinkA)
			linkB = strconv.Itoa(p.Key.LinkB)
		}
		row := []string{
			strconv.Itoa(p.Key.ObjectA),
			strconv.Itoa(p.Key.ObjectB),
			linkA,
			linkB,
			p.NameA,
			p.NameB,
			strconv.FormatFloat(p.MaxDistance, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every stored run, skipping unreadable ones.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

// Load returns the metadata of one stored run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// StoredPair is one row of a stored pairs.csv.
type StoredPair struct {
	NameA       string
	NameB       string
	MaxDistance float64
}

// LoadPairs reads the aggregated pairs of one stored run.
func (s *Store) LoadPairs(runID string) ([]StoredPair, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "pairs.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	pairs := make([]StoredPair, 0)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 7 {
			continue
		}
		dist, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			continue
		}
		pairs = append(pairs, StoredPair{
			NameA:       record[4],
			NameB:       record[5],
			MaxDistance: dist,
		})
	}

	return pairs, nil
}
