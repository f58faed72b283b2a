// Package storage persists built problems as a metadata.json summary and a
// nodes.csv dump of the initial guess.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/san-kum/gaitnlp/internal/problem"
)

type Store struct {
	baseDir string
	logger  *zap.SugaredLogger
}

func New(baseDir string, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ProblemMetadata struct {
	problem.Summary
	Timestamp time.Time `json:"timestamp"`
	Preset    string    `json:"preset,omitempty"`
}

// NodeRecord is one row of nodes.csv.
type NodeRecord struct {
	Set  string    `json:"set"`
	Node int       `json:"node"`
	Time float64   `json:"time"`
	Pos  r3.Vector `json:"pos"`
	Vel  r3.Vector `json:"vel"`
}

var nodesHeader = []string{"set", "node", "time", "px", "py", "pz", "vx", "vy", "vz"}

func (s *Store) Save(p *problem.Problem, preset string) (string, error) {
	dir := filepath.Join(s.baseDir, p.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := ProblemMetadata{
		Summary:   p.Summary(),
		Timestamp: time.Now(),
		Preset:    preset,
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "nodes.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteNodesCSV(csvFile, p); err != nil {
		return "", err
	}

	s.logger.Infow("saved problem", "id", p.ID, "name", p.Name, "dir", dir)
	return p.ID, nil
}

// WriteNodesCSV writes every node of the initial guess, one row per node.
func WriteNodesCSV(out io.Writer, p *problem.Problem) error {
	w := csv.NewWriter(out)
	if err := w.Write(nodesHeader); err != nil {
		return err
	}

	for _, series := range p.Series() {
		for i, n := range series.Nodes {
			row := []string{series.Name, strconv.Itoa(i), formatFloat(series.Times[i])}
			for _, v := range []float64{n.Pos.X, n.Pos.Y, n.Pos.Z, n.Vel.X, n.Vel.Y, n.Vel.Z} {
				row = append(row, formatFloat(v))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns the saved problems, newest first.
func (s *Store) List() ([]ProblemMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ProblemMetadata{}, nil
		}
		return nil, err
	}

	problems := make([]ProblemMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debugw("skipping directory", "name", entry.Name(), "error", err)
			continue
		}
		problems = append(problems, *meta)
	}

	sort.Slice(problems, func(i, j int) bool {
		return problems[i].Timestamp.After(problems[j].Timestamp)
	})
	return problems, nil
}

func (s *Store) Load(id string) (*ProblemMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta ProblemMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadNodes(id string) ([]NodeRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "nodes.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(nodesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []NodeRecord{}, nil
	}

	nodes := make([]NodeRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		node, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("nodes.csv row %d: %w", i+2, err)
		}
		var vals [7]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j+2], 64)
			if err != nil {
				return nil, fmt.Errorf("nodes.csv row %d: %w", i+2, err)
			}
		}
		nodes = append(nodes, NodeRecord{
			Set:  record[0],
			Node: node,
			Time: vals[0],
			Pos:  r3.Vector{X: vals[1], Y: vals[2], Z: vals[3]},
			Vel:  r3.Vector{X: vals[4], Y: vals[5], Z: vals[6]},
		})
	}

	return nodes, nil
}

// GroupNodes splits records by node set, keeping file order within a set.
func GroupNodes(records []NodeRecord) map[string][]NodeRecord {
	groups := make(map[string][]NodeRecord)
	for _, r := range records {
		groups[r.Set] = append(groups[r.Set], r)
	}
	return groups
}

// CopyNodesCSV streams the stored nodes.csv of id to w.
func (s *Store) CopyNodesCSV(w io.Writer, id string) error {
	file, err := os.Open(filepath.Join(s.baseDir, id, "nodes.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
