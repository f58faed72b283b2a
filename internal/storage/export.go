package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gaitnlp/internal/problem"
)

type SeriesData struct {
	Name  string       `json:"name"`
	Times []float64    `json:"times"`
	Pos   [][3]float64 `json:"pos"`
	Vel   [][3]float64 `json:"vel"`
}

type ExportData struct {
	problem.Summary
	InitialGuess []float64    `json:"initial_guess"`
	Series       []SeriesData `json:"series"`
}

func NewExportData(p *problem.Problem) ExportData {
	data := ExportData{
		Summary:      p.Summary(),
		InitialGuess: p.Variables.Values(),
	}
	for _, s := range p.Series() {
		sd := SeriesData{
			Name:  s.Name,
			Times: s.Times,
			Pos:   make([][3]float64, len(s.Nodes)),
			Vel:   make([][3]float64, len(s.Nodes)),
		}
		for i, n := range s.Nodes {
			sd.Pos[i] = [3]float64{n.Pos.X, n.Pos.Y, n.Pos.Z}
			sd.Vel[i] = [3]float64{n.Vel.X, n.Vel.Y, n.Vel.Z}
		}
		data.Series = append(data.Series, sd)
	}
	return data
}

func ExportJSON(w io.Writer, p *problem.Problem) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(p))
}

func ExportJSONFile(path string, p *problem.Problem) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, p)
}

type StoredData struct {
	ProblemMetadata
	Nodes []NodeRecord `json:"nodes"`
}

// ExportStored writes the metadata and nodes of a saved problem as JSON.
func (s *Store) ExportStored(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	nodes, err := s.LoadNodes(id)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(StoredData{ProblemMetadata: *meta, Nodes: nodes})
}
