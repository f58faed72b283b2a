// Package export renders the initial guess of a problem as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gaitnlp/internal/problem"
	"github.com/san-kum/gaitnlp/internal/storage"
	"github.com/san-kum/gaitnlp/internal/variables"
)

type Point struct{ X, Y float64 }

// Series is one polyline of a plot.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

var palette = []string{"#00ccff", "#ff00ff", "#00ff88", "#ffaa00", "#ff4444"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func seriesBounds(series []Series) (bounds, bool) {
	var b bounds
	found := false
	for _, s := range series {
		for _, p := range s.Points {
			if !found {
				b = bounds{p.X, p.X, p.Y, p.Y}
				found = true
				continue
			}
			b.minX = min(b.minX, p.X)
			b.maxX = max(b.maxX, p.X)
			b.minY = min(b.minY, p.Y)
			b.maxY = max(b.maxY, p.Y)
		}
	}
	if !found {
		return b, false
	}

	// Add padding
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b, true
}

// TrajectoryToSVG creates an SVG from a single polyline
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}
	return SeriesToSVG([]Series{{Color: strokeColor, Points: points}}, width, height)
}

// SeriesToSVG draws every series on shared axes, one path each. Series with
// a single point are drawn as a dot.
func SeriesToSVG(series []Series, width, height int) string {
	b, ok := seriesBounds(series)
	if !ok {
		return ""
	}
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	project := func(p Point) (float64, float64) {
		x := (p.X - b.minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-b.minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		color := s.Color
		if color == "" {
			color = palette[i%len(palette)]
		}

		if len(s.Points) == 1 {
			x, y := project(s.Points[0])
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, color))
			continue
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"`, color))
		if s.Name != "" {
			sb.WriteString(fmt.Sprintf(` id="%s"`, s.Name))
		}
		sb.WriteString(` d="M`)
		for j, p := range s.Points {
			x, y := project(p)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString(`"/>
`)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TopView collects the x-y path of the base and of every foot.
func TopView(p *problem.Problem) []Series {
	var out []Series
	nodeSets := []*variables.Nodes{p.Splines.BaseLinear.Nodes()}
	for _, s := range p.Splines.EEMotion {
		nodeSets = append(nodeSets, s.Nodes())
	}
	for _, nodes := range nodeSets {
		s := Series{Name: nodes.Name()}
		for _, n := range nodes.Nodes() {
			s.Points = append(s.Points, Point{X: n.Pos.X, Y: n.Pos.Y})
		}
		out = append(out, s)
	}
	return out
}

func ProblemToSVG(p *problem.Problem, width, height int) string {
	return SeriesToSVG(TopView(p), width, height)
}

// TopViewFromRecords is TopView for a stored problem.
func TopViewFromRecords(records []storage.NodeRecord) []Series {
	var out []Series
	index := map[string]int{}
	for _, r := range records {
		if r.Set != variables.BaseLinNodes && !strings.HasPrefix(r.Set, "ee-motion-lin_") {
			continue
		}
		i, ok := index[r.Set]
		if !ok {
			i = len(out)
			index[r.Set] = i
			out = append(out, Series{Name: r.Set})
		}
		out[i].Points = append(out[i].Points, Point{X: r.Pos.X, Y: r.Pos.Y})
	}
	return out
}
