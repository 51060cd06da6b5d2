package ambient

import (
	"fmt"
	"math"

	"NudgePrototype/internal/simulation"
)

var buildingColors = []string{"#2d3748", "#4a5568", "#1a202c", "#2c5282"}

type Window struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Lit bool    `json:"lit"`
}

type Building struct {
	ID      string   `json:"id"`
	Height  float64  `json:"height"`
	Width   float64  `json:"width"`
	X       float64  `json:"x"`
	Color   string   `json:"color"`
	Windows []Window `json:"windows"`
}

// Skyline is the ring of buildings behind the radar.
type Skyline struct {
	Buildings []Building `json:"buildings"`
}

// NewSkyline places n buildings around the perimeter with 40% of windows lit.
func NewSkyline(rng simulation.Rand, n int) Skyline {
	buildings := make([]Building, 0, n)
	for i := 0; i < n; i++ {
		angle := (math.Pi * 2 * float64(i)) / float64(n)
		distance := 180 + rng.Float64()*120
		height := 30 + rng.Float64()*100
		width := 15 + rng.Float64()*35

		rows := int(math.Floor(height / 12))
		cols := int(math.Floor(width / 8))
		windows := make([]Window, 0, rows*cols)
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				windows = append(windows, Window{
					X:   float64(col*8 + 2),
					Y:   float64(row*12 + 4),
					Lit: rng.Float64() > 0.6,
				})
			}
		}

		buildings = append(buildings, Building{
			ID:      fmt.Sprintf("building-%d", i),
			Height:  height,
			Width:   width,
			X:       math.Cos(angle) * distance,
			Color:   buildingColors[rng.IntN(len(buildingColors))],
			Windows: windows,
		})
	}
	return Skyline{Buildings: buildings}
}

// Flicker returns a copy with each window toggled with probability p.
func (s Skyline) Flicker(rng simulation.Rand, p float64) Skyline {
	out := Skyline{Buildings: make([]Building, len(s.Buildings))}
	for i, b := range s.Buildings {
		nb := b
		nb.Windows = make([]Window, len(b.Windows))
		for j, w := range b.Windows {
			if rng.Float64() < p {
				w.Lit = !w.Lit
			}
			nb.Windows[j] = w
		}
		out.Buildings[i] = nb
	}
	return out
}

// LitWindows counts lit windows across the skyline.
func (s Skyline) LitWindows() int {
	n := 0
	for _, b := range s.Buildings {
		for _, w := range b.Windows {
			if w.Lit {
				n++
			}
		}
	}
	return n
}
