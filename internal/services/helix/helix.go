// Package helix computes the decorative double helix shown on the dashboard.
package helix

import "math"

const (
	DefaultPoints         = 300
	DefaultConnectorEvery = 15
	DefaultFrames         = 60

	zMin = -6.0
	zMax = 6.0
)

// Point is an x, y, z triple.
type Point [3]float64

// Frame is the helix rotated by Phase radians.
type Frame struct {
	Phase      float64    `json:"phase"`
	StrandA    []Point    `json:"strandA"`
	StrandB    []Point    `json:"strandB"`
	Connectors [][2]Point `json:"connectors"`
}

// Helix is the animation: frame 0 is the resting pose.
type Helix struct {
	Frames []Frame `json:"frames"`
}

// Generate builds frames evenly spaced over one full turn, both ends included.
// Out of range arguments fall back to the defaults.
func Generate(points, connectorEvery, frames int) Helix {
	if points < 2 || points > 5000 {
		points = DefaultPoints
	}
	if connectorEvery < 1 {
		connectorEvery = DefaultConnectorEvery
	}
	if frames < 1 || frames > 360 {
		frames = DefaultFrames
	}

	z := linspace(zMin, zMax, points)
	phases := linspace(0, 2*math.Pi, frames)

	h := Helix{Frames: make([]Frame, 0, frames)}
	for _, phase := range phases {
		h.Frames = append(h.Frames, frame(z, phase, connectorEvery))
	}
	return h
}

func frame(z []float64, phase float64, connectorEvery int) Frame {
	f := Frame{
		Phase:   phase,
		StrandA: make([]Point, len(z)),
		StrandB: make([]Point, len(z)),
	}
	for i, zi := range z {
		x, y := math.Cos(zi+phase), math.Sin(zi+phase)
		f.StrandA[i] = Point{x, y, zi}
		f.StrandB[i] = Point{-x, -y, zi}
	}
	for i := 0; i < len(z); i += connectorEvery {
		f.Connectors = append(f.Connectors, [2]Point{f.StrandA[i], f.StrandB[i]})
	}
	return f
}

// linspace returns n evenly spaced values from start to stop inclusive.
func linspace(start, stop float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}
