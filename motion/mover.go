package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/stonerview/osc"
	"github.com/lixenwraith/stonerview/parameter"
)

// ErrUnknownAttribute reports an attribute name outside Attributes
var ErrUnknownAttribute = errors.New("motion: unknown attribute")

// Elem is one animated element as consumed by the renderer
type Elem struct {
	Pos    [3]float32 `json:"pos"`    // world position
	Vervec [2]float32 `json:"vervec"` // in-plane orientation vector
	Col    [4]float32 `json:"col"`    // RGBA, each in [0,1]
	Shape  int        `json:"shape"`  // [0, NumShapes)
}

// Mover owns an oscillator graph and the element records it drives
// Not safe for concurrent use; the frame driver owns it
type Mover struct {
	ctx   *osc.Context
	graph Graph
	alpha float32
	elems [osc.NumEls]Elem
}

// MoverOption configures a Mover at creation
type MoverOption func(*Mover)

// WithTransparency sets the initial element alpha
func WithTransparency(alpha float32) MoverOption {
	return func(m *Mover) {
		m.alpha = clamp01(alpha)
	}
}

// NewMover validates g against ctx and fills the records for the current tick
func NewMover(ctx *osc.Context, g Graph, opts ...MoverOption) (*Mover, error) {
	if err := g.Validate(ctx); err != nil {
		return nil, err
	}
	m := &Mover{
		ctx:   ctx,
		graph: g,
		alpha: parameter.DefaultTransparency,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

// Step advances the graph one tick and refills every element record
func (m *Mover) Step() error {
	m.ctx.Advance()
	return m.refresh()
}

// Elems returns the records for the current tick
// The slice aliases the Mover's storage and is overwritten by the next Step
func (m *Mover) Elems() []Elem {
	return m.elems[:]
}

// Snapshot returns a copy of the records for the current tick
func (m *Mover) Snapshot() [osc.NumEls]Elem {
	return m.elems
}

// Tick returns the current oscillator tick
func (m *Mover) Tick() uint64 {
	return m.ctx.Tick()
}

// Context returns the oscillator context driving the Mover
func (m *Mover) Context() *osc.Context {
	return m.ctx
}

// Graph returns the attribute roots
func (m *Mover) Graph() Graph {
	return m.graph
}

// Transparency returns the current element alpha
func (m *Mover) Transparency() float32 {
	return m.alpha
}

// SetTransparency sets the element alpha, clamped to [0,1], effective immediately
func (m *Mover) SetTransparency(alpha float32) {
	m.alpha = clamp01(alpha)
	for i := range m.elems {
		m.elems[i].Col[3] = m.alpha
	}
}

func (m *Mover) refresh() error {
	var tuples [6][osc.NumEls]int
	for i, a := range Attributes {
		root, _ := m.graph.Root(a)
		t, err := m.ctx.Tuple(root)
		if err != nil {
			return fmt.Errorf("attribute %s: %w", a, err)
		}
		tuples[i] = t
	}
	theta, rad, alti, color, shape, spin := &tuples[0], &tuples[1], &tuples[2], &tuples[3], &tuples[4], &tuples[5]

	for n := range m.elems {
		el := &m.elems[n]

		a := ThetaRadians(theta[n])
		r := float64(rad[n]) * parameter.LengthUnit
		el.Pos[0] = float32(r * math.Cos(a))
		el.Pos[1] = float32(r * math.Sin(a))
		el.Pos[2] = float32(float64(alti[n]) * parameter.LengthUnit)

		s := ThetaRadians(spin[n])
		el.Vervec[0] = float32(parameter.VervecLength * math.Cos(s))
		el.Vervec[1] = float32(parameter.VervecLength * math.Sin(s))

		el.Col[0], el.Col[1], el.Col[2] = HueRGB(color[n])
		el.Col[3] = m.alpha

		el.Shape = ShapeIndex(shape[n])
	}
	return nil
}

// ThetaRadians converts hundredths of a degree to radians
func ThetaRadians(v int) float64 {
	return float64(v) / parameter.ThetaUnitsPerDegree * math.Pi / 180
}

// HueRGB maps a hue in [0,HueFull) onto a fully saturated color
// Each third blends linearly between two primaries: red to green, green to blue, blue to red
// Values outside the wheel are reduced modulo HueFull
func HueRGB(v int) (r, g, b float32) {
	v %= parameter.HueFull
	if v < 0 {
		v += parameter.HueFull
	}
	seg := float32(parameter.HueSegment)
	switch {
	case v < parameter.HueSegment:
		f := float32(v) / seg
		return 1 - f, f, 0
	case v < 2*parameter.HueSegment:
		f := float32(v-parameter.HueSegment) / seg
		return 0, 1 - f, f
	default:
		f := float32(v-2*parameter.HueSegment) / seg
		return f, 0, 1 - f
	}
}

// ShapeIndex reduces a selector value onto [0, NumShapes)
func ShapeIndex(v int) int {
	v %= parameter.NumShapes
	if v < 0 {
		v += parameter.NumShapes
	}
	return v
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
