package motion

import (
	"fmt"

	"github.com/lixenwraith/stonerview/osc"
	"github.com/lixenwraith/stonerview/parameter"
)

// Attribute names one oscillator root of a Graph
type Attribute string

const (
	AttrTheta Attribute = "theta"
	AttrRad   Attribute = "rad"
	AttrAlti  Attribute = "alti"
	AttrColor Attribute = "color"
	AttrShape Attribute = "shape"
	AttrSpin  Attribute = "spin"
)

// Attributes lists every Graph attribute in output order
var Attributes = []Attribute{AttrTheta, AttrRad, AttrAlti, AttrColor, AttrShape, AttrSpin}

// Graph holds the oscillator root feeding each element attribute
//
// Units:
//   - Theta, Spin: hundredths of a degree
//   - Rad, Alti: thousandths of a world unit
//   - Color: hue, [0,HueFull) wraps around red, green, blue
//   - Shape: shape index, reduced modulo NumShapes
type Graph struct {
	Theta osc.Osc
	Rad   osc.Osc
	Alti  osc.Osc
	Color osc.Osc
	Shape osc.Osc
	Spin  osc.Osc
}

// Root returns the oscillator bound to an attribute
func (g *Graph) Root(a Attribute) (osc.Osc, bool) {
	switch a {
	case AttrTheta:
		return g.Theta, true
	case AttrRad:
		return g.Rad, true
	case AttrAlti:
		return g.Alti, true
	case AttrColor:
		return g.Color, true
	case AttrShape:
		return g.Shape, true
	case AttrSpin:
		return g.Spin, true
	}
	return osc.Osc{}, false
}

// SetRoot binds an oscillator to an attribute
func (g *Graph) SetRoot(a Attribute, o osc.Osc) error {
	switch a {
	case AttrTheta:
		g.Theta = o
	case AttrRad:
		g.Rad = o
	case AttrAlti:
		g.Alti = o
	case AttrColor:
		g.Color = o
	case AttrShape:
		g.Shape = o
	case AttrSpin:
		g.Spin = o
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, a)
	}
	return nil
}

// Validate checks that every attribute is bound to an oscillator owned by ctx
func (g *Graph) Validate(ctx *osc.Context) error {
	for _, a := range Attributes {
		o, _ := g.Root(a)
		if !ctx.Owns(o) {
			return fmt.Errorf("attribute %s: %w", a, osc.ErrForeignNode)
		}
	}
	return nil
}

// DefaultGraph wires the stock animation into ctx
// A slow random phaser switches the orbit between four sweeps while radius, color and shape ripple down the field
func DefaultGraph(ctx *osc.Context) (Graph, error) {
	b := NewBuilder(ctx)

	orbitSel := b.RandPhaser(300, 600)
	theta := b.Multiplex(orbitSel,
		b.Buffer(b.VeloWrap(0, parameter.ThetaFull, b.Bounce(-100, 100, 10))),
		b.Linear(b.Wrap(0, parameter.ThetaFull, 25), b.Constant(900)),
		b.Linear(b.Wrap(0, parameter.ThetaFull, 25), b.Bounce(-1200, 1200, 10)),
		b.Linear(b.VeloWrap(0, parameter.ThetaFull, b.Constant(-40)), b.Wrap(200, 2000, 5)),
	)

	radSel := b.RandPhaser(250, 500)
	rad := b.Multiplex(radSel,
		b.Buffer(b.Bounce(0, 1000, 7)),
		b.Linear(b.Constant(200), b.Constant(20)),
		b.Buffer(b.Bounce(300, 900, 4)),
		b.Linear(b.Bounce(0, 400, 3), b.Constant(15)),
	)

	alti := b.Linear(b.Bounce(-1200, -800, 4), b.Bounce(40, 60, 1))

	hueSel := b.RandPhaser(150, 300)
	color := b.Multiplex(hueSel,
		b.Buffer(b.Wrap(0, parameter.HueFull-1, 7)),
		b.Linear(b.Wrap(0, parameter.HueFull-1, 11), b.Constant(25)),
		b.Buffer(b.VeloWrap(0, parameter.HueFull-1, b.Bounce(-20, 20, 1))),
		b.Linear(b.Constant(0), b.Constant(parameter.HueFull/osc.NumEls)),
	)

	shape := b.Buffer(b.VeryRandPhaser(60, 200, parameter.NumShapes))

	spinSel := b.RandPhaser(400, 800)
	spin := b.Multiplex(spinSel,
		b.Constant(0),
		b.Wrap(0, parameter.ThetaFull, 150),
		b.Linear(b.Wrap(0, parameter.ThetaFull, 150), b.Constant(900)),
		b.Constant(4500),
	)

	if err := b.Err(); err != nil {
		return Graph{}, fmt.Errorf("default graph: %w", err)
	}
	return Graph{Theta: theta, Rad: rad, Alti: alti, Color: color, Shape: shape, Spin: spin}, nil
}
