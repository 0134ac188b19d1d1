package motion_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/stonerview/motion"
	"github.com/lixenwraith/stonerview/osc"
	"github.com/lixenwraith/stonerview/parameter"
)

func newDefaultMover(t *testing.T, seed uint64, opts ...motion.MoverOption) *motion.Mover {
	t.Helper()
	ctx := osc.NewContext(osc.WithSeed(seed))
	g, err := motion.DefaultGraph(ctx)
	require.NoError(t, err)
	m, err := motion.NewMover(ctx, g, opts...)
	require.NoError(t, err)
	return m
}

// TestHueRGB checks the three primary blends and wheel reduction
func TestHueRGB(t *testing.T) {
	tests := []struct {
		hue     int
		r, g, b float32
	}{
		{0, 1, 0, 0},
		{500, 0.5, 0.5, 0},
		{1000, 0, 1, 0},
		{1500, 0, 0.5, 0.5},
		{2000, 0, 0, 1},
		{2500, 0.5, 0, 0.5},
		{3000, 1, 0, 0},
		{-1000, 0, 0, 1},
	}

	for _, tt := range tests {
		r, g, b := motion.HueRGB(tt.hue)
		assert.InDelta(t, tt.r, r, 1e-6, "hue %d red", tt.hue)
		assert.InDelta(t, tt.g, g, 1e-6, "hue %d green", tt.hue)
		assert.InDelta(t, tt.b, b, 1e-6, "hue %d blue", tt.hue)
	}
}

// TestShapeIndex verifies any selector value lands on a valid shape
func TestShapeIndex(t *testing.T) {
	for v := -20; v <= 20; v++ {
		s := motion.ShapeIndex(v)
		assert.GreaterOrEqual(t, s, 0)
		assert.Less(t, s, parameter.NumShapes)
	}
	assert.Equal(t, 3, motion.ShapeIndex(3))
	assert.Equal(t, 7, motion.ShapeIndex(-1))
}

// TestMoverRecordRanges runs the stock graph and checks every record stays renderable
func TestMoverRecordRanges(t *testing.T) {
	m := newDefaultMover(t, 11)

	for frame := 0; frame < 2000; frame++ {
		require.NoError(t, m.Step())
		for n, el := range m.Elems() {
			for c := 0; c < 4; c++ {
				require.GreaterOrEqual(t, el.Col[c], float32(0), "frame %d elem %d channel %d", frame, n, c)
				require.LessOrEqual(t, el.Col[c], float32(1), "frame %d elem %d channel %d", frame, n, c)
			}
			require.GreaterOrEqual(t, el.Shape, 0)
			require.Less(t, el.Shape, parameter.NumShapes)

			r := math.Hypot(float64(el.Pos[0]), float64(el.Pos[1]))
			require.LessOrEqual(t, r, 1.2, "frame %d elem %d radius", frame, n)

			vl := math.Hypot(float64(el.Vervec[0]), float64(el.Vervec[1]))
			require.InDelta(t, parameter.VervecLength, vl, 1e-4)
		}
	}
	assert.Equal(t, uint64(2000), m.Tick())
}

// TestMoverDeterministic verifies the same seed replays the same frames
func TestMoverDeterministic(t *testing.T) {
	a := newDefaultMover(t, 5)
	b := newDefaultMover(t, 5)

	for i := 0; i < 700; i++ {
		require.NoError(t, a.Step())
		require.NoError(t, b.Step())
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

// TestMoverTransparency verifies alpha is clamped and applied to every element
func TestMoverTransparency(t *testing.T) {
	m := newDefaultMover(t, 1, motion.WithTransparency(0.25))
	for _, el := range m.Elems() {
		assert.Equal(t, float32(0.25), el.Col[3])
	}

	m.SetTransparency(7)
	assert.Equal(t, float32(1), m.Transparency())
	for _, el := range m.Elems() {
		assert.Equal(t, float32(1), el.Col[3])
	}

	m.SetTransparency(-1)
	require.NoError(t, m.Step())
	for _, el := range m.Elems() {
		assert.Equal(t, float32(0), el.Col[3])
	}
}

// TestMoverHandGraph wires a small graph by hand and checks the unit conversions
func TestMoverHandGraph(t *testing.T) {
	ctx := osc.NewContext()
	b := motion.NewBuilder(ctx)
	g := motion.Graph{
		Theta: b.Linear(b.Constant(0), b.Constant(9000)), // element n at n*90 degrees
		Rad:   b.Constant(500),
		Alti:  b.Linear(b.Constant(-1000), b.Constant(50)),
		Color: b.Constant(1000),
		Shape: b.Wrap(0, 20, 1),
		Spin:  b.Constant(9000),
	}
	require.NoError(t, b.Err())

	m, err := motion.NewMover(ctx, g)
	require.NoError(t, err)

	els := m.Elems()
	assert.InDelta(t, 0.5, els[0].Pos[0], 1e-6)
	assert.InDelta(t, 0.0, els[0].Pos[1], 1e-6)
	assert.InDelta(t, 0.0, els[1].Pos[0], 1e-6)
	assert.InDelta(t, 0.5, els[1].Pos[1], 1e-6)
	assert.InDelta(t, -0.5, els[2].Pos[0], 1e-6)
	assert.InDelta(t, -1.0, els[0].Pos[2], 1e-6)
	assert.InDelta(t, -0.95, els[1].Pos[2], 1e-6)

	assert.InDelta(t, 0.0, els[0].Vervec[0], 1e-6)
	assert.InDelta(t, parameter.VervecLength, els[0].Vervec[1], 1e-6)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, els[5].Col)

	for i := 0; i < 11; i++ {
		require.NoError(t, m.Step())
	}
	// Wrap at 11 reduced modulo NumShapes
	assert.Equal(t, 3, m.Elems()[0].Shape)
}

// TestMoverRejectsIncompleteGraph verifies every attribute must be bound in the mover's context
func TestMoverRejectsIncompleteGraph(t *testing.T) {
	ctx := osc.NewContext()
	b := motion.NewBuilder(ctx)
	k := b.Constant(0)
	g := motion.Graph{Theta: k, Rad: k, Alti: k, Color: k, Shape: k}

	_, err := motion.NewMover(ctx, g)
	require.ErrorIs(t, err, osc.ErrForeignNode)
	assert.Contains(t, err.Error(), "spin")

	other := osc.NewContext()
	g.Spin = k
	_, err = motion.NewMover(other, g)
	require.ErrorIs(t, err, osc.ErrInvalidArgument)
}

// TestBuilderLatchesFirstError verifies later calls are skipped after a rejection
func TestBuilderLatchesFirstError(t *testing.T) {
	ctx := osc.NewContext()
	b := motion.NewBuilder(ctx)

	w := b.Wrap(0, 10, 1)
	bad := b.Phaser(0)
	after := b.Linear(w, b.Constant(1))

	require.ErrorIs(t, b.Err(), osc.ErrInvalidArgument)
	assert.Contains(t, b.Err().Error(), "phaser")
	assert.False(t, bad.Valid())
	assert.False(t, after.Valid())
	assert.Equal(t, 1, ctx.Len())
}

// TestGraphRoots round-trips attribute bindings
func TestGraphRoots(t *testing.T) {
	ctx := osc.NewContext()
	var g motion.Graph
	for i, a := range motion.Attributes {
		o, err := ctx.Constant(i)
		require.NoError(t, err)
		require.NoError(t, g.SetRoot(a, o))
		got, ok := g.Root(a)
		require.True(t, ok)
		assert.Equal(t, o, got)
	}
	require.NoError(t, g.Validate(ctx))
	require.ErrorIs(t, g.SetRoot("hue", osc.Osc{}), motion.ErrUnknownAttribute)
	_, ok := g.Root("hue")
	assert.False(t, ok)
}
