package render

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stonerview/motion"
	"github.com/lixenwraith/stonerview/osc"
	"github.com/lixenwraith/stonerview/parameter"
	"github.com/lixenwraith/stonerview/vmath"
)

// viewExtent is the half-size, in camera-scaled units, that fits the viewport
// At the stock scale of 4 this frames world coordinates in [-1.5, 1.5]
const viewExtent = 6.0

// depthFloor is the dimmest depth cue applied to the farthest elements
const depthFloor = 0.55

// Options controls how elements are drawn
type Options struct {
	Wireframe  bool // outline glyphs only, in white
	Edges      bool // filled glyphs on a grey cell to mark the outline
	Shape      int  // 0 follows each element's selector, 1..NumShapes forces one shape
	ShowStatus bool // reserve the bottom row for the status line
}

// Status is the information shown on the status line
type Status struct {
	Tick    uint64
	FPS     float64
	Preset  string
	Paused  bool
	Sound   bool
	Message string // transient key feedback
}

// Screen is the subset of tcell.Screen the renderer draws through
type Screen interface {
	Size() (int, int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// TerminalRenderer rasterizes element records onto a terminal screen
type TerminalRenderer struct {
	screen Screen
	camera Camera
	opts   Options

	// Per-frame scratch
	view  [osc.NumEls]vmath.Vec3F
	order [osc.NumEls]int
}

// NewTerminalRenderer creates a renderer drawing to screen
func NewTerminalRenderer(screen Screen, camera Camera, opts Options) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		camera: camera,
		opts:   opts,
	}
}

func (r *TerminalRenderer) Camera() Camera          { return r.camera }
func (r *TerminalRenderer) SetCamera(c Camera)      { r.camera = c }
func (r *TerminalRenderer) Options() Options        { return r.opts }
func (r *TerminalRenderer) SetOptions(opts Options) { r.opts = opts }

// RenderFrame draws a full frame: elements far to near, then the status line
func (r *TerminalRenderer) RenderFrame(elems []motion.Elem, st Status) {
	r.screen.Clear()

	width, height := r.screen.Size()
	fieldHeight := height
	if r.opts.ShowStatus && height > 1 {
		fieldHeight--
	}

	bgStyle := tcell.StyleDefault.Background(ToTcell(RgbBackground))
	for y := 0; y < fieldHeight; y++ {
		for x := 0; x < width; x++ {
			r.screen.SetContent(x, y, ' ', nil, bgStyle)
		}
	}

	r.drawElements(elems, width, fieldHeight)

	if r.opts.ShowStatus && height > 1 {
		r.drawStatusBar(st, width, height-1)
	}

	r.screen.Show()
}

// Project maps an element position to a cell and a view-space depth (larger is nearer)
// ok is false when the cell falls outside a width x height viewport
func (r *TerminalRenderer) Project(pos [3]float32, width, height int) (x, y int, depth float64, ok bool) {
	return project(r.camera.Matrix(), pos, width, height)
}

func project(m vmath.Mat3, pos [3]float32, width, height int) (x, y int, depth float64, ok bool) {
	v := m.Apply(vmath.V3FFrom32(pos))
	return place(v, width, height)
}

func place(v vmath.Vec3F, width, height int) (x, y int, depth float64, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, false
	}
	// Cells are about twice as tall as wide; fit the extent to whichever axis is tighter
	unit := min(float64(width)/parameter.CameraAspect, float64(height)) / (2 * viewExtent)
	fx := float64(width)/2 + v.X*unit*parameter.CameraAspect
	fy := float64(height)/2 - v.Y*unit
	x, y = int(fx), int(fy)
	if fx < 0 || fy < 0 || x >= width || y >= height {
		return x, y, v.Z, false
	}
	return x, y, v.Z, true
}

func (r *TerminalRenderer) drawElements(elems []motion.Elem, width, height int) {
	count := min(len(elems), osc.NumEls)
	if count == 0 {
		return
	}

	m := r.camera.Matrix()
	zMin, zMax := 0.0, 0.0
	for i := 0; i < count; i++ {
		r.view[i] = m.Apply(vmath.V3FFrom32(elems[i].Pos))
		r.order[i] = i
		if i == 0 || r.view[i].Z < zMin {
			zMin = r.view[i].Z
		}
		if i == 0 || r.view[i].Z > zMax {
			zMax = r.view[i].Z
		}
	}

	order := r.order[:count]
	sort.SliceStable(order, func(a, b int) bool {
		return r.view[order[a]].Z < r.view[order[b]].Z
	})

	for _, i := range order {
		x, y, z, ok := place(r.view[i], width, height)
		if !ok {
			continue
		}
		cue := 1.0
		if zMax > zMin {
			cue = depthFloor + (1-depthFloor)*(z-zMin)/(zMax-zMin)
		}
		ch, style := r.cell(elems[i], cue)
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// cell resolves the glyph and style for one element
func (r *TerminalRenderer) cell(el motion.Elem, cue float64) (rune, tcell.Style) {
	shape := el.Shape
	if r.opts.Shape > 0 && r.opts.Shape <= parameter.NumShapes {
		shape = r.opts.Shape - 1
	}

	bg := ToTcell(RgbBackground)
	if r.opts.Wireframe {
		fg := ToTcell(Scale(RgbWireframe, cue))
		return glyph(shape, true, el.Vervec[0], el.Vervec[1]), tcell.StyleDefault.Foreground(fg).Background(bg)
	}

	fg := ToTcell(Scale(BlendOver(RgbBackground, el.Col), cue))
	style := tcell.StyleDefault.Foreground(fg).Background(bg)
	if r.opts.Edges {
		style = style.Background(ToTcell(Scale(RgbEdges, cue*0.5)))
	}
	return glyph(shape, false, el.Vervec[0], el.Vervec[1]), style
}

// drawStatusBar draws tick, rate and preset on row y
func (r *TerminalRenderer) drawStatusBar(st Status, width, y int) {
	style := tcell.StyleDefault.Foreground(ToTcell(RgbStatusText)).Background(ToTcell(RgbStatusBg))

	text := fmt.Sprintf(" tick %d  %.1f fps  %s", st.Tick, st.FPS, st.Preset)
	if st.Sound {
		text += "  ♪"
	}
	if st.Paused {
		text += "  [paused]"
	}
	if st.Message != "" {
		text += "  " + st.Message
	} else {
		text += "  q:quit space:pause w:wire e:edges s:shape arrows:orbit"
	}

	x := 0
	for _, ch := range text {
		if x >= width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	for ; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
