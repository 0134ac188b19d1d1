package osc

import (
	"fmt"
	"math"
)

// node is the per-kind behavior behind a handle
// Children are referenced by creation index in the owning Context
type node interface {
	kind() Kind
	advance(c *Context)
	value(c *Context, n int) int
	bounds() Bounds
	params() string
	children() []int
}

type constant struct {
	val int
}

func (k *constant) kind() Kind              { return KindConstant }
func (k *constant) advance(*Context)        {}
func (k *constant) value(*Context, int) int { return k.val }
func (k *constant) bounds() Bounds          { return Bounds{k.val, k.val} }
func (k *constant) params() string          { return fmt.Sprintf("value=%d", k.val) }
func (k *constant) children() []int         { return nil }

// wrap is a sawtooth: past one end it restarts from the other
type wrap struct {
	min, max, step int
	cur            int
}

func (w *wrap) kind() Kind { return KindWrap }

func (w *wrap) advance(*Context) {
	w.cur = wrapStep(w.cur, w.step, w.min, w.max)
}

func (w *wrap) value(*Context, int) int { return w.cur }
func (w *wrap) bounds() Bounds          { return Bounds{w.min, w.max} }
func (w *wrap) children() []int         { return nil }

func (w *wrap) params() string {
	return fmt.Sprintf("min=%d max=%d step=%d cur=%d", w.min, w.max, w.step, w.cur)
}

// wrapStep compares step against the distance left to each end, so extreme steps never overflow
// Distances are taken as uint: cur lies in [lo,hi] and the difference fits even when the span exceeds MaxInt
func wrapStep(cur, step, lo, hi int) int {
	if step > 0 && uint(step) > uint(hi)-uint(cur) {
		return lo
	}
	if step < 0 && uint(-step) > uint(cur)-uint(lo) {
		return hi
	}
	return cur + step
}

// bounce is a triangle wave: crossing an end reflects the overshoot and negates step
type bounce struct {
	min, max, step int
	cur            int
}

func (b *bounce) kind() Kind { return KindBounce }

func (b *bounce) advance(*Context) {
	span := uint(b.max) - uint(b.min)
	if b.step > 0 {
		room := uint(b.max) - uint(b.cur)
		if uint(b.step) <= room {
			b.cur += b.step
			return
		}
		// Reflect off max; a step wider than the range stops at min
		over := uint(b.step) - room
		b.cur = b.min
		if over <= span {
			b.cur = int(uint(b.max) - over)
		}
	} else {
		room := uint(b.cur) - uint(b.min)
		if uint(-b.step) <= room {
			b.cur += b.step
			return
		}
		over := uint(-b.step) - room
		b.cur = b.max
		if over <= span {
			b.cur = int(uint(b.min) + over)
		}
	}
	b.step = reverse(b.step)
}

// reverse negates a step, MinInt has no positive counterpart and becomes MaxInt
func reverse(step int) int {
	if step == math.MinInt {
		return math.MaxInt
	}
	return -step
}

func (b *bounce) value(*Context, int) int { return b.cur }
func (b *bounce) bounds() Bounds          { return Bounds{b.min, b.max} }
func (b *bounce) children() []int         { return nil }

func (b *bounce) params() string {
	return fmt.Sprintf("min=%d max=%d step=%d cur=%d", b.min, b.max, b.step, b.cur)
}

// phaser counts ticks instead of dividing: floor(i/phaselen) mod NumPhases
type phaser struct {
	phaseLen int
	count    int
	phase    int
}

func (p *phaser) kind() Kind { return KindPhaser }

func (p *phaser) advance(*Context) {
	p.count++
	if p.count >= p.phaseLen {
		p.count = 0
		p.phase = (p.phase + 1) % NumPhases
	}
}

func (p *phaser) value(*Context, int) int { return p.phase }
func (p *phaser) bounds() Bounds          { return Bounds{0, NumPhases - 1} }
func (p *phaser) children() []int         { return nil }

func (p *phaser) params() string {
	return fmt.Sprintf("len=%d count=%d phase=%d", p.phaseLen, p.count, p.phase)
}

// randPhaser steps through the phases sequentially, each held for a freshly drawn length
type randPhaser struct {
	minLen, maxLen int
	count          int
	curLen         int
	phase          int
}

func (p *randPhaser) kind() Kind { return KindRandPhaser }

func (p *randPhaser) advance(c *Context) {
	p.count++
	if p.count >= p.curLen {
		p.count = 0
		p.curLen = c.drawLen(p.minLen, p.maxLen)
		p.phase = (p.phase + 1) % NumPhases
	}
}

func (p *randPhaser) value(*Context, int) int { return p.phase }
func (p *randPhaser) bounds() Bounds          { return Bounds{0, NumPhases - 1} }
func (p *randPhaser) children() []int         { return nil }

func (p *randPhaser) params() string {
	return fmt.Sprintf("minlen=%d maxlen=%d count=%d curlen=%d phase=%d",
		p.minLen, p.maxLen, p.count, p.curLen, p.phase)
}

// veryRandPhaser holds a random value in [0,size) for a random length, then redraws both
type veryRandPhaser struct {
	minLen, maxLen int
	size           int
	count          int
	curLen         int
	phase          int
}

func (p *veryRandPhaser) kind() Kind { return KindVeryRandPhaser }

func (p *veryRandPhaser) advance(c *Context) {
	p.count++
	if p.count >= p.curLen {
		p.count = 0
		p.curLen = c.drawLen(p.minLen, p.maxLen)
		p.phase = c.rng.IntN(p.size)
	}
}

func (p *veryRandPhaser) value(*Context, int) int { return p.phase }
func (p *veryRandPhaser) bounds() Bounds          { return Bounds{0, p.size - 1} }
func (p *veryRandPhaser) children() []int         { return nil }

func (p *veryRandPhaser) params() string {
	return fmt.Sprintf("minlen=%d maxlen=%d size=%d count=%d curlen=%d phase=%d",
		p.minLen, p.maxLen, p.size, p.count, p.curLen, p.phase)
}

// veloWrap wraps like wrap but takes this tick's step from element 0 of another oscillator
type veloWrap struct {
	min, max int
	step     int
	cur      int
}

func (v *veloWrap) kind() Kind { return KindVeloWrap }

func (v *veloWrap) advance(c *Context) {
	v.cur = wrapStep(v.cur, c.nodes[v.step].value(c, 0), v.min, v.max)
}

func (v *veloWrap) value(*Context, int) int { return v.cur }
func (v *veloWrap) bounds() Bounds          { return Bounds{v.min, v.max} }
func (v *veloWrap) children() []int         { return []int{v.step} }

func (v *veloWrap) params() string {
	return fmt.Sprintf("min=%d max=%d cur=%d", v.min, v.max, v.cur)
}

// linear has no state of its own: base(n) + n*diff(n)
type linear struct {
	base, diff int
	lim        Bounds
}

func (l *linear) kind() Kind       { return KindLinear }
func (l *linear) advance(*Context) {}

func (l *linear) value(c *Context, n int) int {
	return c.nodes[l.base].value(c, n) + n*c.nodes[l.diff].value(c, n)
}

func (l *linear) bounds() Bounds  { return l.lim }
func (l *linear) params() string  { return "" }
func (l *linear) children() []int { return []int{l.base, l.diff} }

// linearBounds reports false when the range cannot be represented in an int
func linearBounds(base, diff Bounds) (Bounds, bool) {
	const last = NumEls - 1
	lo, okLo := mulInt(last, diff.Min)
	hi, okHi := mulInt(last, diff.Max)
	if !okLo || !okHi {
		return Bounds{}, false
	}
	lo, okLo = addInt(base.Min, min(0, lo))
	hi, okHi = addInt(base.Max, max(0, hi))
	if !okLo || !okHi {
		return Bounds{}, false
	}
	return Bounds{Min: lo, Max: hi}, true
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	return c, true
}

func addInt(a, b int) (int, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

// buffer keeps the last NumEls index-0 values of its source; element n is the value n ticks ago
type buffer struct {
	source int
	ring   [NumEls]int
	head   int
	fill   int
	lim    Bounds
}

func newBuffer(c *Context, source int) *buffer {
	src := c.nodes[source]
	b := &buffer{source: source, fill: 1, lim: src.bounds()}
	b.ring[0] = src.value(c, 0)
	return b
}

func (b *buffer) kind() Kind { return KindBuffer }

func (b *buffer) advance(c *Context) {
	b.head = (b.head + 1) % NumEls
	b.ring[b.head] = c.nodes[b.source].value(c, 0)
	if b.fill < NumEls {
		b.fill++
	}
}

// value falls back to the oldest captured sample when n reaches past the recorded history
func (b *buffer) value(_ *Context, n int) int {
	if n >= b.fill {
		n = b.fill - 1
	}
	return b.ring[(b.head-n+NumEls)%NumEls]
}

func (b *buffer) bounds() Bounds  { return b.lim }
func (b *buffer) children() []int { return []int{b.source} }

func (b *buffer) params() string {
	return fmt.Sprintf("history=%d", b.fill)
}

// multiplex forwards each element to the input chosen by the selector at that element
type multiplex struct {
	sel int
	in  [NumPhases]int
	lim Bounds
}

func (m *multiplex) kind() Kind       { return KindMultiplex }
func (m *multiplex) advance(*Context) {}

func (m *multiplex) value(c *Context, n int) int {
	return c.nodes[m.in[c.nodes[m.sel].value(c, n)]].value(c, n)
}

func (m *multiplex) bounds() Bounds { return m.lim }
func (m *multiplex) params() string { return "" }

func (m *multiplex) children() []int {
	return []int{m.sel, m.in[0], m.in[1], m.in[2], m.in[3]}
}
