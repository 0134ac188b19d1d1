package osc

import (
	"fmt"
	"math/rand/v2"
)

// DefaultSeed seeds the random phasers when no generator is supplied
const DefaultSeed = 1

// Context owns every oscillator of one animation graph and advances them as a unit
// A Context is not safe for concurrent use
type Context struct {
	nodes []node
	rng   *rand.Rand
	tick  uint64
}

// Option configures a Context at creation
type Option func(*Context)

// WithSeed seeds the Context's PCG generator
func WithSeed(seed uint64) Option {
	return func(c *Context) {
		c.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand makes the Context draw phase lengths and values from r
func WithRand(r *rand.Rand) Option {
	return func(c *Context) {
		if r != nil {
			c.rng = r
		}
	}
}

// NewContext creates an empty oscillator graph
func NewContext(opts ...Option) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		WithSeed(DefaultSeed)(c)
	}
	return c
}

// Advance steps every owned oscillator by exactly one tick, in creation order
// Children precede their parents, so a parent reading a child during its own step sees the new tick
func (c *Context) Advance() {
	for _, n := range c.nodes {
		n.advance(c)
	}
	c.tick++
}

// Get returns element n of the oscillator's tuple at the current tick
func (c *Context) Get(o Osc, n int) (int, error) {
	if err := c.own(o); err != nil {
		return 0, err
	}
	if n < 0 || n >= NumEls {
		return 0, fmt.Errorf("%w: index %d outside [0,%d)", ErrInvalidArgument, n, NumEls)
	}
	return c.nodes[o.id].value(c, n), nil
}

// Tuple returns all NumEls values of the oscillator at the current tick
func (c *Context) Tuple(o Osc) ([NumEls]int, error) {
	var t [NumEls]int
	if err := c.own(o); err != nil {
		return t, err
	}
	nd := c.nodes[o.id]
	for i := range t {
		t[i] = nd.value(c, i)
	}
	return t, nil
}

// Tick returns the number of Advance calls made so far
func (c *Context) Tick() uint64 {
	return c.tick
}

// Len returns the number of oscillators owned by the Context
func (c *Context) Len() int {
	return len(c.nodes)
}

// Owns reports whether o was created by this Context
func (c *Context) Owns(o Osc) bool {
	return c.own(o) == nil
}

// Kind returns the kind of an owned oscillator
func (c *Context) Kind(o Osc) (Kind, error) {
	if err := c.own(o); err != nil {
		return 0, err
	}
	return c.nodes[o.id].kind(), nil
}

// Bounds returns the static value range of an owned oscillator
func (c *Context) Bounds(o Osc) (Bounds, error) {
	if err := c.own(o); err != nil {
		return Bounds{}, err
	}
	return c.nodes[o.id].bounds(), nil
}

// Nodes returns handles to every owned oscillator in creation order
func (c *Context) Nodes() []Osc {
	out := make([]Osc, len(c.nodes))
	for i := range c.nodes {
		out[i] = Osc{ctx: c, id: i}
	}
	return out
}

func (c *Context) own(o Osc) error {
	if o.ctx != c || o.id < 0 || o.id >= len(c.nodes) {
		return fmt.Errorf("%w (%v)", ErrForeignNode, o)
	}
	return nil
}

func (c *Context) register(n node) Osc {
	c.nodes = append(c.nodes, n)
	return Osc{ctx: c, id: len(c.nodes) - 1}
}

// drawLen returns a phase length uniformly from [lo, hi]
func (c *Context) drawLen(lo, hi int) int {
	return lo + c.rng.IntN(hi-lo+1)
}
