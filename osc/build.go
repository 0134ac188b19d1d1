package osc

import "fmt"

// Constant creates an oscillator that yields k for every tick and index
func (c *Context) Constant(k int) (Osc, error) {
	return c.register(&constant{val: k}), nil
}

// Wrap creates a sawtooth sweeping [min,max] by step, restarting from the opposite end
// A positive step starts at min, a negative one at max
func (c *Context) Wrap(min, max, step int) (Osc, error) {
	if err := checkSweep("wrap", min, max, step); err != nil {
		return Osc{}, err
	}
	return c.register(&wrap{min: min, max: max, step: step, cur: sweepStart(min, max, step)}), nil
}

// Bounce creates a triangle wave sweeping [min,max] by step, reversing at each end
func (c *Context) Bounce(min, max, step int) (Osc, error) {
	if err := checkSweep("bounce", min, max, step); err != nil {
		return Osc{}, err
	}
	return c.register(&bounce{min: min, max: max, step: step, cur: sweepStart(min, max, step)}), nil
}

// Phaser creates a selector cycling 0..NumPhases-1, holding each phase for phaseLen ticks
func (c *Context) Phaser(phaseLen int) (Osc, error) {
	if phaseLen <= 0 {
		return Osc{}, fmt.Errorf("%w: phaser length %d must be positive", ErrInvalidArgument, phaseLen)
	}
	return c.register(&phaser{phaseLen: phaseLen}), nil
}

// RandPhaser creates a Phaser whose phase lengths are drawn uniformly from [minLen,maxLen]
func (c *Context) RandPhaser(minLen, maxLen int) (Osc, error) {
	if err := checkLens("randphaser", minLen, maxLen); err != nil {
		return Osc{}, err
	}
	return c.register(&randPhaser{
		minLen: minLen,
		maxLen: maxLen,
		curLen: c.drawLen(minLen, maxLen),
	}), nil
}

// VeryRandPhaser creates a selector holding a random value in [0,size) for a random length in [minLen,maxLen]
func (c *Context) VeryRandPhaser(minLen, maxLen, size int) (Osc, error) {
	if err := checkLens("veryrandphaser", minLen, maxLen); err != nil {
		return Osc{}, err
	}
	if size <= 0 {
		return Osc{}, fmt.Errorf("%w: veryrandphaser size %d must be positive", ErrInvalidArgument, size)
	}
	p := &veryRandPhaser{minLen: minLen, maxLen: maxLen, size: size}
	p.curLen = c.drawLen(minLen, maxLen)
	p.phase = c.rng.IntN(size)
	return c.register(p), nil
}

// VeloWrap creates a wrap over [min,max] whose per-tick step is element 0 of step
func (c *Context) VeloWrap(min, max int, step Osc) (Osc, error) {
	if min >= max {
		return Osc{}, fmt.Errorf("%w: velowrap min %d must be below max %d", ErrInvalidArgument, min, max)
	}
	if err := c.own(step); err != nil {
		return Osc{}, fmt.Errorf("velowrap step: %w", err)
	}
	return c.register(&veloWrap{min: min, max: max, step: step.id, cur: min}), nil
}

// Linear creates base(n) + n*diff(n)
func (c *Context) Linear(base, diff Osc) (Osc, error) {
	if err := c.own(base); err != nil {
		return Osc{}, fmt.Errorf("linear base: %w", err)
	}
	if err := c.own(diff); err != nil {
		return Osc{}, fmt.Errorf("linear diff: %w", err)
	}
	lim, ok := linearBounds(c.nodes[base.id].bounds(), c.nodes[diff.id].bounds())
	if !ok {
		return Osc{}, fmt.Errorf("%w: linear range overflows int", ErrInvalidArgument)
	}
	return c.register(&linear{base: base.id, diff: diff.id, lim: lim}), nil
}

// Buffer creates a delay line: element n is element 0 of source as it was n ticks ago
// History starts now; reaching further back repeats the value source has at creation
func (c *Context) Buffer(source Osc) (Osc, error) {
	if err := c.own(source); err != nil {
		return Osc{}, fmt.Errorf("buffer source: %w", err)
	}
	return c.register(newBuffer(c, source.id)), nil
}

// Multiplex creates an oscillator yielding in[sel(n)](n) for each element n
// The selector must be statically bounded to [0,NumPhases)
func (c *Context) Multiplex(sel, g0, g1, g2, g3 Osc) (Osc, error) {
	if err := c.own(sel); err != nil {
		return Osc{}, fmt.Errorf("multiplex selector: %w", err)
	}
	if b := c.nodes[sel.id].bounds(); !b.Within(Bounds{0, NumPhases - 1}) {
		return Osc{}, fmt.Errorf("%w: multiplex selector range %v outside [0,%d)", ErrInvalidArgument, b, NumPhases)
	}

	m := &multiplex{sel: sel.id}
	for i, g := range [NumPhases]Osc{g0, g1, g2, g3} {
		if err := c.own(g); err != nil {
			return Osc{}, fmt.Errorf("multiplex input %d: %w", i, err)
		}
		m.in[i] = g.id
		if i == 0 {
			m.lim = c.nodes[g.id].bounds()
		} else {
			m.lim = m.lim.union(c.nodes[g.id].bounds())
		}
	}
	return c.register(m), nil
}

func checkSweep(name string, min, max, step int) error {
	if min >= max {
		return fmt.Errorf("%w: %s min %d must be below max %d", ErrInvalidArgument, name, min, max)
	}
	if step == 0 {
		return fmt.Errorf("%w: %s step must be non-zero", ErrInvalidArgument, name)
	}
	return nil
}

func checkLens(name string, minLen, maxLen int) error {
	if minLen <= 0 {
		return fmt.Errorf("%w: %s min length %d must be positive", ErrInvalidArgument, name, minLen)
	}
	if minLen > maxLen {
		return fmt.Errorf("%w: %s min length %d exceeds max length %d", ErrInvalidArgument, name, minLen, maxLen)
	}
	return nil
}

func sweepStart(min, max, step int) int {
	if step < 0 {
		return max
	}
	return min
}
