package motion

import "github.com/lixenwraith/stonerview/osc"

// Builder wraps an osc.Context with a fluent, error-latching construction interface
// The first rejected construction is kept; later calls become no-ops returning the zero handle
//
// Example usage:
//
//	b := motion.NewBuilder(ctx)
//	theta := b.Linear(b.Wrap(0, 36000, 25), b.Constant(900))
//	if err := b.Err(); err != nil { ... }
type Builder struct {
	ctx *osc.Context
	err error
}

// NewBuilder returns a Builder creating oscillators in ctx
func NewBuilder(ctx *osc.Context) *Builder {
	return &Builder{ctx: ctx}
}

// Err returns the first construction error, if any
func (b *Builder) Err() error {
	return b.err
}

// Context returns the underlying oscillator context
func (b *Builder) Context() *osc.Context {
	return b.ctx
}

func (b *Builder) keep(o osc.Osc, err error) osc.Osc {
	if err != nil {
		b.err = err
		return osc.Osc{}
	}
	return o
}

func (b *Builder) Constant(k int) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.Constant(k))
}

func (b *Builder) Wrap(min, max, step int) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.Wrap(min, max, step))
}

func (b *Builder) Bounce(min, max, step int) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.Bounce(min, max, step))
}

func (b *Builder) Phaser(phaseLen int) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.Phaser(phaseLen))
}

func (b *Builder) RandPhaser(minLen, maxLen int) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.RandPhaser(minLen, maxLen))
}

func (b *Builder) VeryRandPhaser(minLen, maxLen, size int) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.VeryRandPhaser(minLen, maxLen, size))
}

func (b *Builder) VeloWrap(min, max int, step osc.Osc) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.VeloWrap(min, max, step))
}

func (b *Builder) Linear(base, diff osc.Osc) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.Linear(base, diff))
}

func (b *Builder) Buffer(source osc.Osc) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.Buffer(source))
}

func (b *Builder) Multiplex(sel, g0, g1, g2, g3 osc.Osc) osc.Osc {
	if b.err != nil {
		return osc.Osc{}
	}
	return b.keep(b.ctx.Multiplex(sel, g0, g1, g2, g3))
}
