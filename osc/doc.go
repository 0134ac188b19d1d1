// Package osc implements the oscillator engine that drives the animation.
//
// An oscillator is a generator of integer tuples: at every tick it yields
// NumEls values, one per animated element. Oscillators are created through a
// Context, which owns them, and are stepped together by Context.Advance.
// Reading a value with Context.Get never changes state, so the same tick can
// be sampled any number of times.
//
// Kinds:
//   - Constant, Wrap, Bounce: scalar sweeps, identical across the tuple
//   - Phaser, RandPhaser, VeryRandPhaser: run-length phase selectors
//   - VeloWrap: wrap whose step is read from another oscillator every tick
//   - Linear: base(n) + n*diff(n), spreads a value across the tuple
//   - Buffer: delays the index-0 stream of its source by n ticks
//   - Multiplex: picks one of four inputs per element from a selector
//
// Composite kinds can only reference oscillators that already exist in the
// same Context, so creation order is always a valid evaluation order.
package osc
