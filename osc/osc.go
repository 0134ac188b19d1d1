package osc

import (
	"errors"
	"fmt"
)

const (
	// NumEls is the tuple width, one value per animated element
	NumEls = 40

	// NumPhases is the number of inputs a Multiplex selects between
	NumPhases = 4
)

var (
	// ErrInvalidArgument reports a rejected construction parameter or an out-of-range tuple index
	ErrInvalidArgument = errors.New("osc: invalid argument")

	// ErrForeignNode reports a handle that was not created by the receiving Context
	ErrForeignNode = fmt.Errorf("%w: oscillator belongs to another context", ErrInvalidArgument)
)

// Kind identifies the generator function of an oscillator
type Kind uint8

const (
	KindConstant Kind = iota
	KindWrap
	KindBounce
	KindPhaser
	KindRandPhaser
	KindVeryRandPhaser
	KindVeloWrap
	KindLinear
	KindBuffer
	KindMultiplex
)

var kindNames = [...]string{
	KindConstant:       "constant",
	KindWrap:           "wrap",
	KindBounce:         "bounce",
	KindPhaser:         "phaser",
	KindRandPhaser:     "randphaser",
	KindVeryRandPhaser: "veryrandphaser",
	KindVeloWrap:       "velowrap",
	KindLinear:         "linear",
	KindBuffer:         "buffer",
	KindMultiplex:      "multiplex",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a kind name as returned by Kind.String back to its Kind
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Osc is a handle to an oscillator owned by a Context
// The zero value is not a valid handle
type Osc struct {
	ctx *Context
	id  int
}

// ID returns the creation index of the oscillator within its Context
func (o Osc) ID() int {
	return o.id
}

// Valid reports whether the handle was produced by a Context
func (o Osc) Valid() bool {
	return o.ctx != nil
}

func (o Osc) String() string {
	if o.ctx == nil {
		return "osc(invalid)"
	}
	return fmt.Sprintf("#%d", o.id)
}

// Bounds is the closed range of values an oscillator can produce at any tick and index
type Bounds struct {
	Min, Max int
}

// Contains reports whether v lies within the bounds
func (b Bounds) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// Within reports whether b is entirely inside outer
func (b Bounds) Within(outer Bounds) bool {
	return b.Min >= outer.Min && b.Max <= outer.Max
}

func (b Bounds) union(o Bounds) Bounds {
	return Bounds{Min: min(b.Min, o.Min), Max: max(b.Max, o.Max)}
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d,%d]", b.Min, b.Max)
}
