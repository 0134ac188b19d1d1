package preset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/stonerview/motion"
	"github.com/lixenwraith/stonerview/osc"
)

var (
	// ErrInvalid reports a malformed preset document
	ErrInvalid = errors.New("preset: invalid definition")

	// ErrUnknownNode reports a reference to a node the preset does not define
	ErrUnknownNode = fmt.Errorf("%w: unknown node", ErrInvalid)

	// ErrCycle reports nodes that reference each other
	ErrCycle = fmt.Errorf("%w: reference cycle", ErrInvalid)

	// ErrUnknownPreset reports a name that is neither bundled nor a readable file
	ErrUnknownPreset = errors.New("preset: unknown preset")
)

//go:embed presets/*.yaml
var builtinFS embed.FS

// NodeSpec is one oscillator definition, fields beyond those its kind uses are ignored
type NodeSpec struct {
	Kind string `yaml:"kind"`

	Value int `yaml:"value,omitempty"` // constant
	Min   int `yaml:"min,omitempty"`   // wrap, bounce, velowrap
	Max   int `yaml:"max,omitempty"`   // wrap, bounce, velowrap
	Step  int `yaml:"step,omitempty"`  // wrap, bounce

	Len    int `yaml:"len,omitempty"`    // phaser
	MinLen int `yaml:"minlen,omitempty"` // randphaser, veryrandphaser
	MaxLen int `yaml:"maxlen,omitempty"` // randphaser, veryrandphaser
	Size   int `yaml:"size,omitempty"`   // veryrandphaser

	Velo   string   `yaml:"velo,omitempty"`   // velowrap step source
	Base   string   `yaml:"base,omitempty"`   // linear
	Diff   string   `yaml:"diff,omitempty"`   // linear
	Source string   `yaml:"source,omitempty"` // buffer
	Sel    string   `yaml:"sel,omitempty"`    // multiplex
	In     []string `yaml:"in,omitempty"`     // multiplex, one per phase
}

// Preset is a named oscillator graph with one node bound to every motion attribute
type Preset struct {
	Name        string                      `yaml:"name"`
	Description string                      `yaml:"description,omitempty"`
	Seed        uint64                      `yaml:"seed,omitempty"` // suggested seed, 0 when unset
	Nodes       map[string]NodeSpec         `yaml:"nodes"`
	Attributes  map[motion.Attribute]string `yaml:"attributes"`
}

// Labels maps built oscillators back to their node names
type Labels map[osc.Osc]string

// Parse decodes and validates a preset document, unknown fields are rejected
func Parse(data []byte) (*Preset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Preset
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses a preset file
func Load(file string) (*Preset, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return p, nil
}

// Builtin returns a bundled preset by name
func Builtin(name string) (*Preset, error) {
	data, err := builtinFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return Parse(data)
}

// Names lists the bundled presets in sorted order
func Names() []string {
	files, _ := fs.Glob(builtinFS, "presets/*.yaml")
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".yaml"))
	}
	slices.Sort(names)
	return names
}

// Resolve returns the bundled preset called ref, or else loads ref as a file
func Resolve(ref string) (*Preset, error) {
	if slices.Contains(Names(), ref) {
		return Builtin(ref)
	}
	if _, err := os.Stat(ref); err != nil {
		return nil, fmt.Errorf("%w: %q is not bundled (%s) or a readable file", ErrUnknownPreset, ref, strings.Join(Names(), ", "))
	}
	return Load(ref)
}

// Validate checks kinds, references, attribute bindings and cycles without building anything
func (p *Preset) Validate() error {
	if len(p.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalid)
	}

	names := slices.Sorted(maps.Keys(p.Nodes))
	for _, name := range names {
		spec := p.Nodes[name]
		if _, ok := osc.ParseKind(spec.Kind); !ok {
			return fmt.Errorf("%w: node %q has unknown kind %q", ErrInvalid, name, spec.Kind)
		}
		if spec.Kind == osc.KindMultiplex.String() && len(spec.In) != osc.NumPhases {
			return fmt.Errorf("%w: node %q needs %d inputs, has %d", ErrInvalid, name, osc.NumPhases, len(spec.In))
		}
		for _, ref := range spec.refs() {
			if _, ok := p.Nodes[ref]; !ok {
				return fmt.Errorf("%w %q referenced by %q", ErrUnknownNode, ref, name)
			}
		}
	}

	for a := range p.Attributes {
		if _, ok := (&motion.Graph{}).Root(a); !ok {
			return fmt.Errorf("%w: unknown attribute %q", ErrInvalid, a)
		}
	}
	for _, a := range motion.Attributes {
		ref, ok := p.Attributes[a]
		if !ok {
			return fmt.Errorf("%w: attribute %s unbound", ErrInvalid, a)
		}
		if _, ok := p.Nodes[ref]; !ok {
			return fmt.Errorf("%w %q bound to attribute %s", ErrUnknownNode, ref, a)
		}
	}

	state := make(map[string]int, len(p.Nodes)) // 1 visiting, 2 done
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case 1:
			return fmt.Errorf("%w through %q", ErrCycle, name)
		case 2:
			return nil
		}
		state[name] = 1
		for _, ref := range p.Nodes[name].refs() {
			if err := visit(ref); err != nil {
				return err
			}
		}
		state[name] = 2
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// Build creates the preset's oscillators in ctx and returns the attribute roots
// Children are created before parents, attributes in motion.Attributes order
// On error ctx may already hold nodes built before the failure and should be discarded
func (p *Preset) Build(ctx *osc.Context) (motion.Graph, error) {
	g, _, err := p.BuildLabeled(ctx)
	return g, err
}

// BuildLabeled is Build that also reports the node name of every oscillator it created
func (p *Preset) BuildLabeled(ctx *osc.Context) (motion.Graph, Labels, error) {
	b := &builder{
		p:        p,
		ctx:      ctx,
		built:    make(map[string]osc.Osc, len(p.Nodes)),
		visiting: make(map[string]bool),
		labels:   make(Labels, len(p.Nodes)),
	}

	var g motion.Graph
	for _, a := range motion.Attributes {
		name, ok := p.Attributes[a]
		if !ok {
			return motion.Graph{}, nil, fmt.Errorf("%w: attribute %s unbound", ErrInvalid, a)
		}
		o, err := b.node(name)
		if err != nil {
			return motion.Graph{}, nil, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		if err := g.SetRoot(a, o); err != nil {
			return motion.Graph{}, nil, err
		}
	}
	return g, b.labels, nil
}

type builder struct {
	p        *Preset
	ctx      *osc.Context
	built    map[string]osc.Osc
	visiting map[string]bool
	labels   Labels
}

func (b *builder) node(name string) (osc.Osc, error) {
	if o, ok := b.built[name]; ok {
		return o, nil
	}
	spec, ok := b.p.Nodes[name]
	if !ok {
		return osc.Osc{}, fmt.Errorf("%w %q", ErrUnknownNode, name)
	}
	if b.visiting[name] {
		return osc.Osc{}, fmt.Errorf("%w through %q", ErrCycle, name)
	}

	b.visiting[name] = true
	refs := spec.refs()
	kids := make([]osc.Osc, 0, len(refs))
	for _, ref := range refs {
		o, err := b.node(ref)
		if err != nil {
			return osc.Osc{}, err
		}
		kids = append(kids, o)
	}
	delete(b.visiting, name)

	o, err := spec.build(b.ctx, kids)
	if err != nil {
		return osc.Osc{}, fmt.Errorf("node %q: %w", name, err)
	}
	b.built[name] = o
	b.labels[o] = name
	return o, nil
}

// refs lists the node names a spec reads, in construction argument order
func (s NodeSpec) refs() []string {
	kind, ok := osc.ParseKind(s.Kind)
	if !ok {
		return nil
	}
	switch kind {
	case osc.KindVeloWrap:
		return []string{s.Velo}
	case osc.KindLinear:
		return []string{s.Base, s.Diff}
	case osc.KindBuffer:
		return []string{s.Source}
	case osc.KindMultiplex:
		return append([]string{s.Sel}, s.In...)
	}
	return nil
}

func (s NodeSpec) build(ctx *osc.Context, kids []osc.Osc) (osc.Osc, error) {
	kind, ok := osc.ParseKind(s.Kind)
	if !ok {
		return osc.Osc{}, fmt.Errorf("%w: unknown kind %q", ErrInvalid, s.Kind)
	}
	switch kind {
	case osc.KindConstant:
		return ctx.Constant(s.Value)
	case osc.KindWrap:
		return ctx.Wrap(s.Min, s.Max, s.Step)
	case osc.KindBounce:
		return ctx.Bounce(s.Min, s.Max, s.Step)
	case osc.KindPhaser:
		return ctx.Phaser(s.Len)
	case osc.KindRandPhaser:
		return ctx.RandPhaser(s.MinLen, s.MaxLen)
	case osc.KindVeryRandPhaser:
		return ctx.VeryRandPhaser(s.MinLen, s.MaxLen, s.Size)
	case osc.KindVeloWrap:
		return ctx.VeloWrap(s.Min, s.Max, kids[0])
	case osc.KindLinear:
		return ctx.Linear(kids[0], kids[1])
	case osc.KindBuffer:
		return ctx.Buffer(kids[0])
	case osc.KindMultiplex:
		if len(kids) != 1+osc.NumPhases {
			return osc.Osc{}, fmt.Errorf("%w: multiplex needs %d inputs, has %d", ErrInvalid, osc.NumPhases, len(kids)-1)
		}
		return ctx.Multiplex(kids[0], kids[1], kids[2], kids[3], kids[4])
	}
	return osc.Osc{}, fmt.Errorf("%w: unsupported kind %v", ErrInvalid, kind)
}
