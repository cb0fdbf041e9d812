package export

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mcnp-csg/internal/csg"
	"mcnp-csg/internal/deck"
	"mcnp-csg/internal/diagnostic"
)

// ErrNotResolved is returned for decks whose geometry has not been created.
var ErrNotResolved = errors.New("deck geometry is not resolved")

// Options select the optional parts of the model.
type Options struct {
	IncludeTree      bool
	IncludeInstances bool
}

// Model is the serializable form of a resolved deck.
type Model struct {
	Title       string                  `yaml:"title"`
	Surfaces    []Surface               `yaml:"surfaces"`
	Cells       []Cell                  `yaml:"cells"`
	Transforms  []Transform             `yaml:"transforms,omitempty"`
	Instances   []Instance              `yaml:"instances,omitempty"`
	Diagnostics []diagnostic.Diagnostic `yaml:"diagnostics,omitempty"`
}

// Surface is one surface card.
type Surface struct {
	ID           int       `yaml:"id"`
	Mnemonic     string    `yaml:"mnemonic"`
	Kind         string    `yaml:"kind"`
	Coefficients []float64 `yaml:"coefficients,flow"`
	Boundary     string    `yaml:"boundary,omitempty"`
	Transform    int       `yaml:"transform,omitempty"`
	Periodic     int       `yaml:"periodic,omitempty"`
}

// Transform is one TR card in resolved form.
type Transform struct {
	ID      int       `yaml:"id"`
	Entries []float64 `yaml:"entries,flow"`
}

// Cell is one cell card after like-but expansion.
type Cell struct {
	ID         int       `yaml:"id"`
	Material   int       `yaml:"material"`
	Density    *float64  `yaml:"density,omitempty"`
	Universe   int       `yaml:"universe"`
	Expression string    `yaml:"expression"`
	Tree       *Node     `yaml:"tree,omitempty"`
	Trcl       []float64 `yaml:"trcl,omitempty,flow"`
	Fill       *Fill     `yaml:"fill,omitempty"`
	Params     []string  `yaml:"params,omitempty"`
}

// Fill describes what a cell is filled with.
type Fill struct {
	Lattice   string       `yaml:"lattice,omitempty"`
	Ranges    [][2]int     `yaml:"ranges,omitempty,flow"`
	Universes []int        `yaml:"universes,flow"`
	Pitch     [][3]float64 `yaml:"pitch,omitempty,flow"`
	Unbounded bool         `yaml:"unbounded,omitempty"`
}

// Node is a CSG tree node. Leaves carry a surface with its sense or a cell.
type Node struct {
	Op       string  `yaml:"op"`
	Surface  int     `yaml:"surface,omitempty"`
	Sense    string  `yaml:"sense,omitempty"`
	Cell     int     `yaml:"cell,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// Instance is one placed cell.
type Instance struct {
	Cell      int       `yaml:"cell"`
	Universe  int       `yaml:"universe"`
	Path      []int     `yaml:"path,flow"`
	Index     []int     `yaml:"index,omitempty,flow"`
	Transform []float64 `yaml:"transform,omitempty,flow"`
}

// FromDeck builds the model of a resolved deck.
func FromDeck(d *deck.Deck, opts Options) (*Model, error) {
	if !d.Resolved() {
		return nil, ErrNotResolved
	}

	m := &Model{
		Title:    d.Title(),
		Surfaces: []Surface{},
		Cells:    []Cell{},
	}

	diags := d.Diagnostics()
	if all := diags.All(); len(all) > 0 {
		m.Diagnostics = all
	}

	for _, s := range d.Surfaces() {
		m.Surfaces = append(m.Surfaces, exportSurface(s))
	}

	for _, dc := range d.DataCards() {
		tc, ok := dc.(*deck.TransformCard)
		if !ok {
			continue
		}

		m.Transforms = append(m.Transforms, Transform{ID: tc.Ident(), Entries: tc.Transform().Entries()})
	}

	for _, c := range d.Cells() {
		cell, err := exportCell(c, opts)
		if err != nil {
			return nil, err
		}

		m.Cells = append(m.Cells, cell)
	}

	if opts.IncludeInstances {
		for _, in := range d.Instances() {
			m.Instances = append(m.Instances, exportInstance(in))
		}
	}

	return m, nil
}

func exportSurface(s *deck.SurfaceCard) Surface {
	out := Surface{
		ID:           s.Ident(),
		Mnemonic:     s.Mnemonic(),
		Kind:         strings.ToLower(s.Surface().Kind().String()),
		Coefficients: s.Args(),
		Periodic:     s.Periodic(),
	}

	switch s.Boundary() {
	case deck.BoundaryReflecting:
		out.Boundary = "reflecting"
	case deck.BoundaryWhite:
		out.Boundary = "white"
	}

	if ref := s.Transform(); ref != nil {
		out.Transform = ref.ID()
	}

	return out
}

func exportCell(c deck.Cell, opts Options) (Cell, error) {
	out := Cell{
		ID:         c.Ident(),
		Material:   c.Material(),
		Universe:   c.Universe(),
		Expression: csg.Format(c.Tree()),
	}

	if rho, ok := c.Density(); ok {
		out.Density = &rho
	}

	if opts.IncludeTree {
		out.Tree = exportNode(c.Tree())
	}

	if ref := c.Trcl(); ref != nil {
		t, err := ref.Get()
		if err != nil {
			return Cell{}, fmt.Errorf("cell %d trcl: %w", c.Ident(), err)
		}

		out.Trcl = t.Entries()
	}

	if c.HasFill() {
		out.Fill = exportFill(c.Fill())
	}

	for _, p := range c.Params() {
		out.Params = append(out.Params, p.String())
	}

	return out, nil
}

func exportFill(l *deck.Lattice) *Fill {
	f := &Fill{Universes: l.Universes(), Unbounded: l.Unbounded()}

	if l.Kind() == deck.LatticeNone {
		return f
	}

	f.Lattice = l.Kind().String()

	for _, r := range l.Ranges() {
		f.Ranges = append(f.Ranges, [2]int{r.Lo, r.Hi})
	}

	for _, b := range l.Basis() {
		f.Pitch = append(f.Pitch, [3]float64(b))
	}

	return f
}

func exportNode(n csg.Node) *Node {
	switch v := n.(type) {
	case *csg.Halfspace:
		return &Node{Op: "halfspace", Surface: v.Surface, Sense: v.Sense.String()}
	case *csg.CellRef:
		return &Node{Op: "cell", Cell: v.Cell}
	case *csg.Complement:
		return &Node{Op: "complement", Children: []*Node{exportNode(v.X)}}
	case *csg.Intersect:
		return &Node{Op: "intersect", Children: []*Node{exportNode(v.L), exportNode(v.R)}}
	case *csg.Union:
		return &Node{Op: "union", Children: []*Node{exportNode(v.L), exportNode(v.R)}}
	default:
		return nil
	}
}

func exportInstance(in *deck.Instance) Instance {
	out := Instance{
		Cell:     in.Cell().Ident(),
		Universe: in.Universe(),
		Path:     in.Path(),
	}

	if in.InLattice() {
		idx := in.Index()
		out.Index = idx[:]
	}

	if t := in.Transform(); !t.IsIdentity() {
		out.Transform = t.Entries()
	}

	return out
}

// Marshal renders the model as YAML.
func Marshal(m *Model) ([]byte, error) {
	return yaml.Marshal(m)
}

// Unmarshal reads a model produced by Marshal.
func Unmarshal(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}

	return &m, nil
}

// WriteFile writes the model to path.
func WriteFile(m *Model, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model file %s: %w", path, err)
	}

	return nil
}
