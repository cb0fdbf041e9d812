package deck

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"mcnp-csg/internal/dataref"
	"mcnp-csg/internal/diagnostic"
	"mcnp-csg/internal/lines"
	"mcnp-csg/internal/xform"
)

// DefaultMaxFillDepth bounds how deep universes may be nested.
const DefaultMaxFillDepth = 64

// Options configure Build and Parse.
type Options struct {
	// Logger receives debug output about each pass. Nil discards it.
	Logger *slog.Logger
	// MaxFillDepth caps fill nesting when composing instances.
	MaxFillDepth int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{MaxFillDepth: DefaultMaxFillDepth}
}

// Deck is a parsed input deck. Cards are kept in declaration order and
// indexed by identifier.
type Deck struct {
	title    string
	cells    []Cell
	surfaces []*SurfaceCard
	data     []DataCard

	cellIndex    map[int]int
	surfaceIndex map[int]int
	dataIndex    map[DataCardID]int

	instances []*Instance
	diags     diagnostic.Diagnostics

	resolved   bool
	resolveErr error

	opts Options
	log  *slog.Logger
}

// Build reads a deck and resolves its geometry. Any error aborts the whole
// build; no partial deck is returned.
func Build(r io.Reader, opts Options) (*Deck, error) {
	d, err := Parse(r, opts)
	if err != nil {
		return nil, err
	}

	if err := d.CreateGeometry(); err != nil {
		return nil, err
	}

	return d, nil
}

// Parse reads the title, cell, surface and data blocks without resolving
// any reference. Call CreateGeometry before using fills or instances.
func Parse(r io.Reader, opts Options) (*Deck, error) {
	if opts.MaxFillDepth <= 0 {
		opts.MaxFillDepth = DefaultMaxFillDepth
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	d := &Deck{
		cellIndex:    make(map[int]int),
		surfaceIndex: make(map[int]int),
		dataIndex:    make(map[DataCardID]int),
		opts:         opts,
		log:          log,
	}

	ex := lines.NewExtractor(r)

	title, err := ex.Title()
	if err != nil {
		return nil, blockErr("title", err)
	}

	d.title = title

	if err := d.parseCells(ex); err != nil {
		return nil, err
	}

	if err := d.parseSurfaces(ex); err != nil {
		return nil, err
	}

	if err := d.parseData(ex); err != nil {
		return nil, err
	}

	d.log.Debug("deck parsed",
		slog.String("title", d.title),
		slog.Int("cells", len(d.cells)),
		slog.Int("surfaces", len(d.surfaces)),
		slog.Int("data", len(d.data)))

	return d, nil
}

func blockErr(block string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", ErrMissingBlock, block)
	}

	return fmt.Errorf("reading %s block: %w", block, err)
}

func (d *Deck) parseCells(ex *lines.Extractor) error {
	cards, err := ex.Block()
	if err != nil {
		return blockErr("cell", err)
	}

	for _, c := range cards {
		cell, err := parseCellCard(c, d.transforms(), &d.diags)
		if err != nil {
			return err
		}

		if i, dup := d.cellIndex[cell.Ident()]; dup {
			return cardErr(CardCell, cell.Ident(), c.Line,
				fmt.Errorf("%w: first defined on line %d", ErrDuplicateIdentifier, d.cells[i].Line()))
		}

		d.cellIndex[cell.Ident()] = len(d.cells)
		d.cells = append(d.cells, cell)
	}

	d.log.Debug("cell block read", slog.Int("cards", len(cards)))

	return nil
}

func (d *Deck) parseSurfaces(ex *lines.Extractor) error {
	cards, err := ex.Block()
	if err != nil {
		return blockErr("surface", err)
	}

	for _, c := range cards {
		s, err := parseSurfaceCard(c.Words, c.Line, d.transforms())
		if err != nil {
			return err
		}

		if i, dup := d.surfaceIndex[s.Ident()]; dup {
			return cardErr(CardSurface, s.Ident(), c.Line,
				fmt.Errorf("%w: first defined on line %d", ErrDuplicateIdentifier, d.surfaces[i].Line()))
		}

		d.surfaceIndex[s.Ident()] = len(d.surfaces)
		d.surfaces = append(d.surfaces, s)
	}

	d.log.Debug("surface block read", slog.Int("cards", len(cards)))

	return nil
}

// parseData reads the data block. A deck may end after its surfaces.
func (d *Deck) parseData(ex *lines.Extractor) error {
	cards, err := ex.Block()
	if errors.Is(err, io.EOF) {
		return nil
	}

	if err != nil {
		return blockErr("data", err)
	}

	for _, c := range cards {
		dc, err := parseDataCard(c)
		if err != nil {
			return err
		}

		key := dc.Key()
		if i, dup := d.dataIndex[key]; dup {
			kind := CardData
			if key.Kind == DataTR {
				kind = CardTransform
			}

			return &CardError{Kind: kind, ID: key.ID, Name: dataName(key), Line: c.Line,
				Err: fmt.Errorf("%w: first defined on line %d", ErrDuplicateIdentifier, d.data[i].Line())}
		}

		d.dataIndex[key] = len(d.data)
		d.data = append(d.data, dc)
	}

	d.log.Debug("data block read", slog.Int("cards", len(cards)))

	return nil
}

func dataName(key DataCardID) string {
	if key.Kind == DataTR {
		return ""
	}

	return key.Name
}

// transforms is the registry lazy transform references bind against.
func (d *Deck) transforms() dataref.Registry[xform.Transform] {
	return dataref.RegistryFunc[xform.Transform](d.Transform)
}

// Title returns the title card.
func (d *Deck) Title() string { return d.title }

// Cells returns every cell in declaration order.
func (d *Deck) Cells() []Cell { return append([]Cell(nil), d.cells...) }

// Surfaces returns every surface card in declaration order.
func (d *Deck) Surfaces() []*SurfaceCard { return append([]*SurfaceCard(nil), d.surfaces...) }

// DataCards returns every data card in declaration order.
func (d *Deck) DataCards() []DataCard { return append([]DataCard(nil), d.data...) }

// Cell returns cell id.
func (d *Deck) Cell(id int) (Cell, bool) {
	i, ok := d.cellIndex[id]
	if !ok {
		return nil, false
	}

	return d.cells[i], true
}

// Surface returns surface id.
func (d *Deck) Surface(id int) (*SurfaceCard, bool) {
	i, ok := d.surfaceIndex[id]
	if !ok {
		return nil, false
	}

	return d.surfaces[i], true
}

// DataCard returns the data card with the given key.
func (d *Deck) DataCard(key DataCardID) (DataCard, bool) {
	i, ok := d.dataIndex[key]
	if !ok {
		return nil, false
	}

	return d.data[i], true
}

// Transform returns a copy of the transform of TR card n. References to
// TR cards bind through it, so a caller never holds the card's own value.
func (d *Deck) Transform(n int) (xform.Transform, bool) {
	dc, ok := d.DataCard(TransformID(n))
	if !ok {
		return xform.Transform{}, false
	}

	tc, ok := dc.(*TransformCard)
	if !ok {
		return xform.Transform{}, false
	}

	return tc.Transform(), true
}

// CellsOfUniverse returns the cells whose u parameter is universe, in
// declaration order. Cells without u belong to universe 0.
func (d *Deck) CellsOfUniverse(universe int) []Cell {
	var out []Cell

	for _, c := range d.cells {
		if c.Universe() == universe {
			out = append(out, c)
		}
	}

	return out
}

// Universes returns every universe that has at least one cell, ascending.
func (d *Deck) Universes() []int {
	seen := make(map[int]bool)

	var out []int

	for _, c := range d.cells {
		if !seen[c.Universe()] {
			seen[c.Universe()] = true
			out = append(out, c.Universe())
		}
	}

	sort.Ints(out)

	return out
}

// Diagnostics returns the warnings and notes collected so far.
func (d *Deck) Diagnostics() diagnostic.Diagnostics { return d.diags }

// Resolved reports whether CreateGeometry has succeeded.
func (d *Deck) Resolved() bool { return d.resolved }

// Instances returns the placed cells in depth-first order from the root
// universe. It is empty until the geometry is resolved.
func (d *Deck) Instances() []*Instance { return append([]*Instance(nil), d.instances...) }
