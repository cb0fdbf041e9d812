package deck

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"mcnp-csg/internal/csg"
)

// Diagnostic codes reported while resolving.
const (
	CodeUnusedSurface    = "unused-surface"
	CodeSelfFill         = "self-filled-element"
	CodeUnboundedLattice = "unbounded-lattice"
)

// CreateGeometry resolves every reference of a parsed deck:
//
//  1. like-but cells are materialized from their base cells,
//  2. transform references of surfaces, cells and fills are bound,
//  3. every surface and cell number used in a geometry is checked,
//  4. complement and fill chains are checked for cycles,
//  5. lattice pitches are derived and instances are composed from the root
//     universe down.
//
// It runs once. Later calls return ErrAlreadyResolved after a success, or
// the original error after a failure, and never modify the deck.
func (d *Deck) CreateGeometry() error {
	if d.resolved {
		return ErrAlreadyResolved
	}

	if d.resolveErr != nil {
		return d.resolveErr
	}

	if err := d.resolve(); err != nil {
		d.resolveErr = err
		d.instances = nil

		return err
	}

	d.resolved = true

	return nil
}

func (d *Deck) resolve() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"like cells", d.resolveLikes},
		{"references", d.bindRefs},
		{"geometry", d.checkGeometry},
		{"complements", d.checkComplementCycles},
		{"fills", d.resolveFills},
		{"instances", d.compose},
	}

	for _, s := range steps {
		if err := s.fn(); err != nil {
			return err
		}

		d.log.Debug("resolved", slog.String("step", s.name))
	}

	d.log.Debug("geometry ready",
		slog.Int("instances", len(d.instances)),
		slog.Int("warnings", len(d.diags.Warnings)))

	return nil
}

func (d *Deck) resolveLikes() error {
	state := make(map[int]int) // 1 visiting, 2 done

	var visit func(l *likeCell) error

	visit = func(l *likeCell) error {
		switch state[l.ident] {
		case 1:
			return cardErr(CardCell, l.ident, l.line,
				fmt.Errorf("%w: like chain returns to cell %d", ErrCircularReference, l.ident))
		case 2:
			return nil
		}

		state[l.ident] = 1

		base, ok := d.Cell(l.base)
		if !ok {
			return cardErr(CardCell, l.ident, l.line,
				fmt.Errorf("%w: cell %d", ErrUnresolvedReference, l.base))
		}

		if bl, ok := base.(*likeCell); ok {
			if err := visit(bl); err != nil {
				return err
			}
		}

		if err := l.materialize(base.card(), d.transforms()); err != nil {
			return err
		}

		state[l.ident] = 2

		return nil
	}

	for _, c := range d.cells {
		if l, ok := c.(*likeCell); ok {
			if err := visit(l); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *Deck) bindRefs() error {
	for _, s := range d.surfaces {
		if err := s.bind(); err != nil {
			return err
		}

		if p := s.Periodic(); p != 0 {
			if _, ok := d.Surface(p); !ok {
				return cardErr(CardSurface, s.ident, s.line,
					fmt.Errorf("%w: periodic surface %d", ErrUnresolvedReference, p))
			}
		}
	}

	for _, c := range d.cells {
		if err := c.card().bindRefs(); err != nil {
			return err
		}
	}

	return nil
}

func (d *Deck) checkGeometry() error {
	used := make(map[int]bool)

	for _, c := range d.cells {
		cc := c.card()

		for _, id := range csg.SurfaceIDs(cc.tree) {
			if _, ok := d.Surface(id); !ok {
				return cardErr(CardCell, cc.ident, cc.line,
					fmt.Errorf("%w: surface %d", ErrDanglingReference, id))
			}

			used[id] = true
		}

		for _, id := range csg.CellIDs(cc.tree) {
			if _, ok := d.Cell(id); !ok {
				return cardErr(CardCell, cc.ident, cc.line,
					fmt.Errorf("%w: cell %d", ErrDanglingReference, id))
			}
		}
	}

	for _, s := range d.surfaces {
		if p := s.Periodic(); p != 0 {
			used[s.ident], used[p] = true, true
		}
	}

	for _, s := range d.surfaces {
		if !used[s.ident] {
			d.diags.AddWarning(CodeUnusedSurface, "surface is not used by any cell",
				fmt.Sprintf("surface %d", s.ident), s.line)
		}
	}

	return nil
}

// checkComplementCycles rejects cells whose complements lead back to
// themselves, directly or through other cells.
func (d *Deck) checkComplementCycles() error {
	g := newRefGraph(len(d.cells))

	for i, c := range d.cells {
		for _, id := range csg.CellIDs(c.Tree()) {
			g.link(i, d.cellIndex[id])
		}
	}

	members := g.cycle()
	if members == nil {
		return nil
	}

	ids := make([]string, len(members))
	for i, n := range members {
		ids[i] = fmt.Sprint(d.cells[n].Ident())
	}

	first := d.cells[members[0]]

	return cardErr(CardCell, first.Ident(), first.Line(),
		fmt.Errorf("%w: complements among cells %s", ErrCircularReference, strings.Join(ids, ", ")))
}

func (d *Deck) resolveFills() error {
	universes := d.Universes()
	index := make(map[int]int, len(universes))

	for i, u := range universes {
		index[u] = i
	}

	g := newRefGraph(len(universes))

	for _, c := range d.cells {
		cc := c.card()
		if cc.fill == nil {
			continue
		}

		for _, u := range cc.fill.Universes() {
			if u == 0 {
				continue
			}

			if cc.lat != LatticeNone && u == cc.universe {
				continue
			}

			j, ok := index[u]
			if !ok {
				return cardErr(CardCell, cc.ident, cc.line,
					fmt.Errorf("%w: universe %d", ErrUnresolvedReference, u))
			}

			g.link(index[cc.universe], j)
		}

		if cc.lat != LatticeNone {
			if err := computeBasis(cc.fill, d.latticePlanes(cc)); err != nil {
				return cardErr(CardCell, cc.ident, cc.line, err)
			}
		}
	}

	members := g.cycle()
	if members == nil {
		return nil
	}

	inCycle := make(map[int]bool, len(members))
	names := make([]string, len(members))

	for i, n := range members {
		inCycle[universes[n]] = true
		names[i] = fmt.Sprint(universes[n])
	}

	err := fmt.Errorf("%w: fills among universes %s", ErrCircularReference, strings.Join(names, ", "))

	for _, c := range d.cells {
		cc := c.card()
		if cc.fill == nil || !inCycle[cc.universe] {
			continue
		}

		onCycle := func(u int) bool {
			return inCycle[u] && (cc.lat == LatticeNone || u != cc.universe)
		}

		if slices.ContainsFunc(cc.fill.Universes(), onCycle) {
			return cardErr(CardCell, cc.ident, cc.line, err)
		}
	}

	return err
}

// latticePlanes returns the planes bounding a lattice cell in first-use
// order.
func (d *Deck) latticePlanes(c *cellCard) []planeAt {
	var out []planeAt

	for _, id := range csg.SurfaceIDs(c.tree) {
		s, _ := d.Surface(id)
		if p, ok := placedPlane(s); ok {
			out = append(out, p)
		}
	}

	return out
}
