package deck

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mcnp-csg/internal/common"
	"mcnp-csg/internal/dataref"
	"mcnp-csg/internal/surface"
	"mcnp-csg/internal/xform"
)

// LatticeKind is the value of a cell's lat parameter.
type LatticeKind int

const (
	LatticeNone LatticeKind = iota
	LatticeHexahedral
	LatticeHexagonal
)

func (k LatticeKind) String() string {
	switch k {
	case LatticeNone:
		return "none"
	case LatticeHexahedral:
		return "hexahedral"
	case LatticeHexagonal:
		return "hexagonal"
	default:
		return common.UnknownStr
	}
}

// Range is an inclusive index range of one lattice dimension.
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.Hi - r.Lo + 1 }

func (r Range) String() string { return fmt.Sprintf("%d:%d", r.Lo, r.Hi) }

// FillElement is the universe placed in one lattice element together with
// its optional transform.
type FillElement struct {
	Universe  int
	Transform dataref.Ref[xform.Transform]
}

// Lattice describes what fills a cell. A plain fill is a lattice of kind
// LatticeNone with a single element at index (0,0,0). It is read-only
// outside this package.
type Lattice struct {
	kind   LatticeKind
	ranges [3]Range
	// elements are stored with the i index varying fastest.
	elements []FillElement
	// unbounded is set for a lattice cell filled with a single universe
	// without index ranges; it repeats indefinitely.
	unbounded bool

	ranged bool
	basis  [3]xform.Vec3
}

func (l *Lattice) Kind() LatticeKind { return l.kind }
func (l *Lattice) Ranges() [3]Range  { return l.ranges }
func (l *Lattice) Unbounded() bool   { return l.unbounded }

// Len returns the number of elements.
func (l *Lattice) Len() int { return len(l.elements) }

// Elements returns the elements with the i index varying fastest. The slice
// and its references are copies.
func (l *Lattice) Elements() []FillElement { return cloneElements(l.elements) }

// Index returns the (i,j,k) index of element n.
func (l *Lattice) Index(n int) [3]int {
	ni, nj := l.ranges[0].Len(), l.ranges[1].Len()

	return [3]int{
		l.ranges[0].Lo + n%ni,
		l.ranges[1].Lo + (n/ni)%nj,
		l.ranges[2].Lo + n/(ni*nj),
	}
}

// Element returns the element at index (i,j,k).
func (l *Lattice) Element(idx [3]int) (FillElement, bool) {
	n := 0
	stride := 1

	for d := range 3 {
		r := l.ranges[d]
		if !common.InRange(r.Lo, idx[d], r.Hi) {
			return FillElement{}, false
		}

		n += (idx[d] - r.Lo) * stride
		stride *= r.Len()
	}

	return l.elements[n].clone(), true
}

// Basis returns the element pitch vectors along i, j and k in the lattice
// cell's coordinates. They are known once the geometry is resolved.
func (l *Lattice) Basis() [3]xform.Vec3 { return l.basis }

// Offset returns the translation of element idx relative to element (0,0,0).
func (l *Lattice) Offset(idx [3]int) xform.Vec3 {
	var v xform.Vec3
	for d := range 3 {
		v = v.Add(l.basis[d].Scale(float64(idx[d])))
	}

	return v
}

// Universes returns the distinct universes placed by the fill, in order of
// first appearance.
func (l *Lattice) Universes() []int {
	var out []int

	seen := make(map[int]bool)

	for _, e := range l.elements {
		if !seen[e.Universe] {
			seen[e.Universe] = true
			out = append(out, e.Universe)
		}
	}

	return out
}

func (l *Lattice) clone() *Lattice {
	c := *l
	c.elements = cloneElements(l.elements)

	return &c
}

func (e FillElement) clone() FillElement {
	if e.Transform != nil {
		e.Transform = e.Transform.Clone()
	}

	return e
}

func cloneElements(elems []FillElement) []FillElement {
	out := make([]FillElement, len(elems))
	for i, e := range elems {
		out[i] = e.clone()
	}

	return out
}

// parseFill reads the values of a fill or *fill parameter:
//
//	u
//	u (n)
//	u (o1 o2 o3 ...)
//	i0:i1 j0:j1 k0:k1 e1 [(..)] e2 nR ...
func parseFill(values []string, degrees bool, transforms dataref.Registry[xform.Transform]) (*Lattice, error) {
	if len(values) == 0 {
		return nil, invalidf("fill has no universe")
	}

	if !strings.Contains(values[0], ":") {
		elems, err := parseFillElements(values, degrees, transforms)
		if err != nil {
			return nil, err
		}

		if !common.IsSingle(elems) {
			return nil, invalidf("fill without index ranges takes one universe, got %d", len(elems))
		}

		return &Lattice{elements: elems}, nil
	}

	if len(values) < 3 {
		return nil, invalidf("lattice fill needs three index ranges")
	}

	l := &Lattice{ranged: true}

	for d := range 3 {
		r, err := parseRange(values[d])
		if err != nil {
			return nil, err
		}

		l.ranges[d] = r
	}

	elems, err := parseFillElements(values[3:], degrees, transforms)
	if err != nil {
		return nil, err
	}

	want := common.Product([]int{l.ranges[0].Len(), l.ranges[1].Len(), l.ranges[2].Len()})
	if len(elems) != want {
		return nil, invalidf("lattice %s %s %s has %d elements, fill lists %d",
			l.ranges[0], l.ranges[1], l.ranges[2], want, len(elems))
	}

	l.elements = elems

	return l, nil
}

func parseRange(word string) (Range, error) {
	lo, hi, ok := strings.Cut(word, ":")
	if !ok {
		return Range{}, invalidf("bad lattice range %q", word)
	}

	a, err1 := common.ParseInt(lo)
	b, err2 := common.ParseInt(hi)

	if err1 != nil || err2 != nil || b < a {
		return Range{}, invalidf("bad lattice range %q", word)
	}

	return Range{Lo: a, Hi: b}, nil
}

func parseFillElements(values []string, degrees bool, transforms dataref.Registry[xform.Transform]) ([]FillElement, error) {
	var out []FillElement

	for i := 0; i < len(values); i++ {
		v := values[i]

		switch {
		case v == "(":
			end := i + 1
			for end < len(values) && values[end] != ")" {
				end++
			}

			if end == len(values) {
				return nil, invalidf("unbalanced '(' in fill")
			}

			if len(out) == 0 {
				return nil, invalidf("fill transform before any universe")
			}

			ref, err := transformRef(values[i+1:end], degrees, transforms)
			if err != nil {
				return nil, err
			}

			out[len(out)-1].Transform = ref
			i = end
		case isRepeat(v):
			if len(out) == 0 {
				return nil, invalidf("repeat %q before any universe", v)
			}

			n, _ := strconv.Atoi(v[:len(v)-1])
			prev := out[len(out)-1]

			for range n {
				out = append(out, prev.clone())
			}
		default:
			u, err := common.ParseInt(v)
			if err != nil || u < 0 {
				return nil, invalidf("bad fill universe %q", v)
			}

			out = append(out, FillElement{Universe: u})
		}
	}

	return out, nil
}

func isRepeat(word string) bool {
	if len(word) < 2 || word[len(word)-1] != 'r' {
		return false
	}

	_, err := strconv.Atoi(word[:len(word)-1])

	return err == nil
}

// transformRef turns the contents of a parenthesized transform into a
// reference: a single integer names a TR card, anything else is an inline
// transform.
func transformRef(words []string, degrees bool, transforms dataref.Registry[xform.Transform]) (dataref.Ref[xform.Transform], error) {
	if len(words) == 1 {
		if n, err := common.ParseInt(words[0]); err == nil {
			if n <= 0 {
				return nil, invalidf("transform number must be positive, got %d", n)
			}

			return dataref.NewLookup(n, transforms), nil
		}
	}

	vals, err := common.ParseFloats(words)
	if err != nil {
		return nil, invalidf("%v", err)
	}

	t, err := xform.FromEntries(vals, degrees)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}

	return dataref.NewValue(t), nil
}

// planeAt is a plane n·p = d in the lattice cell's coordinates.
type planeAt struct {
	normal xform.Vec3
	d      float64
}

// placedPlane returns the plane of s after its transform, if s is planar.
func placedPlane(s *SurfaceCard) (planeAt, bool) {
	p, ok := s.Surface().(*surface.Plane)
	if !ok {
		return planeAt{}, false
	}

	out := planeAt{normal: p.Normal, d: p.D}

	if ref := s.Transform(); ref != nil {
		t, err := ref.Get()
		if err != nil {
			return planeAt{}, false
		}

		out.normal = t.ApplyDir(p.Normal)
		out.d = p.D + out.normal.Dot(t.Shift)
	}

	return out, true
}

// pitch returns the vector from the element bounded by (a, b) to the
// neighbour across a.
func pitch(a, b planeAt) (xform.Vec3, error) {
	la, lb := a.normal.Length(), b.normal.Length()
	if la == 0 || lb == 0 {
		return xform.Vec3{}, invalidf("degenerate lattice plane")
	}

	cos := a.normal.Dot(b.normal) / (la * lb)
	if math.Abs(math.Abs(cos)-1) > 1e-9 {
		return xform.Vec3{}, invalidf("lattice planes are not parallel")
	}

	u := a.normal.Scale(1 / la)
	posA := a.d / la

	posB := b.d / lb
	if cos < 0 {
		posB = -posB
	}

	return u.Scale(posA - posB), nil
}

// latticePairs are the plane pairs giving the i, j and k pitch.
var latticePairs = map[LatticeKind][3]int{
	LatticeHexahedral: {0, 1, 2},
	LatticeHexagonal:  {0, 1, 3},
}

// computeBasis derives the pitch vectors of a lattice from the planes
// bounding its cell, taken in pairs in order of first use.
func computeBasis(l *Lattice, planes []planeAt) error {
	pairs, ok := latticePairs[l.kind]
	if !ok {
		return nil
	}

	for d, pair := range pairs {
		if 2*pair+1 >= len(planes) {
			if l.ranges[d].Lo != 0 || l.ranges[d].Hi != 0 {
				return invalidf("lattice has no bounding planes for index %d", d+1)
			}

			continue
		}

		v, err := pitch(planes[2*pair], planes[2*pair+1])
		if err != nil {
			return err
		}

		l.basis[d] = v
	}

	return nil
}
