package surface

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"mcnp-csg/internal/match"
	"mcnp-csg/internal/xform"
)

var (
	ErrUnknownMnemonic = errors.New("unknown surface mnemonic")
	ErrArgumentCount   = errors.New("surface argument count mismatch")
	ErrDegenerate      = errors.New("degenerate surface")
)

// OnTolerance is the magnitude below which Eval is treated as on the surface.
const OnTolerance = 1e-12

// Surface is the capability set shared by every analytic shape.
type Surface interface {
	Kind() Kind
	// Mnemonic is the lower-case card mnemonic the surface was built from.
	Mnemonic() string
	// Coefficients returns a copy of the card's numeric entries.
	Coefficients() []float64
	// Eval returns the implicit function value at p (surface coordinates).
	Eval(p xform.Vec3) float64
}

// SenseOf classifies p against s.
func SenseOf(s Surface, p xform.Vec3) Sense {
	v := s.Eval(p)

	switch {
	case math.Abs(v) <= OnTolerance:
		return SenseOn
	case v > 0:
		return SensePositive
	default:
		return SenseNegative
	}
}

// base carries the data every shape reports back verbatim.
type base struct {
	mnemonic string
	args     []float64
}

func (b base) Mnemonic() string { return b.mnemonic }

func (b base) Coefficients() []float64 { return slices.Clone(b.args) }

type builder func(b base) Surface

type shapeDef struct {
	arity []int
	build builder
}

var shapes = map[string]shapeDef{
	"p":   {arity: []int{4}, build: newPlane},
	"px":  {arity: []int{1}, build: newAxisPlane(0)},
	"py":  {arity: []int{1}, build: newAxisPlane(1)},
	"pz":  {arity: []int{1}, build: newAxisPlane(2)},
	"so":  {arity: []int{1}, build: newSphereAt(-1)},
	"s":   {arity: []int{4}, build: newSphere},
	"sx":  {arity: []int{2}, build: newSphereAt(0)},
	"sy":  {arity: []int{2}, build: newSphereAt(1)},
	"sz":  {arity: []int{2}, build: newSphereAt(2)},
	"c/x": {arity: []int{3}, build: newCylinder(0, true)},
	"c/y": {arity: []int{3}, build: newCylinder(1, true)},
	"c/z": {arity: []int{3}, build: newCylinder(2, true)},
	"cx":  {arity: []int{1}, build: newCylinder(0, false)},
	"cy":  {arity: []int{1}, build: newCylinder(1, false)},
	"cz":  {arity: []int{1}, build: newCylinder(2, false)},
	"k/x": {arity: []int{4, 5}, build: newCone(0, true)},
	"k/y": {arity: []int{4, 5}, build: newCone(1, true)},
	"k/z": {arity: []int{4, 5}, build: newCone(2, true)},
	"kx":  {arity: []int{2, 3}, build: newCone(0, false)},
	"ky":  {arity: []int{2, 3}, build: newCone(1, false)},
	"kz":  {arity: []int{2, 3}, build: newCone(2, false)},
	"sq":  {arity: []int{10}, build: newSpecialQuadric},
	"gq":  {arity: []int{10}, build: newGeneralQuadric},
	"tx":  {arity: []int{6}, build: newTorus(0)},
	"ty":  {arity: []int{6}, build: newTorus(1)},
	"tz":  {arity: []int{6}, build: newTorus(2)},
	"rpp": {arity: []int{6}, build: newRPP},
	"box": {arity: []int{12}, build: newBox},
	"sph": {arity: []int{4}, build: newSphere},
	"rcc": {arity: []int{7}, build: newRCC},
	"trc": {arity: []int{8}, build: newTRC},
	"rec": {arity: []int{10, 12}, build: newREC},
	"rhp": {arity: []int{9, 15}, build: newHexPrism},
	"hex": {arity: []int{9, 15}, build: newHexPrism},
	"ell": {arity: []int{7}, build: newEllipsoid},
	"wed": {arity: []int{12}, build: newWedge},
}

// New builds the surface named by mnemonic (case-insensitive).
func New(mnemonic string, args []float64) (Surface, error) {
	m := strings.ToLower(mnemonic)

	def, ok := shapes[m]
	if !ok {
		err := fmt.Errorf("%w %q", ErrUnknownMnemonic, mnemonic)
		if s := match.Suggest(m, Mnemonics(), 0); len(s) > 0 {
			err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(s, ", "))
		}

		return nil, err
	}

	if !slices.Contains(def.arity, len(args)) {
		return nil, fmt.Errorf("%w: %q takes %s coefficients, got %d",
			ErrArgumentCount, m, arityString(def.arity), len(args))
	}

	out := def.build(base{mnemonic: m, args: slices.Clone(args)})

	if v, ok := out.(validator); ok {
		if err := v.validate(); err != nil {
			return nil, fmt.Errorf("%w: %q %w", ErrDegenerate, m, err)
		}
	}

	return out, nil
}

// validator is implemented by shapes whose coefficients can describe a
// body with no extent, where Eval would be undefined.
type validator interface {
	validate() error
}

// Mnemonics returns all supported mnemonics in sorted order.
func Mnemonics() []string {
	out := make([]string, 0, len(shapes))
	for m := range shapes {
		out = append(out, m)
	}

	sort.Strings(out)

	return out
}

// Arity returns the accepted coefficient counts for mnemonic.
func Arity(mnemonic string) ([]int, bool) {
	def, ok := shapes[strings.ToLower(mnemonic)]
	if !ok {
		return nil, false
	}

	return slices.Clone(def.arity), true
}

func arityString(a []int) string {
	parts := make([]string, len(a))
	for i, n := range a {
		parts[i] = fmt.Sprint(n)
	}

	return strings.Join(parts, " or ")
}

func vec(a []float64) xform.Vec3 {
	return xform.Vec3{a[0], a[1], a[2]}
}

func axisVec(axis int) xform.Vec3 {
	var v xform.Vec3
	v[axis] = 1

	return v
}
