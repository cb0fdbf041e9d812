package surface

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind groups surfaces by geometric family.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindPlane
	KindSphere
	KindCylinder
	KindCone
	KindQuadric
	KindTorus
	KindMacrobody
)

// Sense is the side of a surface a point lies on.
type Sense int

const (
	SenseOn       Sense = 0
	SensePositive Sense = 1
	SenseNegative Sense = -1
)

// String returns "+", "-" or "0".
func (s Sense) String() string {
	switch s {
	case SensePositive:
		return "+"
	case SenseNegative:
		return "-"
	default:
		return "0"
	}
}
