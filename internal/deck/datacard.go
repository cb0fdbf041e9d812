package deck

import (
	"fmt"
	"strings"

	"mcnp-csg/internal/common"
	"mcnp-csg/internal/lines"
	"mcnp-csg/internal/xform"
)

// DataKind separates transform cards from every other data card.
type DataKind int

const (
	DataTR DataKind = iota + 1
	DataOther
)

func (k DataKind) String() string {
	switch k {
	case DataTR:
		return "TR"
	case DataOther:
		return "OTHER"
	default:
		return common.UnknownStr
	}
}

// DataCardID identifies a data card. Transforms are keyed by (TR, "tr", n);
// other cards by their mnemonic and number, e.g. (OTHER, "m", 1).
type DataCardID struct {
	Kind DataKind
	Name string
	ID   int
}

// TransformID returns the key of TR card n.
func TransformID(n int) DataCardID {
	return DataCardID{Kind: DataTR, Name: "tr", ID: n}
}

func (id DataCardID) String() string {
	if id.ID == 0 {
		return id.Name
	}

	name, particles, ok := strings.Cut(id.Name, ":")
	if ok {
		return fmt.Sprintf("%s%d:%s", name, id.ID, particles)
	}

	return fmt.Sprintf("%s%d", id.Name, id.ID)
}

// DataCard is an entry of the data block.
type DataCard interface {
	Kind() DataKind
	Key() DataCardID
	Line() int
	String() string
}

// TransformCard is a TRn or *TRn card.
type TransformCard struct {
	id        int
	degrees   bool
	entries   []float64
	line      int
	transform xform.Transform
}

func (c *TransformCard) Kind() DataKind   { return DataTR }
func (c *TransformCard) Key() DataCardID  { return TransformID(c.id) }
func (c *TransformCard) Line() int        { return c.line }
func (c *TransformCard) Ident() int       { return c.id }
func (c *TransformCard) Degrees() bool    { return c.degrees }
func (c *TransformCard) Entries() []float64 {
	return append([]float64(nil), c.entries...)
}

// Transform returns a copy of the card's transform.
func (c *TransformCard) Transform() xform.Transform { return c.transform }

func (c *TransformCard) String() string {
	var b strings.Builder
	if c.degrees {
		b.WriteByte('*')
	}

	fmt.Fprintf(&b, "tr%d", c.id)

	for _, v := range c.entries {
		b.WriteByte(' ')
		b.WriteString(common.FormatFloat(v))
	}

	return b.String()
}

// OtherCard is any data card this package does not interpret. Its words are
// kept for passthrough.
type OtherCard struct {
	key   DataCardID
	words []string
	line  int
}

func (c *OtherCard) Kind() DataKind  { return DataOther }
func (c *OtherCard) Key() DataCardID { return c.key }
func (c *OtherCard) Line() int       { return c.line }

// Words returns the card's entries after the mnemonic.
func (c *OtherCard) Words() []string { return append([]string(nil), c.words...) }

func (c *OtherCard) String() string {
	return strings.Join(append([]string{c.key.String()}, c.words...), " ")
}

// splitMnemonic splits a data card name such as "*tr12", "f4:n" or "mode"
// into its alphabetic name (with any particle designator), its number and
// whether it carried a leading '*'.
func splitMnemonic(word string) (name string, id int, star bool, err error) {
	if strings.HasPrefix(word, "#") {
		return "", 0, false, invalidf("vertical format data cards are not supported")
	}

	if strings.HasPrefix(word, "*") {
		star = true
		word = word[1:]
	}

	suffix := ""
	if i := strings.IndexByte(word, ':'); i >= 0 {
		word, suffix = word[:i], word[i:]
	}

	i := len(word)
	for i > 0 && word[i-1] >= '0' && word[i-1] <= '9' {
		i--
	}

	name = word[:i] + suffix
	if word[:i] == "" {
		return "", 0, star, invalidf("data card name %q has no mnemonic", word)
	}

	if i < len(word) {
		id, err = common.ParseInt(word[i:])
		if err != nil {
			return "", 0, star, invalidf("%v", err)
		}
	}

	return name, id, star, nil
}

func parseDataCard(c lines.Card) (DataCard, error) {
	name, id, star, err := splitMnemonic(c.Words[0])
	if err != nil {
		return nil, &CardError{Kind: CardData, Name: c.Words[0], Line: c.Line, Err: err}
	}

	if name != "tr" {
		return &OtherCard{
			key:   DataCardID{Kind: DataOther, Name: name, ID: id},
			words: append([]string(nil), c.Words[1:]...),
			line:  c.Line,
		}, nil
	}

	if id <= 0 {
		return nil, cardErr(CardTransform, id, c.Line, invalidf("transform number must be positive"))
	}

	vals, err := common.ParseFloats(c.Words[1:])
	if err != nil {
		return nil, cardErr(CardTransform, id, c.Line, invalidf("%v", err))
	}

	t, err := xform.FromEntries(vals, star)
	if err != nil {
		return nil, cardErr(CardTransform, id, c.Line, fmt.Errorf("%w: %w", ErrInvalidCard, err))
	}

	return &TransformCard{id: id, degrees: star, entries: vals, line: c.Line, transform: t}, nil
}
