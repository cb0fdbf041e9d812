package lines

import (
	"bufio"
	"io"
	"strings"
)

const (
	continuationColumns = 5
	tabWidth            = 8
	maxLineBytes        = 1 << 20
)

// Card is one logical card.
type Card struct {
	// Line is the 1-based physical line the card starts on.
	Line int
	// Text is the joined content with comments and continuation marks removed.
	Text string
	// Words is Text split on whitespace, lower-cased.
	Words []string
}

// Extractor reads a deck one block at a time.
type Extractor struct {
	sc   *bufio.Scanner
	line int
	done bool
}

// NewExtractor returns an Extractor reading r.
func NewExtractor(r io.Reader) *Extractor {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &Extractor{sc: sc}
}

// Line returns the number of physical lines consumed so far.
func (e *Extractor) Line() int { return e.line }

func (e *Extractor) next() (string, bool) {
	if e.done {
		return "", false
	}

	if !e.sc.Scan() {
		e.done = true
		return "", false
	}

	e.line++

	return expandTabs(strings.TrimRight(e.sc.Text(), "\r")), true
}

// Err returns the first read error, if any.
func (e *Extractor) Err() error { return e.sc.Err() }

// Title returns the title card, skipping an optional leading message block
// ("message:" up to the first blank line).
func (e *Extractor) Title() (string, error) {
	l, ok := e.next()
	if !ok {
		if err := e.Err(); err != nil {
			return "", err
		}

		return "", io.ErrUnexpectedEOF
	}

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(l)), "message:") {
		for {
			l, ok = e.next()
			if !ok {
				return "", io.ErrUnexpectedEOF
			}

			if isBlank(l) {
				break
			}
		}

		if l, ok = e.next(); !ok {
			return "", io.ErrUnexpectedEOF
		}
	}

	return strings.TrimSpace(l), nil
}

// Block returns the cards up to the next blank line. It returns io.EOF when
// no lines remain.
func (e *Extractor) Block() ([]Card, error) {
	var (
		cards   []Card
		pending bool
		sawLine bool
	)

	for {
		raw, ok := e.next()
		if !ok {
			if err := e.Err(); err != nil {
				return nil, err
			}

			if !sawLine {
				return nil, io.EOF
			}

			return cards, nil
		}

		sawLine = true

		if isBlank(raw) {
			return cards, nil
		}

		if isComment(raw) {
			continue
		}

		content := stripComment(raw)
		continued := pending || (len(cards) > 0 && leadingBlank(raw))

		trimmed := strings.TrimRight(content, " ")
		pending = strings.HasSuffix(trimmed, "&")

		if pending {
			content = strings.TrimSuffix(trimmed, "&")
		}

		content = strings.TrimSpace(content)

		if continued && len(cards) > 0 {
			c := &cards[len(cards)-1]
			if content != "" {
				c.Text = strings.TrimSpace(c.Text + " " + content)
				c.Words = append(c.Words, Fields(content)...)
			}

			continue
		}

		if content == "" {
			continue
		}

		cards = append(cards, Card{Line: e.line, Text: content, Words: Fields(content)})
	}
}

// Fields lower-cases s and splits it on whitespace.
func Fields(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func isBlank(l string) bool {
	return strings.TrimSpace(l) == ""
}

// isComment matches a 'c' within the first five columns, preceded only by
// blanks and followed by a blank or the end of the line.
func isComment(l string) bool {
	for i := 0; i < len(l) && i < continuationColumns; i++ {
		switch l[i] {
		case ' ':
			continue
		case 'c', 'C':
			return i+1 == len(l) || l[i+1] == ' '
		default:
			return false
		}
	}

	return false
}

func leadingBlank(l string) bool {
	return len(l) > continuationColumns && strings.TrimSpace(l[:continuationColumns]) == ""
}

func stripComment(l string) string {
	if i := strings.IndexByte(l, '$'); i >= 0 {
		return l[:i]
	}

	return l
}

func expandTabs(l string) string {
	if !strings.Contains(l, "\t") {
		return l
	}

	var b strings.Builder

	col := 0

	for _, r := range l {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n

			continue
		}

		b.WriteRune(r)
		col++
	}

	return b.String()
}
