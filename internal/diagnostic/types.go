package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mcnp-csg/internal/common"
)

// Diagnostics collects the non-fatal findings of building a deck, bucketed
// by severity in the order they were reported.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding about one card.
type Diagnostic struct {
	Severity Severity `yaml:"severity"`
	// Code is stable across releases, e.g. "unused-surface".
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
	// Card names the card, e.g. "cell 10" or "surface 3".
	Card string `yaml:"card,omitempty"`
	// Line is where the card starts, 0 when unknown.
	Line        int      `yaml:"line,omitempty"`
	Suggestions []string `yaml:"suggestions,omitempty"`
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return common.UnknownStr
	}

	return severityNames[s]
}

// MarshalYAML renders the severity by name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML reads a severity written by MarshalYAML.
func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	for i, name := range severityNames {
		if node.Value == name {
			*s = Severity(i)

			return nil
		}
	}

	return fmt.Errorf("unknown severity %q", node.Value)
}

func (d *Diagnostics) bucket(sev Severity) *[]Diagnostic {
	switch sev {
	case SeverityError:
		return &d.Errors
	case SeverityWarning:
		return &d.Warnings
	default:
		return &d.Infos
	}
}

// Add records diag in the bucket of its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	b := d.bucket(diag.Severity)
	*b = append(*b, diag)
}

// AddWarning records a warning, optionally with "did you mean" candidates.
func (d *Diagnostics) AddWarning(code, message, card string, line int, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Card:        card,
		Line:        line,
		Suggestions: suggestions,
	})
}

// AddInfo records an informational finding.
func (d *Diagnostics) AddInfo(code, message, card string, line int) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Card: card, Line: line})
}

func (d *Diagnostics) HasErrors() bool   { return len(d.Errors) > 0 }
func (d *Diagnostics) HasWarnings() bool { return len(d.Warnings) > 0 }

// Escalate turns every warning into an error. Strict builds use it so a
// single Error call decides the outcome.
func (d *Diagnostics) Escalate() {
	for _, w := range d.Warnings {
		w.Severity = SeverityError
		d.Errors = append(d.Errors, w)
	}

	d.Warnings = nil
}

// ByCode returns the findings with the given code, most severe first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error joins the error findings, or returns nil when there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// String formats a finding as "line 3 cell 1: [code] message (did you mean x?)".
func (d Diagnostic) String() string {
	var where []string
	if d.Line > 0 {
		where = append(where, fmt.Sprintf("line %d", d.Line))
	}

	if d.Card != "" {
		where = append(where, d.Card)
	}

	msg := d.Message
	if d.Code != "" {
		msg = "[" + d.Code + "] " + msg
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(where) == 0 {
		return msg
	}

	return strings.Join(where, " ") + ": " + msg
}
