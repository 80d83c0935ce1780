package form

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType selects the parse and input-filter behavior of a field.
// It is fixed when the tree is built from the config schema.
type FieldType int

const (
	Bool FieldType = iota
	Int
	Float
	Choice
	String
)

func (t FieldType) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Choice:
		return "choice"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// ChoiceEntry maps a display label to the reference value stored in
// the config.
type ChoiceEntry struct {
	Label string
	Ref   any
}

// Field is a single typed editable value bound to a store path. The
// path uses either the "category/key" scheme or the indexed
// "key::index" scheme; the field itself does not care which.
type Field struct {
	Path   string
	Type   FieldType
	Signed bool // Float only: whether a leading minus is allowed
	Hint   string

	Text    string // display text (Int, Float, String) or selected label (Choice)
	Active  bool   // toggle state (Bool)
	Choices []ChoiceEntry
}

// ParseError reports a field value the user must correct. It aborts
// the surrounding apply cycle without touching the store.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse value for %s: %s", e.Path, e.Reason)
}

// InsertText appends user-composed text through the field's input
// filter, so the displayed text is always already normalized.
func (f *Field) InsertText(sub string) {
	switch f.Type {
	case Int:
		f.Text += stripNonDigits(sub)
	case Float:
		var s string
		if strings.Contains(f.Text, ".") {
			s = stripNonFloatRunes(sub)
		} else {
			// first dot of the insertion survives, the rest are dropped
			parts := strings.SplitN(sub, ".", 2)
			for i := range parts {
				parts[i] = stripNonFloatRunes(parts[i])
			}
			s = strings.Join(parts, ".")
		}
		f.Text = enforceMinus(f.Text+s, f.Signed)
	default:
		f.Text += sub
	}
}

// SetText replaces the display text wholesale, normalizing it the
// same way incremental input would have. Bool fields derive their
// toggle state from the text compared case-insensitively to "true".
func (f *Field) SetText(text string) {
	switch f.Type {
	case Bool:
		f.Active = strings.EqualFold(text, "true")
	case Int:
		f.Text = stripNonDigits(text)
	case Float:
		f.Text = NormalizeFloat(text, f.Signed)
	default:
		f.Text = text
	}
}

// Parse converts the field's display state into a typed value. Pure;
// the only failure mode is *ParseError.
func (f *Field) Parse() (any, error) {
	switch f.Type {
	case Bool:
		return f.Active, nil
	case Int:
		digits := stripNonDigits(f.Text)
		if digits == "" {
			return nil, &ParseError{Path: f.Path, Reason: "empty integer input"}
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, &ParseError{Path: f.Path, Reason: err.Error()}
		}
		return n, nil
	case Float:
		text := NormalizeFloat(f.Text, f.Signed)
		if text == "" {
			return nil, &ParseError{Path: f.Path, Reason: "empty float input"}
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &ParseError{Path: f.Path, Reason: err.Error()}
		}
		return v, nil
	case Choice:
		if len(f.Choices) == 0 {
			return nil, &ParseError{Path: f.Path, Reason: "choice field has no entries"}
		}
		for _, c := range f.Choices {
			if c.Label == f.Text {
				return c.Ref, nil
			}
		}
		// unknown label falls back to the first entry, never an error
		return f.Choices[0].Ref, nil
	case String:
		return f.Text, nil
	default:
		return nil, &ParseError{Path: f.Path, Reason: fmt.Sprintf("unknown field type %d", f.Type)}
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripNonFloatRunes(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// enforceMinus drops every minus sign for unsigned fields. For signed
// fields a minus may only survive in the leading position; any later
// one is removed, not relocated.
func enforceMinus(text string, signed bool) string {
	if !signed {
		return strings.ReplaceAll(text, "-", "")
	}
	if len(text) < 2 {
		return text
	}
	return text[:1] + strings.ReplaceAll(text[1:], "-", "")
}

// NormalizeFloat filters whole text so that at most one decimal point
// survives and the minus rules of enforceMinus hold.
func NormalizeFloat(text string, signed bool) string {
	var b strings.Builder
	seenDot := false
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return enforceMinus(b.String(), signed)
}
