package form

import (
	"fmt"
	"strings"
)

// Field names a displayable part of a Result.
type Field string

const (
	FieldAlphabets Field = "alphabets"
	FieldNumbers   Field = "numbers"
)

// Fields lists the selectable fields in option order.
var Fields = []Field{FieldAlphabets, FieldNumbers}

// Label is the option text shown in selectors.
func (f Field) Label() string {
	switch f {
	case FieldAlphabets:
		return "Alphabets"
	case FieldNumbers:
		return "Numbers"
	}
	return string(f)
}

func (f Field) bit() Selection {
	switch f {
	case FieldAlphabets:
		return 1 << 0
	case FieldNumbers:
		return 1 << 1
	}
	return 0
}

// ParseField accepts only the known field tokens.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if f.bit() == 0 {
		return "", fmt.Errorf("unknown field %q (want one of alphabets, numbers)", s)
	}
	return f, nil
}

// ParseFields parses every token, failing on the first unknown one.
func ParseFields(tokens []string) (Selection, error) {
	var sel Selection
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		f, err := ParseField(tok)
		if err != nil {
			return 0, err
		}
		sel = sel.With(f)
	}
	return sel, nil
}

// Selection is a set of Fields. The zero value selects nothing.
type Selection uint8

func NewSelection(fields ...Field) Selection {
	var sel Selection
	for _, f := range fields {
		sel = sel.With(f)
	}
	return sel
}

func (s Selection) Has(f Field) bool {
	b := f.bit()
	return b != 0 && s&b != 0
}

func (s Selection) With(f Field) Selection {
	return s | f.bit()
}

func (s Selection) Toggle(f Field) Selection {
	return s ^ f.bit()
}

// Fields returns the selected fields in option order.
func (s Selection) Fields() []Field {
	out := make([]Field, 0, len(Fields))
	for _, f := range Fields {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s Selection) String() string {
	fields := s.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}
