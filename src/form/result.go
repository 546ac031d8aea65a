package form

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Result is the collaborator's answer. Elements are kept as display text.
type Result struct {
	Numbers                  []string `json:"numbers"`
	Alphabets                []string `json:"alphabets"`
	HighestLowercaseAlphabet []string `json:"highest_lowercase_alphabet"`
}

// DecodeResult checks the response shape and decodes it. Array elements must
// be scalars; strings lose their quotes, numbers and booleans keep their literal text.
func DecodeResult(body []byte) (*Result, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty body")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("body is not a JSON object: %w", err)
	}
	if raw == nil {
		return nil, errors.New("body is not a JSON object")
	}

	res := new(Result)
	for _, f := range []struct {
		key string
		dst *[]string
	}{
		{"numbers", &res.Numbers},
		{"alphabets", &res.Alphabets},
		{"highest_lowercase_alphabet", &res.HighestLowercaseAlphabet},
	} {
		value, ok := raw[f.key]
		if !ok {
			return nil, fmt.Errorf("missing field %q", f.key)
		}
		items, err := decodeItems(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.key, err)
		}
		*f.dst = items
	}
	return res, nil
}

func decodeItems(value json.RawMessage) ([]string, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(value, &elems); err != nil || elems == nil {
		return nil, errors.New("not an array")
	}

	items := make([]string, 0, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 {
			return nil, fmt.Errorf("element %d is empty", i)
		}
		switch elem[0] {
		case '"':
			var s string
			if err := json.Unmarshal(elem, &s); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, s)
		case '{', '[':
			return nil, fmt.Errorf("element %d is not a scalar", i)
		case 'n':
			items = append(items, "")
		default:
			items = append(items, string(elem))
		}
	}
	return items, nil
}
