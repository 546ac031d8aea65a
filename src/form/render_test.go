package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleResult() *Result {
	return &Result{
		Numbers:                  []string{"1", "2"},
		Alphabets:                []string{"a", "b"},
		HighestLowercaseAlphabet: []string{"b"},
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		sel    Selection
		want   []string
	}{
		{
			name:   "no result",
			result: nil,
			sel:    NewSelection(FieldNumbers, FieldAlphabets),
			want:   nil,
		},
		{
			name:   "nothing selected",
			result: sampleResult(),
			sel:    0,
			want:   nil,
		},
		{
			name:   "numbers only",
			result: sampleResult(),
			sel:    NewSelection(FieldNumbers),
			want:   []string{"Numbers: 1, 2"},
		},
		{
			name:   "alphabets only",
			result: sampleResult(),
			sel:    NewSelection(FieldAlphabets),
			want:   []string{"Alphabets: a, b", "Highest Lowercase Alphabet: b"},
		},
		{
			name:   "numbers first regardless of selection order",
			result: sampleResult(),
			sel:    NewSelection(FieldAlphabets, FieldNumbers),
			want:   []string{"Numbers: 1, 2", "Alphabets: a, b", "Highest Lowercase Alphabet: b"},
		},
		{
			name:   "empty numbers",
			result: &Result{Numbers: []string{}, Alphabets: []string{"a"}, HighestLowercaseAlphabet: []string{"a"}},
			sel:    NewSelection(FieldNumbers),
			want:   []string{"Numbers: No numbers"},
		},
		{
			name:   "empty alphabets",
			result: &Result{Numbers: []string{"7"}},
			sel:    NewSelection(FieldAlphabets),
			want:   []string{"Alphabets: No alphabets", "Highest Lowercase Alphabet: No lowercase alphabets"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := Render(tc.result, tc.sel)
			var got []string
			for _, b := range blocks {
				got = append(got, b.String())
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderText(t *testing.T) {
	got := RenderText(sampleResult(), NewSelection(FieldNumbers, FieldAlphabets))
	assert.Equal(t, "Numbers: 1, 2\nAlphabets: a, b\nHighest Lowercase Alphabet: b", got)
	assert.Empty(t, RenderText(nil, NewSelection(FieldNumbers)))
}

func TestSelection(t *testing.T) {
	var sel Selection
	assert.False(t, sel.Has(FieldNumbers))

	sel = sel.Toggle(FieldNumbers)
	assert.True(t, sel.Has(FieldNumbers))
	assert.False(t, sel.Has(FieldAlphabets))

	sel = sel.Toggle(FieldAlphabets).Toggle(FieldNumbers)
	assert.Equal(t, []Field{FieldAlphabets}, sel.Fields())
	assert.Equal(t, "alphabets", sel.String())

	assert.False(t, sel.Has(Field("symbols")))
	assert.Equal(t, sel, sel.With(Field("symbols")))
}

func TestParseFields(t *testing.T) {
	sel, err := ParseFields([]string{" Numbers", "alphabets", ""})
	assert.NoError(t, err)
	assert.Equal(t, NewSelection(FieldNumbers, FieldAlphabets), sel)

	_, err = ParseFields([]string{"numbers", "symbols"})
	assert.ErrorContains(t, err, "symbols")
}
