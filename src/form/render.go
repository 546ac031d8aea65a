package form

import "strings"

// Block is one labelled line of rendered output.
type Block struct {
	Label string
	Text  string
}

func (b Block) String() string {
	return b.Label + ": " + b.Text
}

// Render picks the parts of res named by sel. Numbers always come before
// the alphabet blocks, and the two alphabet blocks are shown together.
func Render(res *Result, sel Selection) []Block {
	if res == nil {
		return nil
	}

	var blocks []Block
	if sel.Has(FieldNumbers) {
		blocks = append(blocks, Block{Label: "Numbers", Text: joinOr(res.Numbers, "No numbers")})
	}
	if sel.Has(FieldAlphabets) {
		blocks = append(blocks,
			Block{Label: "Alphabets", Text: joinOr(res.Alphabets, "No alphabets")},
			Block{Label: "Highest Lowercase Alphabet", Text: joinOr(res.HighestLowercaseAlphabet, "No lowercase alphabets")},
		)
	}
	return blocks
}

// RenderText is Render flattened to newline separated lines.
func RenderText(res *Result, sel Selection) string {
	blocks := Render(res, sel)
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
