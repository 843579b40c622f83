package ocr

import "strings"

// totalToken is the label printed on the receipt's total line.
const totalToken = "合計"

// LineRole tags what a single OCR line appears to be.
type LineRole int

const (
	// RoleItem marks a line that may describe a purchased product.
	RoleItem LineRole = iota
	// RoleTotal marks a line stating the receipt total.
	RoleTotal
	// RoleNoise marks a line matched by the exclusion vocabulary.
	RoleNoise
)

func (r LineRole) String() string {
	switch r {
	case RoleItem:
		return "item"
	case RoleTotal:
		return "total"
	case RoleNoise:
		return "noise"
	}
	return "unknown"
}

// ClassifiedLine pairs a non-empty OCR line with its role.
type ClassifiedLine struct {
	Text string
	Role LineRole
}

// ClassifyLine assigns a role from the line's own content alone. The total
// token is checked before the vocabulary so the total line survives even
// though 合計 is itself an exclusion keyword.
func ClassifyLine(line string, vocab *Vocabulary) LineRole {
	if strings.Contains(line, totalToken) {
		return RoleTotal
	}
	if vocab.Matches(line) {
		return RoleNoise
	}
	return RoleItem
}

// Classify splits raw OCR output into trimmed non-empty lines, in emission
// order, and tags each one.
func Classify(raw string, vocab *Vocabulary) []ClassifiedLine {
	var out []ClassifiedLine
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		out = append(out, ClassifiedLine{Text: line, Role: ClassifyLine(line, vocab)})
	}
	return out
}
