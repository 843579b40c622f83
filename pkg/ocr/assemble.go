package ocr

import (
	"fmt"
	"strings"
)

// Item is one purchased product recovered from the receipt.
type Item struct {
	Name  string `json:"name"`
	Price int    `json:"price"` // whole yen
}

// ParseResult is the structured outcome of parsing one receipt's OCR text.
// Items keep the engine's reading order. Total is nil when no total line
// yielded a number; the item-price sum is computed independently and may
// legitimately disagree with Total.
type ParseResult struct {
	Items     []Item `json:"items"`
	Total     *int   `json:"total"`
	Formatted string `json:"formatted"`
	RawText   string `json:"raw_text"`
}

// Assemble turns classified lines into items, the total and the formatted
// summary. Lines whose price cannot be parsed contribute nothing; only the
// first total line is consulted, later restatements are ignored.
func Assemble(lines []ClassifiedLine) ParseResult {
	res := ParseResult{Items: []Item{}}
	totalSeen := false
	for _, cl := range lines {
		switch cl.Role {
		case RoleItem:
			name, price, ok := splitPrice(cl.Text)
			if !ok {
				continue
			}
			name = cleanName(name)
			if name == "" {
				continue
			}
			res.Items = append(res.Items, Item{Name: name, Price: price})
		case RoleTotal:
			if totalSeen {
				continue
			}
			totalSeen = true
			if price, ok := ExtractPrice(cl.Text); ok {
				t := price
				res.Total = &t
			}
		}
	}
	res.Formatted = formatSummary(res.Items, res.Total)
	return res
}

// Parse classifies and assembles raw OCR text in one step, retaining the raw
// text for diagnostics.
func Parse(raw string, vocab *Vocabulary) ParseResult {
	res := Assemble(Classify(raw, vocab))
	res.RawText = raw
	return res
}

// formatSummary renders "name ¥price, ..., 合計 ¥total". Empty input yields "".
func formatSummary(items []Item, total *int) string {
	parts := make([]string, 0, len(items)+1)
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s ¥%d", it.Name, it.Price))
	}
	if total != nil {
		parts = append(parts, fmt.Sprintf("%s ¥%d", totalToken, *total))
	}
	return strings.Join(parts, ", ")
}
