package ocr

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// priceRE captures a trailing numeric token: optional currency glyph, digits
// (half- or full-width) with optional group separators, optional 円 suffix or
// the reduced-tax mark the register prints after the price.
var priceRE = regexp.MustCompile(`(?:[¥￥]\s*)?([0-9０-９][0-9０-９,，]*)\s*[円軽]?\s*$`)

// maxPriceDigits keeps barcode and phone-number fragments from parsing as
// prices. Store receipts stay well under seven digits of yen.
const maxPriceDigits = 6

// ExtractPrice parses the trailing price token of a line as whole yen.
// The second return is false when no plausible token exists; this is distinct
// from a genuine zero-price line.
func ExtractPrice(line string) (int, bool) {
	_, price, ok := splitPrice(line)
	return price, ok
}

// splitPrice extracts the trailing price and returns the text before it.
func splitPrice(line string) (name string, price int, ok bool) {
	loc := priceRE.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", 0, false
	}
	price, ok = parsePriceToken(line[loc[2]:loc[3]])
	if !ok {
		return "", 0, false
	}
	return strings.TrimSpace(line[:loc[0]]), price, true
}

// parsePriceToken folds full-width numerals to their half-width value and
// drops group separators before parsing.
func parsePriceToken(tok string) (int, bool) {
	folded := width.Fold.String(tok)
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, folded)
	if digits == "" || len(digits) > maxPriceDigits {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// nameTrimSet lists decorative separators OCR injects around product names.
// Enclosed marks like ◎ and ○ are real glyphs on the printed receipt and are
// kept.
const nameTrimSet = "・*|.,:;／∥＊．，：；"

// cleanName normalizes a raw product-name fragment: all whitespace removed,
// decorative edge glyphs stripped, digit-only or single-glyph fragments
// rejected. Returns "" when nothing usable remains.
func cleanName(s string) string {
	s = stripSpace(s)
	s = strings.Trim(s, nameTrimSet)
	if s == "" {
		return ""
	}
	allDigits := true
	for _, r := range s {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return ""
	}
	if utf8.RuneCountInString(s) < 2 {
		return ""
	}
	return s
}
