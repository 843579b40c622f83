package ocr

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// defaultExcludeKeywords marks receipt lines that never describe a purchased
// product: the reduced-tax mark, subtotal/total labels, tax and payment rows,
// store/date headers and app/coupon footers.
var defaultExcludeKeywords = []string{
	"軽", "合計", "小計", "対象", "消費税", "税等", "内",
	"交通系", "マネー", "支払", "カード", "番号", "残高",
	"レジ", "領収証", "登録番号", "電話", "FamilyMart",
	"店", "東京", "新宿", "年", "月", "日", "時", "分",
	"クーポン", "QR", "ギフト", "アプリ", "発行", "受取",
}

// Vocabulary is the ordered set of substrings that classify a line as noise.
// It is immutable after construction; build a new one to change keywords.
type Vocabulary struct {
	keywords []string
}

// NewVocabulary returns the default vocabulary with extra keywords appended.
func NewVocabulary(extra ...string) *Vocabulary {
	kw := make([]string, 0, len(defaultExcludeKeywords)+len(extra))
	kw = append(kw, defaultExcludeKeywords...)
	kw = append(kw, extra...)
	return &Vocabulary{keywords: kw}
}

// VocabularyFromKeywords returns a vocabulary with exactly the given keywords,
// replacing the defaults. Empty entries are dropped.
func VocabularyFromKeywords(keywords []string) *Vocabulary {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			kw = append(kw, k)
		}
	}
	return &Vocabulary{keywords: kw}
}

// Keywords returns a copy of the keyword list in order.
func (v *Vocabulary) Keywords() []string {
	out := make([]string, len(v.keywords))
	copy(out, v.keywords)
	return out
}

// Matches reports whether the line, with all whitespace stripped, contains
// any vocabulary keyword as a substring.
func (v *Vocabulary) Matches(line string) bool {
	s := stripSpace(line)
	if s == "" {
		return false
	}
	for _, kw := range v.keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// LoadKeywordsFile reads one keyword per line. Blank lines and lines starting
// with # are ignored.
func LoadKeywordsFile(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open keywords file: %w", err)
	}
	defer f.Close()
	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}
	return out, nil
}
