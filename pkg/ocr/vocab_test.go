package ocr

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVocabularyCoversTaxMark(t *testing.T) {
	v := NewVocabulary()
	if !v.Matches("軽 ¥10") {
		t.Fatalf("reduced-tax mark must be excluded by default")
	}
	if !v.Matches("(内)消費税等 ¥32") {
		t.Fatalf("tax line must be excluded by default")
	}
	if v.Matches("ザバスプロテインフルー ¥247") {
		t.Fatalf("product line wrongly excluded")
	}
}

func TestExtraKeywordsAppended(t *testing.T) {
	v := NewVocabulary("ポイント")
	if !v.Matches("ポイント残り 120") {
		t.Fatalf("extra keyword must take effect")
	}
	if !v.Matches("軽 ¥10") {
		t.Fatalf("defaults must survive appending")
	}
}

func TestMatchesIgnoresWhitespace(t *testing.T) {
	v := VocabularyFromKeywords([]string{"交通系"})
	if !v.Matches("交 通 系 マネー") {
		t.Fatalf("match must apply after whitespace stripping")
	}
}

func TestVocabularyFromKeywordsDropsEmpties(t *testing.T) {
	v := VocabularyFromKeywords([]string{" ", "", "税"})
	if got := len(v.Keywords()); got != 1 {
		t.Fatalf("expected 1 keyword got %d", got)
	}
}

func TestLoadKeywordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excludes.txt")
	content := "# 手動調整分\n軽\n\n小計\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	kw, err := LoadKeywordsFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(kw) != 2 || kw[0] != "軽" || kw[1] != "小計" {
		t.Fatalf("unexpected keywords %v", kw)
	}
}
