package ocr

import "testing"

func TestClassifyRoles(t *testing.T) {
	vocab := NewVocabulary()
	raw := "ザバスプロテインフルー ¥247\n\n軽 ¥10\n合計 ¥355\n"
	lines := Classify(raw, vocab)
	if len(lines) != 3 {
		t.Fatalf("expected 3 non-empty lines got %d", len(lines))
	}
	if lines[0].Role != RoleItem {
		t.Fatalf("expected item got %s", lines[0].Role)
	}
	if lines[1].Role != RoleNoise {
		t.Fatalf("expected noise got %s", lines[1].Role)
	}
	if lines[2].Role != RoleTotal {
		t.Fatalf("expected total got %s", lines[2].Role)
	}
}

func TestTotalTokenBeatsVocabulary(t *testing.T) {
	// 合計 is itself an exclusion keyword; the total check must run first.
	vocab := NewVocabulary()
	if got := ClassifyLine("合計 ¥355", vocab); got != RoleTotal {
		t.Fatalf("expected total got %s", got)
	}
}

func TestNoiseBeatsPricePattern(t *testing.T) {
	vocab := VocabularyFromKeywords([]string{"小計"})
	if got := ClassifyLine("小計 ¥345", vocab); got != RoleNoise {
		t.Fatalf("vocabulary match must win over price pattern, got %s", got)
	}
}

func TestClassifyPreservesOrder(t *testing.T) {
	vocab := VocabularyFromKeywords(nil)
	lines := Classify("a 100\r\nb 200\nc 300", vocab)
	if len(lines) != 3 || lines[0].Text != "a 100" || lines[2].Text != "c 300" {
		t.Fatalf("order not preserved: %+v", lines)
	}
}
