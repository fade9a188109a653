package sentiment

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	arabic := strings.Repeat("م", 2000)

	tests := []struct {
		name string
		text string
		max  int
		want int // rune count of result
	}{
		{"short text untouched", "قصير", 1500, 4},
		{"long text cut on rune boundary", arabic, 1500, 1500},
		{"zero max disables truncation", arabic, 0, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.text, tt.max)
			if n := len([]rune(got)); n != tt.want {
				t.Errorf("got %d runes, want %d", n, tt.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel("  POSITIVE "); got != LabelPositive {
		t.Errorf("got %q, want %q", got, LabelPositive)
	}
	// Unknown labels pass through untouched (lower-cased)
	if got := normalizeLabel("Mixed"); got != Label("mixed") {
		t.Errorf("got %q, want mixed", got)
	}
}

func TestIsKnownLabel(t *testing.T) {
	for _, l := range KnownLabels {
		if !IsKnownLabel(l) {
			t.Errorf("%s should be known", l)
		}
	}
	if IsKnownLabel(Label("mixed")) {
		t.Error("mixed should not be known")
	}
}

func TestDemoSamples(t *testing.T) {
	if len(DemoSamples) != 3 {
		t.Fatalf("expected 3 demo samples, got %d", len(DemoSamples))
	}

	seen := make(map[Label]bool)
	for i, s := range DemoSamples {
		if strings.TrimSpace(s.Text) == "" {
			t.Errorf("sample %d has empty text", i)
		}
		if !IsKnownLabel(s.Expected) {
			t.Errorf("sample %d has unknown expected label %s", i, s.Expected)
		}
		seen[s.Expected] = true
	}

	if len(seen) != 3 {
		t.Errorf("expected one sample per polarity, got %v", seen)
	}
}
