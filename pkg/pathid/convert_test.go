package pathid

import "testing"

// TestConvertSegment tests domain-suffix-aware segment conversion
func TestConvertSegment(t *testing.T) {
	conv := NewConverter(nil)

	tests := []struct {
		name    string
		segment string
		want    string
	}{
		{"Basic", "-Users-dev-project", "Users/dev/project"},
		{"DomainSuffix", "-Users-dev-github.com-project", "Users/dev/github.com/project"},
		{"MultipleSuffixes", "-Users-example.org-test.io-project", "Users/example.org/test.io/project"},
		{"NoLeadingHyphen", "Users-dev-project", "Users/dev/project"},
		{"NoHyphens", "plainname", "plainname"},
		{"DevSuffix", "-srv-app.dev-data", "srv/app.dev/data"},
		{"AISuffix", "-work-lab.ai-models", "work/lab.ai/models"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := conv.ConvertSegment(tt.segment); got != tt.want {
				t.Errorf("ConvertSegment(%q) = %q, want %q", tt.segment, got, tt.want)
			}
		})
	}
}

// TestConverterConfiguration tests custom suffix tables
func TestConverterConfiguration(t *testing.T) {
	t.Run("CustomSuffixes", func(t *testing.T) {
		conv := NewConverter([]string{".example"})

		if got := conv.ConvertSegment("-a-b.example-c"); got != "a/b.example/c" {
			t.Errorf("ConvertSegment() = %q, want %q", got, "a/b.example/c")
		}

		// Dots are never hyphens, so an unprotected dot still survives.
		if got := conv.ConvertSegment("-a-github.com-c"); got != "a/github.com/c" {
			t.Errorf("ConvertSegment() = %q, want %q", got, "a/github.com/c")
		}
	})

	t.Run("EmptyFallsBackToDefaults", func(t *testing.T) {
		conv := NewConverter(nil)
		suffixes := conv.Suffixes()
		if len(suffixes) != len(DefaultSuffixes()) {
			t.Errorf("Suffixes() has %d entries, want %d", len(suffixes), len(DefaultSuffixes()))
		}
	})

	t.Run("SubstringOverProtection", func(t *testing.T) {
		// A suffix inside an unrelated word is still shielded; this is
		// accepted heuristic behavior.
		conv := NewConverter(nil)
		got := conv.ConvertSegment("-docs-income.comments")
		if got != "docs/income.comments" {
			t.Errorf("ConvertSegment() = %q, want %q", got, "docs/income.comments")
		}
	})
}
