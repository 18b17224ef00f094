package suggest

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"How do I install the CLI", "install cli"},
		{"  Configure   Auth  ", "configure auth"},
		{"the and of", "the and of"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpand_ProducesVariants(t *testing.T) {
	got := Expand("install docker")
	if len(got) == 0 {
		t.Fatal("expected suggestions for terms with synonyms")
	}
	joined := strings.Join(got, "|")
	if !strings.Contains(joined, "setup docker") {
		t.Errorf("expected a synonym variant, got %v", got)
	}
	for _, s := range got {
		if s == "install docker" {
			t.Error("the original query must not be suggested back")
		}
	}
}

func TestExpand_NoSynonymsNoSuggestions(t *testing.T) {
	if got := Expand("zanzibar frobnicate"); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestExpand_Capped(t *testing.T) {
	if got := Expand("install setup config auth error upgrade"); len(got) > 5 {
		t.Errorf("expected at most 5 suggestions, got %d", len(got))
	}
}
