package chunker

import (
	"strings"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\n", " \t\n "} {
		got := Split(in)
		if len(got) != 0 {
			t.Errorf("Split(%q) = %d chunks, want 0", in, len(got))
		}
	}
}

func TestSplit_SentinelFormat(t *testing.T) {
	chunks := []string{
		"Section 1: General Conditions",
		"Short",
		"Division 26 - Electrical scope of work for the video display system.",
	}
	got := Split(Join(chunks))
	if len(got) != len(chunks) {
		t.Fatalf("expected %d chunks, got %d", len(chunks), len(got))
	}
	for i := range chunks {
		if got[i] != chunks[i] {
			t.Errorf("chunk %d: got %q, want %q", i, got[i], chunks[i])
		}
	}
}

func TestSplit_SentinelIdempotent(t *testing.T) {
	// Split(Join(chunks)) == chunks, even for fragments shorter than the
	// blank-line filter would keep.
	chunks := []string{"a", "b", "c"}
	got := Split(Join(chunks))
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("sentinel round-trip broke: %v", got)
	}
}

func TestSplit_BlankLines_FiltersShortFragments(t *testing.T) {
	long1 := strings.Repeat("The contractor shall furnish all labor. ", 3) // > 80 chars
	long2 := strings.Repeat("All displays must meet the brightness spec. ", 3)
	raw := long1 + "\n\n" + "page 4" + "\n\n\n" + long2

	got := Split(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(got), got)
	}
	if got[0] != strings.TrimSpace(long1) {
		t.Errorf("chunk 0 = %q", got[0])
	}
	if got[1] != strings.TrimSpace(long2) {
		t.Errorf("chunk 1 = %q", got[1])
	}
}

func TestSplit_SingleBlock(t *testing.T) {
	text := strings.Repeat("The owner will provide primary electrical service to the display location. ", 2)
	got := Split(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(got))
	}
}
