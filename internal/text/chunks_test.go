package text

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitChunksShortTextUnchanged(t *testing.T) {
	got := SplitChunks("short text", 200)
	want := []string{"short text"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitChunks() = %#v, want %#v", got, want)
	}
}

func TestSplitChunksPrefersSentenceBoundary(t *testing.T) {
	text := strings.Repeat("a", 30) + ". " + strings.Repeat("b", 30)
	got := SplitChunks(text, 40)
	if len(got) != 2 {
		t.Fatalf("SplitChunks() = %#v, want 2 chunks", got)
	}
	if got[0] != strings.Repeat("a", 30)+"." {
		t.Errorf("first chunk = %q", got[0])
	}
	if got[1] != strings.Repeat("b", 30) {
		t.Errorf("second chunk = %q", got[1])
	}
}

func TestSplitChunksFallsBackToWordBoundary(t *testing.T) {
	text := strings.Repeat("a", 20) + " " + strings.Repeat("b", 35)
	got := SplitChunks(text, 40)
	if len(got) != 2 {
		t.Fatalf("SplitChunks() = %#v, want 2 chunks", got)
	}
	if got[0] != strings.Repeat("a", 20) {
		t.Errorf("first chunk = %q", got[0])
	}
	if got[1] != strings.Repeat("b", 35) {
		t.Errorf("second chunk = %q", got[1])
	}
}

func TestSplitChunksHardSplitsLongWord(t *testing.T) {
	text := strings.Repeat("x", 90)
	got := SplitChunks(text, 40)
	if len(got) != 3 {
		t.Fatalf("SplitChunks() = %#v, want 3 chunks", got)
	}
	total := 0
	for _, c := range got {
		total += len(c)
	}
	if total != len(text) {
		t.Errorf("chunks lose content: total %d, want %d", total, len(text))
	}
}

func TestSplitChunksDropsTinyTrailingFragment(t *testing.T) {
	text := strings.Repeat("a", 40) + " b"
	got := SplitChunks(text, 40)
	for _, c := range got {
		if c == "b" {
			t.Errorf("SplitChunks() kept a 1-byte trailing fragment: %#v", got)
		}
	}
}
