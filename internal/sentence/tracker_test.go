package sentence

import "testing"

func TestTrackerAdvancesThroughSentences(t *testing.T) {
	tr := NewTracker("First. Second. Third.", 0, 200)

	if got := tr.TotalChunks(); got != 3 {
		t.Fatalf("TotalChunks() = %d, want 3", got)
	}

	for want, completed := range []int{0, 1, 2} {
		idx, ok := tr.CurrentSentence(completed)
		if !ok {
			t.Fatalf("CurrentSentence(%d) = not ok, want sentence %d", completed, want)
		}
		if idx != want {
			t.Errorf("CurrentSentence(%d) = %d, want %d", completed, idx, want)
		}
	}

	if _, ok := tr.CurrentSentence(3); ok {
		t.Errorf("CurrentSentence(total) should report finished")
	}
}

func TestTrackerRespectsStartIndex(t *testing.T) {
	tr := NewTracker("First. Second. Third.", 1, 200)

	idx, ok := tr.CurrentSentence(0)
	if !ok || idx != 1 {
		t.Fatalf("CurrentSentence(0) = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestTrackerCountsSentenceWithinMaxLenAsOneBatch(t *testing.T) {
	// A 124-byte sentence with maxChunkLen 400 is not split by SplitChunks,
	// so it counts as a single batch.
	long := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi rho sigma tau upsilon phi chi psi omega."
	tr := NewTracker(long, 0, 400)

	if got := tr.TotalChunks(); got != 1 {
		t.Fatalf("TotalChunks() = %d, want 1 (unsplit)", got)
	}
}

func TestTrackerStartIndexBeyondSentenceCount(t *testing.T) {
	tr := NewTracker("Only one sentence.", 5, 200)
	if got := tr.TotalChunks(); got != 0 {
		t.Fatalf("TotalChunks() = %d, want 0", got)
	}
	if _, ok := tr.CurrentSentence(0); ok {
		t.Errorf("CurrentSentence(0) on empty tracker should report finished")
	}
}

func TestEmptyTrackerReportsNothingInProgress(t *testing.T) {
	tr := Empty()
	if got := tr.TotalChunks(); got != 0 {
		t.Fatalf("TotalChunks() = %d, want 0", got)
	}
	if _, ok := tr.CurrentSentence(0); ok {
		t.Errorf("CurrentSentence(0) on Empty() should report finished")
	}
}

func TestTrackerTotalSentencesInTextIncludesStartIndex(t *testing.T) {
	tr := NewTracker("First. Second. Third.", 1, 200)
	if got := tr.TotalSentencesInText(); got != 3 {
		t.Fatalf("TotalSentencesInText() = %d, want 3", got)
	}
	if got := tr.FullText(); got != "First. Second. Third." {
		t.Errorf("FullText() = %q", got)
	}
}
