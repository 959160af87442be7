// Package sentence maps the pipeline's internal chunk counter back to the
// user-visible sentence a UI should highlight. The dispatcher and the
// tracker must simulate the same batching rule or highlighting drifts out
// of sync with what's actually playing; this package mirrors the
// post-split greedy-merge policy (see Tracker for details).
package sentence

import "github.com/neboloop/nayru/internal/text"

// Tracker maps "chunks completed" counts to the sentence index a UI should
// highlight. It is built once a user picks a sentence to begin reading
// from and is then fed chunk-completion counts as playback progresses.
type Tracker struct {
	sentences              []string
	cumulativeChunkOffsets []int
	totalChunks            int
	startIndex             int
	fullText               string
}

// Empty returns a zero-value tracker for when nothing is being tracked
// (no active reading session).
func Empty() *Tracker {
	return &Tracker{}
}

// NewTracker builds a Tracker over fullText starting from startIndex: the
// sentence the user chose to begin playback from. maxChunkLen must match
// the dispatcher's configured chunk length, since batch counts depend on it.
func NewTracker(fullText string, startIndex int, maxChunkLen int) *Tracker {
	all := text.SplitSentences(fullText)
	if startIndex > len(all) {
		startIndex = len(all)
	}
	sentences := all[startIndex:]

	offsets := make([]int, len(sentences))
	total := 0
	for i, s := range sentences {
		total += batchesFor(s, maxChunkLen)
		offsets[i] = total
	}

	return &Tracker{
		sentences:              sentences,
		cumulativeChunkOffsets: offsets,
		totalChunks:            total,
		startIndex:             startIndex,
		fullText:               fullText,
	}
}

// FullText returns the text the tracker was built from, needed to rebuild a
// tracker at a new start index (e.g. skipping to the next sentence).
func (t *Tracker) FullText() string {
	return t.fullText
}

// Sentences returns the tracked sentences, from startIndex onward, joined by
// the caller to produce the text actually dispatched to the engine.
func (t *Tracker) Sentences() []string {
	return t.sentences
}

// TotalSentencesInText returns how many sentences precede and are covered
// by this tracker, i.e. startIndex + len(sentences).
func (t *Tracker) TotalSentencesInText() int {
	return t.startIndex + len(t.sentences)
}

// TotalChunks returns the total number of chunks the tracked sentences will
// be dispatched as.
func (t *Tracker) TotalChunks() int {
	return t.totalChunks
}

// CurrentSentence returns the lowest sentence index — offset by the
// tracker's startIndex — still in progress after chunksCompleted chunks
// have finished streaming. It returns (0, false) once chunksCompleted
// reaches the total, meaning playback of the tracked text has finished.
func (t *Tracker) CurrentSentence(chunksCompleted int) (int, bool) {
	for i, offset := range t.cumulativeChunkOffsets {
		if chunksCompleted < offset {
			return t.startIndex + i, true
		}
	}
	return 0, false
}

// batchesFor splits a sentence into chunks the same way the dispatcher
// does, then applies the greedy-merge batching rule: starting at each
// piece, absorb subsequent pieces while the combined length (plus a
// joining space) still fits within maxChunkLen. The processor dispatches
// each piece as its own job, so the count differs from the dispatched job
// count only when two adjacent pieces fit within maxChunkLen together.
func batchesFor(s string, maxChunkLen int) int {
	pieces := text.SplitChunks(s, maxChunkLen)
	if len(pieces) == 0 {
		return 0
	}

	batches := 0
	mergedLen := -1
	for _, p := range pieces {
		if mergedLen < 0 {
			mergedLen = len(p)
			batches++
			continue
		}
		if mergedLen+1+len(p) <= maxChunkLen {
			mergedLen += 1 + len(p)
			continue
		}
		mergedLen = len(p)
		batches++
	}
	return batches
}
