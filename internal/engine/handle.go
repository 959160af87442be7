package engine

import (
	"sync"

	"github.com/neboloop/nayru/internal/logging"
	"github.com/neboloop/nayru/internal/text"
)

// Handle is the cloneable facade over one engine instance. It holds only
// channel senders and an atomic epoch — no back-references into the
// actors it talks to — so copying a Handle by value is safe and cycle-free.
type Handle struct {
	cfg       Config
	cmdTx     chan<- cmd
	playCmdTx chan<- playCmd
	epoch     *epoch
	status    *statusStore
}

// New starts the text-processor actor, the fetcher pool, and the playback
// worker, and returns a Handle bound to them. The playback worker runs on
// its own locked OS thread; the processor and fetchers run as goroutines.
func New(cfg Config) *Handle {
	if cfg.MaxChunkLen <= 0 {
		cfg.MaxChunkLen = DefaultMaxChunkLen
	}

	cmdCh := make(chan cmd, 8)
	fetchCh := make(chan fetchJob, FetchQueueCapacity)
	playCh := make(chan playCmd, 8)

	ep := &epoch{}
	status := newStatusStore(cfg.Voice)

	go runProcessor(cmdCh, fetchCh, ep, status, cfg)

	var jobMu sync.Mutex
	for i := 0; i < FetcherCount; i++ {
		go runFetcher(i, fetchCh, &jobMu, playCh, ep, status, cfg)
	}

	go runPlaybackWorker(playCh, status, PCMSampleRate, PCMChannels)

	return &Handle{
		cfg:       cfg,
		cmdTx:     cmdCh,
		playCmdTx: playCh,
		epoch:     ep,
		status:    status,
	}
}

// Speak cleans text for speech and enqueues it for synthesis, returning the
// estimated number of chunks it will be dispatched as. Text that cleans
// down to nothing audible is dropped and 0 is returned.
func (h *Handle) Speak(rawText string) int {
	cleaned := text.CleanForSpeech(rawText)
	if len(cleaned) < 2 || !text.HasAlphanumeric(cleaned) {
		return 0
	}

	n := estimateChunks(cleaned, h.cfg.MaxChunkLen)
	h.cmdTx <- cmd{kind: cmdSpeak, text: cleaned}
	return n
}

// StreamChunk feeds one incremental piece of streamed text into the
// text-processor's streaming buffer. Empty chunks are a no-op.
func (h *Handle) StreamChunk(chunk string) {
	if chunk == "" {
		return
	}
	h.cmdTx <- cmd{kind: cmdStreamChunk, text: chunk}
}

// StreamEnd flushes any remaining buffered streaming text.
func (h *Handle) StreamEnd() {
	h.cmdTx <- cmd{kind: cmdStreamEnd}
}

// Stop bumps the epoch — invalidating every in-flight job and source across
// every stage — then tells the processor and the playback worker to reset.
func (h *Handle) Stop() {
	h.epoch.bump()
	h.cmdTx <- cmd{kind: cmdStop}
	h.playCmdTx <- playCmd{kind: playCmdStop}
}

// Skip advances past the currently-playing source.
func (h *Handle) Skip() {
	h.playCmdTx <- playCmd{kind: playCmdSkip}
}

// Pause pauses playback in place.
func (h *Handle) Pause() {
	h.playCmdTx <- playCmd{kind: playCmdPause}
}

// Resume resumes playback after a Pause.
func (h *Handle) Resume() {
	h.playCmdTx <- playCmd{kind: playCmdResume}
}

// Status returns the latest observable snapshot.
func (h *Handle) Status() Status {
	return h.status.Load()
}

// estimateChunks sums split_chunks per sentence rather than running it once
// over the whole cleaned string (see DESIGN.md's §4.7 entry): the processor
// actually dispatches one job per sentence (§4.6), so this matches the real
// queued-job count the caller is told about, at the cost of diverging from
// the original's whole-string estimate for multi-sentence input under
// max_chunk_len.
func estimateChunks(cleaned string, maxChunkLen int) int {
	n := 0
	for _, sentence := range text.SplitSentences(cleaned) {
		if len(sentence) <= maxChunkLen {
			n++
		} else {
			n += len(text.SplitChunks(sentence, maxChunkLen))
		}
	}
	logging.Debugf("engine: estimated %d chunks for %d-byte input", n, len(cleaned))
	return n
}
