// Package controller binds the engine handle to a sentence tracker,
// letting a caller start reading from an arbitrary sentence, skip forward
// sentence-by-sentence, and read back a status that already carries the
// sentence index a UI should highlight — without re-deriving the mapping
// from raw chunk counts on every poll.
package controller

import (
	"strings"
	"sync"

	"github.com/neboloop/nayru/internal/engine"
	"github.com/neboloop/nayru/internal/logging"
	"github.com/neboloop/nayru/internal/sentence"
	"github.com/neboloop/nayru/internal/text"
)

// ReaderStatus is the engine's Status enriched with the sentence-level
// position a UI should highlight.
type ReaderStatus struct {
	State                engine.State `json:"state"`
	CurrentSentenceIndex *int         `json:"current_sentence_index"`
	TotalSentencesInText int          `json:"total_sentences"`
	Voice                string       `json:"voice"`
	Speed                float64      `json:"speed"`
}

// Controller owns one engine handle plus the tracker for whatever text is
// currently being read. Engine and tracker swaps are serialized by mu;
// readers take a consistent snapshot of both under the same lock.
type Controller struct {
	mu      sync.RWMutex
	cfg     engine.Config
	eng     *engine.Handle
	tracker *sentence.Tracker
}

// New builds a Controller around a freshly-started engine using cfg.
func New(cfg engine.Config) *Controller {
	return &Controller{
		cfg:     cfg,
		eng:     engine.New(cfg),
		tracker: sentence.Empty(),
	}
}

// SpeakFrom stops any current playback and starts reading fullText from
// sentenceIndex onward, tracking progress for Status(). When anything was
// queued, the returned status names the start sentence as current, since
// no chunk of the new read has completed yet.
func (c *Controller) SpeakFrom(fullText string, sentenceIndex int) ReaderStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eng.Stop()

	tr := sentence.NewTracker(fullText, sentenceIndex, c.cfg.MaxChunkLen)
	n := c.eng.Speak(strings.Join(tr.Sentences(), " "))
	c.tracker = tr

	status := c.statusLocked()
	if n > 0 {
		if i, ok := tr.CurrentSentence(0); ok {
			status.CurrentSentenceIndex = &i
		}
	}
	return status
}

// Stop halts playback and clears the active tracker.
func (c *Controller) Stop() ReaderStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eng.Stop()
	c.tracker = sentence.Empty()
	return c.statusLocked()
}

// Pause pauses in-place playback without disturbing the tracker.
func (c *Controller) Pause() ReaderStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eng.Pause()
	return c.statusLocked()
}

// Resume resumes paused playback.
func (c *Controller) Resume() ReaderStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eng.Resume()
	return c.statusLocked()
}

// SkipSentence advances to the sentence following whichever one is
// currently playing, re-dispatching from there. If there is no next
// sentence, it stops and clears the tracker.
func (c *Controller) SkipSentence() ReaderStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := c.eng.Status()
	chunksCompleted := c.tracker.TotalChunks() - status.QueueLength
	current, ok := c.tracker.CurrentSentence(chunksCompleted)
	if !ok {
		return c.statusLocked()
	}
	nextIndex := current + 1

	fullText := c.tracker.FullText()
	allSentences := text.SplitSentences(fullText)
	if nextIndex >= len(allSentences) {
		c.eng.Stop()
		c.tracker = sentence.Empty()
		return c.statusLocked()
	}

	c.eng.Stop()
	tr := sentence.NewTracker(fullText, nextIndex, c.cfg.MaxChunkLen)
	c.eng.Speak(strings.Join(tr.Sentences(), " "))
	c.tracker = tr

	return c.statusLocked()
}

// ConfigPatch describes a partial update to the controller's TTS config;
// unset fields (empty string, zero speed) leave the current value alone.
type ConfigPatch struct {
	Voice    string
	Speed    float64
	SynthURL string
}

// SetConfig applies patch, recreating the underlying engine only if
// something actually changed, and clears the tracker since a voice/speed
// change invalidates any mid-flight chunk accounting.
func (c *Controller) SetConfig(patch ConfigPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	if patch.Voice != "" && patch.Voice != c.cfg.Voice {
		c.cfg.Voice = patch.Voice
		changed = true
	}
	if patch.Speed != 0 && patch.Speed != c.cfg.Speed {
		c.cfg.Speed = patch.Speed
		changed = true
	}
	if patch.SynthURL != "" && patch.SynthURL != c.cfg.SynthURL {
		c.cfg.SynthURL = patch.SynthURL
		changed = true
	}
	if !changed {
		return
	}

	logging.Infof("controller: config changed, recreating engine (voice=%s speed=%v)", c.cfg.Voice, c.cfg.Speed)
	c.eng = engine.New(c.cfg)
	c.tracker = sentence.Empty()
}

// Config returns the controller's current TTS config.
func (c *Controller) Config() engine.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Status returns the current ReaderStatus.
func (c *Controller) Status() ReaderStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statusLocked()
}

// Engine exposes the underlying handle for transports (e.g. the plain
// speak/stream HTTP routes) that don't need sentence tracking.
func (c *Controller) Engine() *engine.Handle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.eng
}

func (c *Controller) statusLocked() ReaderStatus {
	status := c.eng.Status()

	var idx *int
	if status.State != engine.StateIdle {
		chunksCompleted := c.tracker.TotalChunks() - status.QueueLength
		if i, ok := c.tracker.CurrentSentence(chunksCompleted); ok {
			idx = &i
		}
	}

	return ReaderStatus{
		State:                status.State,
		CurrentSentenceIndex: idx,
		TotalSentencesInText: c.tracker.TotalSentencesInText(),
		Voice:                c.cfg.Voice,
		Speed:                c.cfg.Speed,
	}
}
