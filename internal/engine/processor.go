package engine

import (
	"strings"

	"github.com/neboloop/nayru/internal/logging"
	"github.com/neboloop/nayru/internal/text"
)

// runProcessor is the text-processor actor: the sole consumer of the
// command channel. Its streaming state (buffer + epoch) lives in this
// function's local frame and persists across loop iterations rather than
// being recreated per message.
func runProcessor(cmdRx <-chan cmd, fetchTx chan<- fetchJob, ep *epoch, status *statusStore, cfg Config) {
	var streamBuffer string
	var streamEpoch int64
	var streamActive bool

	for c := range cmdRx {
		switch c.kind {
		case cmdSpeak:
			handleSpeak(c, fetchTx, ep, status, cfg)

		case cmdStreamChunk:
			if !streamActive {
				streamEpoch = ep.current()
				streamActive = true
				logging.Debugf("stream started (epoch %d)", streamEpoch)
				status.Update(func(s *Status) {
					if s.State == StateIdle {
						s.State = StateConverting
					}
				})
			}

			if ep.current() != streamEpoch {
				streamBuffer = ""
				streamActive = false
				continue
			}

			streamBuffer += c.text
			streamBuffer = dispatchStreamSentences(streamBuffer, streamEpoch, fetchTx, ep, status, cfg)

		case cmdStreamEnd:
			logging.Debugf("stream end — buffer=%d chars", len(streamBuffer))
			if streamActive {
				if ep.current() == streamEpoch {
					flushStreamTail(streamBuffer, streamEpoch, fetchTx, ep, status, cfg)
				}
				streamActive = false
			}
			streamBuffer = ""

		case cmdStop:
			streamBuffer = ""
			streamActive = false
			status.Update(func(s *Status) {
				s.QueueLength = 0
				s.State = StateIdle
			})
		}
	}
}

func handleSpeak(c cmd, fetchTx chan<- fetchJob, ep *epoch, status *statusStore, cfg Config) {
	currentEpoch := ep.current()

	var batched []string
	for _, sentence := range text.SplitSentences(c.text) {
		if len(sentence) <= cfg.MaxChunkLen {
			batched = append(batched, sentence)
		} else {
			batched = append(batched, text.SplitChunks(sentence, cfg.MaxChunkLen)...)
		}
	}

	total := len(batched)
	status.Update(func(s *Status) {
		s.QueueLength += total
		if s.State == StateIdle {
			s.State = StateConverting
		}
	})

	logging.Debugf("processor: dispatching %d jobs (epoch %d)", total, currentEpoch)

	for _, piece := range batched {
		fetchTx <- fetchJob{text: piece, epoch: currentEpoch}
	}
}

// dispatchStreamSentences extracts complete sentences from buffer and
// dispatches them as fetchJobs, returning the new buffer contents: the
// incomplete tail left for the next chunk.
func dispatchStreamSentences(buffer string, currentEpoch int64, fetchTx chan<- fetchJob, ep *epoch, status *statusStore, cfg Config) string {
	sentences := text.SplitSentences(buffer)

	if len(sentences) <= 1 {
		if len(buffer) >= cfg.MaxChunkLen*2 {
			return forceSplitDispatch(buffer, currentEpoch, fetchTx, status, cfg)
		}
		return buffer
	}

	last := sentences[len(sentences)-1]
	complete := sentences[:len(sentences)-1]

	var toDispatch []string
	for _, sentence := range complete {
		if len(sentence) <= cfg.MaxChunkLen {
			toDispatch = append(toDispatch, sentence)
		} else {
			toDispatch = append(toDispatch, text.SplitChunks(sentence, cfg.MaxChunkLen)...)
		}
	}

	if len(toDispatch) > 0 {
		count := len(toDispatch)
		status.Update(func(s *Status) { s.QueueLength += count })

		for _, piece := range toDispatch {
			if ep.stale(currentEpoch) {
				break
			}
			fetchTx <- fetchJob{text: piece, epoch: currentEpoch}
		}
	}

	return last
}

func forceSplitDispatch(buffer string, currentEpoch int64, fetchTx chan<- fetchJob, status *statusStore, cfg Config) string {
	window := buffer[:cfg.MaxChunkLen]
	splitAt := strings.LastIndexByte(window, ' ')
	if splitAt < 0 {
		splitAt = cfg.MaxChunkLen
	}

	chunk := strings.TrimSpace(buffer[:splitAt])
	tail := strings.TrimLeft(buffer[splitAt:], " \t\r\n\v\f")

	if len(chunk) >= 2 {
		status.Update(func(s *Status) { s.QueueLength++ })
		logging.Debugf("stream: force-split dispatch (%d chars)", len(chunk))
		fetchTx <- fetchJob{text: chunk, epoch: currentEpoch}
	}

	return tail
}

func flushStreamTail(buffer string, currentEpoch int64, fetchTx chan<- fetchJob, ep *epoch, status *statusStore, cfg Config) {
	remaining := strings.TrimSpace(buffer)
	if len(remaining) < 2 || !text.HasAlphanumeric(remaining) {
		return
	}

	var chunks []string
	if len(remaining) <= cfg.MaxChunkLen {
		chunks = []string{remaining}
	} else {
		chunks = text.SplitChunks(remaining, cfg.MaxChunkLen)
	}

	count := len(chunks)
	status.Update(func(s *Status) { s.QueueLength += count })
	logging.Debugf("stream: flushing %d final chunk(s)", count)

	for _, piece := range chunks {
		if ep.stale(currentEpoch) {
			break
		}
		fetchTx <- fetchJob{text: piece, epoch: currentEpoch}
	}
}
