package engine

import (
	"io"
	"runtime"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/neboloop/nayru/internal/logging"
	"github.com/neboloop/nayru/internal/pcmsource"
)

// pollInterval governs how often the playback worker checks whether the
// currently-playing source has drained. oto has no built-in gapless-queue
// primitive (unlike rodio's Sink), so the worker polls rather than relying
// purely on a blocking command receive.
const pollInterval = 20 * time.Millisecond

// runPlaybackWorker owns the audio output for the lifetime of the engine.
// It must run on a dedicated OS thread: audio device handles are not safe
// to migrate between goroutines' underlying threads once opened.
func runPlaybackWorker(cmdCh <-chan playCmd, status *statusStore, sampleRate, channels int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		logging.Errorf("playback: failed to open audio output: %v", err)
		// Keep serving the mailbox so senders never block: every command is
		// a no-op, and each streamed source is drained without being played.
		for pc := range cmdCh {
			if pc.kind == playCmdPlayStream && pc.source != nil {
				go io.Copy(io.Discard, pc.source)
			}
		}
		return
	}
	<-ready

	sink := &playbackSink{ctx: ctx}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if sink.empty() {
			status.Update(func(s *Status) {
				if s.State == StatePlaying {
					s.State = StateIdle
				}
			})
		}

		select {
		case pc, ok := <-cmdCh:
			if !ok {
				sink.stop()
				return
			}
			switch pc.kind {
			case playCmdPlayStream:
				sink.append(pc.source)
				status.Update(func(s *Status) { s.State = StatePlaying })
			case playCmdSkip:
				sink.skipOne()
				if sink.empty() {
					status.Update(func(s *Status) { s.State = StateIdle })
				}
			case playCmdStop:
				sink.stop()
				status.Update(func(s *Status) { s.State = StateIdle })
			case playCmdPause:
				sink.pause()
			case playCmdResume:
				sink.resume()
			}
		case <-ticker.C:
			sink.advance()
		}
	}
}

// playbackSink plays a queue of pcmsource.Source readers back-to-back,
// advancing to the next as each finishes. It is only ever touched from the
// playback worker's goroutine.
type playbackSink struct {
	ctx     *oto.Context
	queue   []*pcmsource.Source
	current *oto.Player
	paused  bool
}

func (s *playbackSink) empty() bool {
	return s.current == nil && len(s.queue) == 0
}

func (s *playbackSink) append(src *pcmsource.Source) {
	s.queue = append(s.queue, src)
	s.advance()
}

func (s *playbackSink) advance() {
	if s.paused {
		return
	}
	if s.current != nil && !s.current.IsPlaying() {
		s.current.Close()
		s.current = nil
	}
	if s.current == nil && len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.current = s.ctx.NewPlayer(next)
		s.current.Play()
	}
}

func (s *playbackSink) skipOne() {
	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
	s.advance()
}

func (s *playbackSink) stop() {
	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
	s.queue = nil
}

func (s *playbackSink) pause() {
	s.paused = true
	if s.current != nil {
		s.current.Pause()
	}
}

func (s *playbackSink) resume() {
	s.paused = false
	if s.current != nil {
		s.current.Play()
	}
	s.advance()
}
