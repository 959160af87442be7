// Package pcmsource implements a pull-based streaming PCM source that
// presents a channel of int16 sample batches as an io.Reader, the shape
// an audio output backend like oto expects.
//
// The fetcher creates a Source only after receiving the first PCM batch
// from the synthesizer, so the player never starts reading from an empty
// stream. Once playing, Read blocks on the channel for at most 10ms; if no
// data arrives in time it emits a single silent sample to keep the output
// device alive rather than starving it.
package pcmsource

import (
	"encoding/binary"
	"io"
	"time"
)

const recvTimeout = 10 * time.Millisecond

// Batch is one unit sent from a fetcher to a Source: either a slice of
// interleaved int16 samples, or a Done marker indicating no more data will
// arrive.
type Batch struct {
	Samples []int16
	Done    bool
}

// Source is an io.Reader that yields little-endian PCM bytes pulled from a
// channel of Batch values, on demand.
type Source struct {
	rx         <-chan Batch
	buffer     []int16
	channels   uint16
	sampleRate uint32
	finished   bool
	pending    []byte // leftover encoded byte when a Read call ends mid-sample
}

// NewSource builds a Source reading from rx. The caller should have already
// sent the first non-empty Batch before handing this Source to a player, so
// the first Read call returns real audio immediately.
func NewSource(rx <-chan Batch, channels uint16, sampleRate uint32) *Source {
	return &Source{
		rx:         rx,
		buffer:     make([]int16, 0, 8192),
		channels:   channels,
		sampleRate: sampleRate,
	}
}

// Channels returns the stream's channel count.
func (s *Source) Channels() uint16 { return s.channels }

// SampleRate returns the stream's sample rate.
func (s *Source) SampleRate() uint32 { return s.sampleRate }

// fillBuffer drains every immediately available batch, then, if still
// empty and not finished, blocks up to recvTimeout for one more.
func (s *Source) fillBuffer() {
	for {
		select {
		case batch, ok := <-s.rx:
			if !ok {
				s.finished = true
				return
			}
			if batch.Done {
				s.finished = true
				return
			}
			s.buffer = append(s.buffer, batch.Samples...)
			continue
		default:
		}
		break
	}

	if len(s.buffer) == 0 && !s.finished {
		timer := time.NewTimer(recvTimeout)
		defer timer.Stop()
		select {
		case batch, ok := <-s.rx:
			if !ok {
				s.finished = true
			} else if batch.Done {
				s.finished = true
			} else {
				s.buffer = append(s.buffer, batch.Samples...)
			}
		case <-timer.C:
			// no data within the window; caller falls back to silence
		}
	}
}

// nextSample returns the next sample and true, or 0 and false once the
// stream has truly ended (finished with an empty buffer). A timeout with no
// data yields a single silent sample rather than blocking indefinitely.
func (s *Source) nextSample() (int16, bool) {
	if len(s.buffer) > 0 {
		sample := s.buffer[0]
		s.buffer = s.buffer[1:]
		return sample, true
	}

	if s.finished {
		return 0, false
	}

	s.fillBuffer()

	if len(s.buffer) > 0 {
		sample := s.buffer[0]
		s.buffer = s.buffer[1:]
		return sample, true
	}
	if s.finished {
		return 0, false
	}
	return 0, true // timeout: keep-alive silence
}

// Read implements io.Reader, encoding samples as little-endian 16-bit PCM.
func (s *Source) Read(p []byte) (int, error) {
	n := 0

	if len(s.pending) > 0 {
		n += copy(p, s.pending)
		s.pending = s.pending[n:]
		if n == len(p) {
			return n, nil
		}
	}

	for n < len(p) {
		sample, ok := s.nextSample()
		if !ok {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}

		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], uint16(sample))

		if len(p)-n >= 2 {
			copy(p[n:], tmp[:])
			n += 2
		} else {
			p[n] = tmp[0]
			n++
			s.pending = append(s.pending, tmp[1])
		}
	}

	return n, nil
}
