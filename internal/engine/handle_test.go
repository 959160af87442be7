package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestHandle() *Handle {
	return New(Config{
		SynthURL:    "http://127.0.0.1:0",
		Voice:       "af_heart",
		Speed:       1.0,
		MaxChunkLen: 200,
	})
}

func TestSpeakRejectsEmptyAfterCleaning(t *testing.T) {
	h := newTestHandle()
	n := h.Speak("`code block`")
	assert.Equal(t, 0, n)
}

func TestSpeakRejectsPunctuationOnly(t *testing.T) {
	h := newTestHandle()
	n := h.Speak("...")
	assert.Equal(t, 0, n)
}

func TestSpeakEstimatesChunkCount(t *testing.T) {
	h := newTestHandle()
	n := h.Speak("Hello world. How are you today?")
	assert.Equal(t, 2, n)
}

func TestStopBumpsEpoch(t *testing.T) {
	h := newTestHandle()
	before := h.epoch.current()
	h.Stop()
	assert.Greater(t, h.epoch.current(), before)
}

func TestStatusStartsIdle(t *testing.T) {
	h := newTestHandle()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, StateIdle, h.Status().State)
	assert.Equal(t, "af_heart", h.Status().Voice)
}
