package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neboloop/nayru/internal/engine"
)

func newTestController() *Controller {
	return New(engine.Config{
		SynthURL:    "http://127.0.0.1:0",
		Voice:       "af_heart",
		Speed:       1.0,
		MaxChunkLen: 200,
	})
}

func TestSpeakFromTracksStartIndex(t *testing.T) {
	c := newTestController()
	status := c.SpeakFrom("First. Second. Third.", 1)

	require := assert.New(t)
	require.NotNil(status.CurrentSentenceIndex)
	require.Equal(1, *status.CurrentSentenceIndex)
	require.Equal(3, status.TotalSentencesInText)
}

func TestStopClearsTracker(t *testing.T) {
	c := newTestController()
	c.SpeakFrom("First. Second.", 0)
	status := c.Stop()

	assert.Nil(t, status.CurrentSentenceIndex)
	assert.Equal(t, 0, status.TotalSentencesInText)
}

func TestSkipSentenceWithNoActiveReadIsNoop(t *testing.T) {
	c := newTestController()
	status := c.SkipSentence()
	assert.Nil(t, status.CurrentSentenceIndex)
}

func TestSetConfigChangesVoiceAndClearsTracker(t *testing.T) {
	c := newTestController()
	c.SpeakFrom("Hello there.", 0)

	c.SetConfig(ConfigPatch{Voice: "bella"})

	assert.Equal(t, "bella", c.Config().Voice)
	assert.Nil(t, c.Status().CurrentSentenceIndex)
}

func TestSetConfigNoopWhenUnchanged(t *testing.T) {
	c := newTestController()
	before := c.Engine()
	c.SetConfig(ConfigPatch{Voice: "af_heart", Speed: 1.0})
	assert.Same(t, before, c.Engine())
}
