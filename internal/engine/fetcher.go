package engine

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/neboloop/nayru/internal/logging"
	"github.com/neboloop/nayru/internal/pcmsource"
)

// speechRequest is the JSON body sent to the synthesizer.
type speechRequest struct {
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Model          string  `json:"model"`
	ResponseFormat string  `json:"response_format"`
	Stream         bool    `json:"stream"`
	Speed          float64 `json:"speed"`
}

// runFetcher is one worker in the fetcher pool. N workers share jobRx,
// guarded by jobMu so that at most one worker is dequeuing at any instant;
// once a worker holds a job the rest continue racing for the next one.
func runFetcher(id int, jobRx <-chan fetchJob, jobMu *sync.Mutex, playCmdTx chan<- playCmd, ep *epoch, status *statusStore, cfg Config) {
	client := &http.Client{}
	url := cfg.SynthURL + "/v1/audio/speech"

	for {
		job, ok := takeJob(jobRx, jobMu)
		if !ok {
			return
		}

		if ep.stale(job.epoch) {
			logging.Debugf("fetch[%d]: discarding stale job", id)
			continue
		}

		status.Update(func(s *Status) {
			if s.State == StateIdle {
				s.State = StateConverting
			}
		})

		runJob(id, job, url, client, playCmdTx, ep, cfg)

		status.Update(func(s *Status) {
			if s.QueueLength > 0 {
				s.QueueLength--
			}
		})
	}
}

func takeJob(jobRx <-chan fetchJob, jobMu *sync.Mutex) (fetchJob, bool) {
	jobMu.Lock()
	defer jobMu.Unlock()
	job, ok := <-jobRx
	return job, ok
}

func runJob(id int, job fetchJob, url string, client *http.Client, playCmdTx chan<- playCmd, ep *epoch, cfg Config) {
	body, err := json.Marshal(speechRequest{
		Input:          job.text,
		Voice:          cfg.Voice,
		Model:          "kokoro",
		ResponseFormat: "pcm",
		Stream:         true,
		Speed:          cfg.Speed,
	})
	if err != nil {
		logging.Errorf("fetch[%d]: marshal request: %v", id, err)
		return
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logging.Errorf("fetch[%d]: build request: %v", id, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	logging.Debugf("fetch[%d]: POST %d chars", id, len(job.text))

	resp, err := client.Do(req)
	if err != nil {
		logging.Errorf("fetch[%d]: request failed: %v", id, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		logging.Errorf("fetch[%d]: synthesizer error %d: %s", id, resp.StatusCode, errBody)
		return
	}

	if ep.stale(job.epoch) {
		logging.Debugf("fetch[%d]: stale response, discarding", id)
		return
	}

	streamPCM(id, job, resp.Body, playCmdTx, ep)
}

func streamPCM(id int, job fetchJob, body io.Reader, playCmdTx chan<- playCmd, ep *epoch) {
	var leftover []byte
	var pcmTx chan pcmsource.Batch

	buf := make([]byte, 4096)
	for {
		if ep.stale(job.epoch) {
			break
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			samples, rem := bytesToI16(buf[:n], leftover)
			leftover = rem

			if pcmTx == nil && len(samples) > 0 {
				pcmTx = make(chan pcmsource.Batch, 32)
				pcmTx <- pcmsource.Batch{Samples: samples}

				source := pcmsource.NewSource(pcmTx, PCMChannels, PCMSampleRate)
				playCmdTx <- playCmd{kind: playCmdPlayStream, source: source}
			} else if len(samples) > 0 && pcmTx != nil {
				pcmTx <- pcmsource.Batch{Samples: samples}
			}
		}

		if readErr != nil {
			if readErr != io.EOF {
				logging.Errorf("fetch[%d]: stream error: %v", id, readErr)
			}
			break
		}
	}

	if pcmTx != nil {
		pcmTx <- pcmsource.Batch{Done: true}
	}
}

// bytesToI16 converts raw bytes to little-endian int16 PCM samples, merging
// in any leftover odd byte carried from the previous chunk and returning the
// new trailing leftover byte (as a 1-byte slice), if any.
func bytesToI16(chunk []byte, leftover []byte) ([]int16, []byte) {
	var slice []byte
	if len(leftover) > 0 {
		slice = make([]byte, 0, len(leftover)+len(chunk))
		slice = append(slice, leftover...)
		slice = append(slice, chunk...)
	} else {
		slice = chunk
	}

	n := len(slice) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(slice[i*2 : i*2+2]))
	}

	if len(slice)%2 == 1 {
		return samples, []byte{slice[len(slice)-1]}
	}
	return samples, nil
}
