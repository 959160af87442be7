package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

// SpeakCmd sends text to the running daemon for synthesis and playback.
func SpeakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speak <text>",
		Short: "Queue text for synthesis and playback",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := args[0]
			for _, a := range args[1:] {
				text += " " + a
			}
			var out struct {
				OK           bool `json:"ok"`
				QueuedChunks int  `json:"queued_chunks"`
			}
			if err := postJSON("/speak", map[string]string{"text": text, "voice": voice}, &out); err != nil {
				fail(err)
			}
			fmt.Printf("queued %d chunk(s)\n", out.QueuedChunks)
		},
	}
}

// StopCmd cancels any in-flight synthesis and clears the playback queue.
func StopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Cancel synthesis and playback",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postJSON("/stop", nil, nil); err != nil {
				fail(err)
			}
			fmt.Println("stopped")
		},
	}
}

// SkipCmd advances past the currently-playing chunk.
func SkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Skip the current chunk",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postJSON("/skip", nil, nil); err != nil {
				fail(err)
			}
			fmt.Println("skipped")
		},
	}
}

// PauseCmd pauses playback in place.
func PauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause playback",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postJSON("/pause", nil, nil); err != nil {
				fail(err)
			}
			fmt.Println("paused")
		},
	}
}

// ResumeCmd resumes paused playback.
func ResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume paused playback",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postJSON("/resume", nil, nil); err != nil {
				fail(err)
			}
			fmt.Println("resumed")
		},
	}
}

// StatusCmd prints the daemon's current state, queue length, and voice.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the daemon's current state",
		Run: func(cmd *cobra.Command, args []string) {
			var status struct {
				State       string `json:"state"`
				QueueLength int    `json:"queue_length"`
				Voice       string `json:"voice"`
			}
			resp, err := httpClient.Get(fmt.Sprintf("http://%s/status", daemonAddr()))
			if err != nil {
				fail(err)
			}
			defer resp.Body.Close()
			if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
				fail(err)
			}
			fmt.Printf("state: %s\nqueue: %d\nvoice: %s\n", status.State, status.QueueLength, status.Voice)
		},
	}
}

// ReadCmd drives the sentence-tracked reader surface: start reading a
// document from a given sentence via /reader/speak_from and print the
// sentence the read starts at, as reported in that call's reply.
func ReadCmd() *cobra.Command {
	var from int

	cmd := &cobra.Command{
		Use:   "read <text>",
		Short: "Read text aloud, tracking the current sentence",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := args[0]
			for _, a := range args[1:] {
				text += " " + a
			}
			var status struct {
				CurrentSentenceIndex *int `json:"current_sentence_index"`
				TotalSentencesInText int  `json:"total_sentences"`
			}
			body := map[string]any{"text": text, "sentence_index": from}
			if err := postJSON("/reader/speak_from", body, &status); err != nil {
				fail(err)
			}
			if status.CurrentSentenceIndex != nil {
				fmt.Printf("reading sentence %d of %d\n", *status.CurrentSentenceIndex, status.TotalSentencesInText)
			}
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "sentence index to start reading from")
	return cmd
}

func postJSON(path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	resp, err := httpClient.Post(fmt.Sprintf("http://%s%s", daemonAddr(), path), "application/json", reader)
	if err != nil {
		return fmt.Errorf("is nayru running? %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("daemon returned %s", resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "\033[31mnayru: %v\033[0m\n", err)
	os.Exit(1)
}
