// Package httpserver exposes the engine's speak/stream/stop/skip/pause/
// resume/status surface over HTTP, for CLI or desktop-shell drivers that
// prefer talking to a local daemon over linking the engine directly.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/neboloop/nayru/internal/controller"
	"github.com/neboloop/nayru/internal/httputil"
	"github.com/neboloop/nayru/internal/logging"
)

// Server binds a controller.Controller to chi routes: the plain
// speak/stream/stop/skip/pause/resume/status surface plus a /reader/*
// surface for sentence-level start/skip with tracked highlighting.
type Server struct {
	ctrl *controller.Controller
	http *http.Server
}

// New builds a Server listening on addr, routing requests to ctrl's engine
// and sentence tracker.
func New(addr string, ctrl *controller.Controller) *Server {
	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Use(requestIDMiddleware)

	s := &Server{ctrl: ctrl}

	r.Post("/speak", s.handleSpeak)
	r.Post("/stream/chunk", s.handleStreamChunk)
	r.Post("/stream/end", s.handleStreamEnd)
	r.Post("/stop", s.handleStop)
	r.Post("/skip", s.handleSkip)
	r.Post("/pause", s.handlePause)
	r.Post("/resume", s.handleResume)
	r.Get("/status", s.handleStatus)
	r.Get("/ws/status", s.handleStatusWS)

	r.Post("/reader/speak_from", s.handleReaderSpeakFrom)
	r.Post("/reader/stop", s.handleReaderStop)
	r.Post("/reader/pause", s.handleReaderPause)
	r.Post("/reader/resume", s.handleReaderResume)
	r.Post("/reader/skip_sentence", s.handleReaderSkipSentence)
	r.Get("/reader/status", s.handleReaderStatus)
	r.Get("/reader/config", s.handleReaderGetConfig)
	r.Post("/reader/config", s.handleReaderSetConfig)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Run blocks serving HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Infof("httpserver: listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// corsMiddleware allows any origin, matching the permissive CORS policy a
// local-only engine driver needs for browser-based desktop shells.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware stamps every response with a unique X-Request-Id,
// letting a client correlate a /speak call with the daemon's log lines.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		logging.Debugf("httpserver: %s %s [%s]", r.Method, r.URL.Path, id)
		next.ServeHTTP(w, r)
	})
}

type speakRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

type speakResponse struct {
	OK           bool `json:"ok"`
	QueuedChunks int  `json:"queued_chunks"`
}

func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var req speakRequest
	if err := httputil.Parse(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	n := s.ctrl.Engine().Speak(req.Text)
	httputil.OkJSON(w, speakResponse{OK: true, QueuedChunks: n})
}

type streamChunkRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleStreamChunk(w http.ResponseWriter, r *http.Request) {
	var req streamChunkRequest
	if err := httputil.Parse(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	s.ctrl.Engine().StreamChunk(req.Text)
	httputil.OkJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handleStreamEnd(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Engine().StreamEnd()
	httputil.OkJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Engine().Stop()
	httputil.OkJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Engine().Skip()
	httputil.OkJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Engine().Pause()
	httputil.OkJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Engine().Resume()
	httputil.OkJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.OkJSON(w, s.ctrl.Engine().Status())
}

// Addr returns the address the server is configured to listen on; useful
// for tests and for printing a startup banner before Run blocks.
func (s *Server) Addr() string {
	return s.http.Addr
}

type speakFromRequest struct {
	Text          string `json:"text"`
	SentenceIndex int    `json:"sentence_index"`
}

func (s *Server) handleReaderSpeakFrom(w http.ResponseWriter, r *http.Request) {
	var req speakFromRequest
	if err := httputil.Parse(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.OkJSON(w, s.ctrl.SpeakFrom(req.Text, req.SentenceIndex))
}

func (s *Server) handleReaderStop(w http.ResponseWriter, r *http.Request) {
	httputil.OkJSON(w, s.ctrl.Stop())
}

func (s *Server) handleReaderPause(w http.ResponseWriter, r *http.Request) {
	httputil.OkJSON(w, s.ctrl.Pause())
}

func (s *Server) handleReaderResume(w http.ResponseWriter, r *http.Request) {
	httputil.OkJSON(w, s.ctrl.Resume())
}

func (s *Server) handleReaderSkipSentence(w http.ResponseWriter, r *http.Request) {
	httputil.OkJSON(w, s.ctrl.SkipSentence())
}

func (s *Server) handleReaderStatus(w http.ResponseWriter, r *http.Request) {
	httputil.OkJSON(w, s.ctrl.Status())
}

func (s *Server) handleReaderGetConfig(w http.ResponseWriter, r *http.Request) {
	httputil.OkJSON(w, s.ctrl.Config())
}

type configPatchRequest struct {
	Voice    string  `json:"voice"`
	Speed    float64 `json:"speed"`
	SynthURL string  `json:"synth_url"`
}

func (s *Server) handleReaderSetConfig(w http.ResponseWriter, r *http.Request) {
	var req configPatchRequest
	if err := httputil.Parse(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	s.ctrl.SetConfig(controller.ConfigPatch{Voice: req.Voice, Speed: req.Speed, SynthURL: req.SynthURL})
	httputil.OkJSON(w, s.ctrl.Config())
}
