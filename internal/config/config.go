// Package config loads nayru's engine and server settings from embedded
// YAML defaults, optionally overridden by a user config file and
// environment variables, and supports hot-reloading that file at runtime.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/neboloop/nayru/internal/engine"
	"github.com/neboloop/nayru/internal/logging"
)

// Config holds the settings for the server and the engine it wraps.
type Config struct {
	Host        string  `yaml:"host"`
	Port        int     `yaml:"port"`
	SynthURL    string  `yaml:"synth_url"`
	Voice       string  `yaml:"voice"`
	Speed       float64 `yaml:"speed"`
	MaxChunkLen int     `yaml:"max_chunk_len"`
}

// EngineConfig adapts Config to the engine's own Config shape.
func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		SynthURL:    c.SynthURL,
		Voice:       c.Voice,
		Speed:       c.Speed,
		MaxChunkLen: c.MaxChunkLen,
	}
}

// LoadFromBytes parses YAML bytes with environment variable expansion and
// applies defaults for anything left unset.
func LoadFromBytes(data []byte) (Config, error) {
	var c Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&c)
	return c, nil
}

// LoadFromFile reads and parses a YAML config file, falling back to
// defaults (as if the file were empty) if it doesn't exist.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadFromBytes(nil)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

func applyDefaults(c *Config) {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 2003
	}
	if c.SynthURL == "" {
		c.SynthURL = "http://localhost:3001"
	}
	if c.Voice == "" {
		c.Voice = "af_heart"
	}
	if c.Speed == 0 {
		c.Speed = 1.0
	}
	if c.MaxChunkLen == 0 {
		c.MaxChunkLen = engine.DefaultMaxChunkLen
	}
}

// Watcher reloads a config file on write and notifies a callback, letting
// the server pick up voice/speed/synth-url changes without a restart.
type Watcher struct {
	mu       sync.RWMutex
	path     string
	current  Config
	watcher  *fsnotify.Watcher
	onChange func(Config)
	cancel   context.CancelFunc
}

// NewWatcher loads path once and returns a Watcher primed with the result.
func NewWatcher(path string) (*Watcher, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, current: cfg}, nil
}

// Current returns the most recently loaded Config.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback invoked after each successful reload.
func (w *Watcher) OnChange(fn func(Config)) {
	w.onChange = fn
}

// Watch starts watching the config file's directory for writes until ctx
// is cancelled or Stop is called. A directory that cannot be watched is not
// an error — it is logged, and this watcher then never reloads.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.watcher = fw

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		logging.Debugf("config: could not watch %s: %v", dir, err)
	}

	go w.watchLoop(ctx)
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Errorf("config: watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFromFile(w.path)
	if err != nil {
		logging.Errorf("config: reload %s failed: %v", w.path, err)
		return
	}
	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	logging.Infof("config: reloaded %s", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Stop stops the watch goroutine and closes the underlying fsnotify watcher.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.watcher != nil {
		w.watcher.Close()
	}
}
