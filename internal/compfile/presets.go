package compfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

const presetsKey = "presets"

// Presets maps preset names to compositions.
type Presets map[string]domain.Oxides

// DecodePresets parses a presets file:
//
//	units: percent
//	presets:
//	  harzburgite: {MgO: 44, FeO: 8}
//
// The units key applies to every preset. Names are case-insensitive.
func DecodePresets(data []byte, f Format) (Presets, error) {
	raw, err := unmarshal(data, f)
	if err != nil {
		return nil, err
	}
	scale, err := scaleOf(raw)
	if err != nil {
		return nil, err
	}
	entries, ok := raw[presetsKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("missing %q table", presetsKey)
	}
	delete(raw, presetsKey)
	if len(raw) > 0 {
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys %s", strings.Join(keys, ", "))
	}

	out := make(Presets, len(entries))
	for name, v := range entries {
		ox, err := decodeOxides(v, scale)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out[strings.ToLower(name)] = ox
	}
	return out, nil
}

// LoadPresets reads a presets file from path.
func LoadPresets(path string) (Presets, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}
	p, err := DecodePresets(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Store holds the current presets and can be reloaded while in use.
// Safe for concurrent use.
type Store struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	presets Presets
	hooks   []func(names []string)
}

// NewStore loads the presets at path.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the file. On error the previous presets are kept.
func (s *Store) Reload() error {
	p, err := LoadPresets(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.presets = p
	s.mu.Unlock()
	return nil
}

// OnReload registers fn to be called with the new preset names after every
// successful reload triggered by Watch.
func (s *Store) OnReload(fn func(names []string)) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	names := s.Names()
	s.mu.RLock()
	hooks := append([]func([]string){}, s.hooks...)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn(names)
	}
}

// Get returns the named preset.
func (s *Store) Get(name string) (domain.Oxides, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ox, ok := s.presets[strings.ToLower(name)]
	return ox, ok
}

// Names lists the preset names in alphabetical order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.presets))
	for name := range s.presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Watch reloads the store whenever its file changes, until ctx is done.
// Rapid successive writes are coalesced over debounce.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory so that files replaced by editors are still seen.
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	s.logger.Info("watching presets", "path", abs)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(abs) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if err := s.Reload(); err != nil {
					s.logger.Warn("failed to reload presets", "path", abs, "error", err)
					return
				}
				s.logger.Info("presets reloaded", "path", abs, "count", len(s.Names()))
				s.notify()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("presets watcher error", "error", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
