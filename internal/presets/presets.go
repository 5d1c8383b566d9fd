// Package presets persists named effect presets (effect name, topology,
// params) to a JSON file and protects a seeded set of defaults from
// mutation.
package presets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"panelfx/internal/apperr"
	"panelfx/internal/effects"
	"panelfx/internal/grid"
)

// EffectPreset is one persisted preset entry.
type EffectPreset struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Effect      effects.Name    `json:"effect"`
	Topology    grid.TopologyMode `json:"topology"`
	Params      effects.Params  `json:"params"`
	IsProtected bool            `json:"isProtected"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type fileFormat struct {
	Version string         `json:"version"`
	Presets []EffectPreset `json:"presets"`
}

const currentVersion = "1.0"

// Store is the in-memory preset table, backed by an atomically-rewritten
// JSON file.
type Store struct {
	mu   sync.RWMutex
	path string
	byID map[string]EffectPreset
	now  func() time.Time
}

// NewStore loads path, seeding protected defaults on first run (missing or
// unreadable file).
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, byID: make(map[string]EffectPreset), now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		s.seedDefaults()
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		s.seedDefaults()
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}
	for _, p := range ff.Presets {
		s.byID[p.ID] = p
	}
	return s, nil
}

var sanitizeWhitespace = regexp.MustCompile(`\s+`)
var sanitizeDisallowed = regexp.MustCompile(`[^a-z0-9-]+`)
var sanitizeDashes = regexp.MustCompile(`-+`)

// Sanitize converts an arbitrary string into an id matching
// ^[a-z0-9]+(-[a-z0-9]+)*$, or returns "" if nothing survives.
func Sanitize(s string) string {
	s = strings.ToLower(s)
	s = sanitizeWhitespace.ReplaceAllString(s, "-")
	s = sanitizeDisallowed.ReplaceAllString(s, "")
	s = sanitizeDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// Create sanitizes p.ID, rejects empty/colliding ids, stamps
// createdAt=updatedAt=now, and persists.
func (s *Store) Create(p EffectPreset) (EffectPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := Sanitize(p.ID)
	if id == "" {
		return EffectPreset{}, apperr.New(apperr.CodeInvalidParam, "preset id sanitizes to empty")
	}
	if _, exists := s.byID[id]; exists {
		return EffectPreset{}, apperr.New(apperr.CodeConflict, "preset %q already exists", id)
	}

	now := s.now()
	p.ID = id
	p.IsProtected = false
	p.CreatedAt = now
	p.UpdatedAt = now
	s.byID[id] = p

	if err := s.persistLocked(); err != nil {
		return EffectPreset{}, err
	}
	return p, nil
}

// Update applies patch fields over the stored preset (id, isProtected, and
// createdAt are immutable), stamps updatedAt, and persists.
func (s *Store) Update(id string, patch EffectPreset) (EffectPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[id]
	if !ok {
		return EffectPreset{}, apperr.New(apperr.CodeNotFound, "preset %q not found", id)
	}
	if existing.IsProtected {
		return EffectPreset{}, apperr.New(apperr.CodeProtected, "preset %q is protected", id)
	}

	if patch.Name != "" {
		existing.Name = patch.Name
	}
	if patch.Effect != "" {
		existing.Effect = patch.Effect
	}
	if patch.Topology != "" {
		existing.Topology = patch.Topology
	}
	if patch.Params != nil {
		existing.Params = patch.Params
	}
	existing.UpdatedAt = s.now()

	s.byID[id] = existing
	if err := s.persistLocked(); err != nil {
		return EffectPreset{}, err
	}
	return existing, nil
}

// Delete removes a non-protected preset and persists.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[id]
	if !ok {
		return apperr.New(apperr.CodeNotFound, "preset %q not found", id)
	}
	if existing.IsProtected {
		return apperr.New(apperr.CodeProtected, "preset %q is protected", id)
	}
	delete(s.byID, id)
	return s.persistLocked()
}

// Get returns a read-only snapshot of a single preset.
func (s *Store) Get(id string) (EffectPreset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// GetAll returns a read-only snapshot of every preset.
func (s *Store) GetAll() []EffectPreset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]EffectPreset, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out
}

// persistLocked writes the entire in-memory set as pretty JSON via
// write-temp-then-rename, so the file is always a valid snapshot of some
// committed state. Caller must hold s.mu.
func (s *Store) persistLocked() error {
	ff := fileFormat{Version: currentVersion}
	for _, p := range s.byID {
		ff.Presets = append(ff.Presets, p)
	}

	data, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return apperr.New(apperr.CodeIO, "marshal preset store: %v", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.New(apperr.CodeIO, "create preset directory: %v", err)
	}
	tmp, err := os.CreateTemp(dir, ".presets-*.tmp")
	if err != nil {
		return apperr.New(apperr.CodeIO, "create temp preset file: %v", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperr.New(apperr.CodeIO, "write temp preset file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperr.New(apperr.CodeIO, "close temp preset file: %v", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return apperr.New(apperr.CodeIO, "rename temp preset file: %v", err)
	}
	return nil
}

func (s *Store) seedDefaults() {
	now := s.now()
	seed := func(id, name string, effect effects.Name, topology grid.TopologyMode, params effects.Params) {
		s.byID[id] = EffectPreset{
			ID: id, Name: name, Effect: effect, Topology: topology,
			Params: params, IsProtected: true, CreatedAt: now, UpdatedAt: now,
		}
	}

	seed("sequential-ww", "Sequential Warm White", effects.NameSequentialFade, grid.TopologyLinear, effects.Params{
		"colorPreset": effects.Str("warm"), "brightness": effects.Num(1),
		"delayBetweenPanels": effects.Num(200), "fadeDuration": effects.Num(1050),
	})
	seed("sequential-cw", "Sequential Cool White", effects.NameSequentialFade, grid.TopologyLinear, effects.Params{
		"colorPreset": effects.Str("white"), "brightness": effects.Num(1),
		"delayBetweenPanels": effects.Num(200), "fadeDuration": effects.Num(1050),
	})
	seed("flow-slow-rainbow", "Slow Rainbow Flow", effects.NameFlow, grid.TopologyLinear, effects.Params{
		"colorPreset": effects.Str("rainbow"), "brightness": effects.Num(1),
		"speed": effects.Num(0.1), "scale": effects.Num(0.15),
	})
	seed("strobe-10hz", "10Hz Strobe", effects.NameStrobe, grid.TopologyCircular, effects.Params{
		"colorPreset": effects.Str("white"), "brightness": effects.Num(1),
		"frequency": effects.Num(10),
	})
	seed("blackout-quick", "Quick Blackout", effects.NameBlackout, grid.TopologyCircular, effects.Params{
		"brightness": effects.Num(1), "transitionDuration": effects.Num(300),
	})
	seed("blackout-instant", "Instant Blackout", effects.NameBlackout, grid.TopologyCircular, effects.Params{
		"brightness": effects.Num(1), "transitionDuration": effects.Num(0),
	})
	seed("flow-quick-chase", "Quick Chase Flow", effects.NameFlow, grid.TopologyLinear, effects.Params{
		"colorPreset": effects.Str("breathe"), "brightness": effects.Num(1),
		"speed": effects.Num(0.8), "scale": effects.Num(0.4),
	})
}
