// Package colormanager holds named color presets (solid colors or
// gradients) and samples gradients for effects.
package colormanager

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"panelfx/internal/colorspace"
)

// PresetKind tags which variant a ColorPreset holds.
type PresetKind string

const (
	KindSolid    PresetKind = "solid"
	KindGradient PresetKind = "gradient"
)

// Preset is a tagged union: either a solid color or a gradient, referenced
// by name from effect params.
type Preset struct {
	Kind     PresetKind
	Solid    colorspace.RGBCCTColor
	Gradient colorspace.Gradient
}

// SolidPreset builds a solid-color preset.
func SolidPreset(c colorspace.RGBCCTColor) Preset {
	return Preset{Kind: KindSolid, Solid: c}
}

// GradientPreset builds a gradient preset.
func GradientPreset(g colorspace.Gradient) Preset {
	return Preset{Kind: KindGradient, Gradient: g}
}

// Manager owns the named color preset table.
type Manager struct {
	mu      sync.RWMutex
	presets map[string]Preset
	log     *logrus.Entry
}

// New creates an empty Manager.
func New(log *logrus.Entry) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Manager{presets: make(map[string]Preset), log: log}
}

// AddPreset stores or replaces a named preset.
func (m *Manager) AddPreset(name string, p Preset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets[name] = p
}

// GetPreset returns the named preset, if present.
func (m *Manager) GetPreset(name string) (Preset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.presets[name]
	return p, ok
}

// HasPreset reports whether name is known.
func (m *Manager) HasPreset(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.presets[name]
	return ok
}

// RemovePreset deletes a named preset.
func (m *Manager) RemovePreset(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.presets, name)
}

// ListPresets returns every known preset name.
func (m *Manager) ListPresets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.presets))
	for name := range m.presets {
		names = append(names, name)
	}
	return names
}

// RawPresetConfig is the loosely-typed shape color presets arrive in from a
// configuration file, before validation.
type RawPresetConfig struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color *struct {
		R, G, B, Cool, Warm int
	} `json:"color,omitempty"`
	Gradient *struct {
		Space string `json:"space"`
		Stops []struct {
			Position float64 `json:"position"`
			Color    struct {
				R, G, B, Cool, Warm int
			} `json:"color"`
		} `json:"stops"`
	} `json:"gradient,omitempty"`
}

// LoadPresetsFromConfig validates and loads a batch of raw preset entries,
// skipping (and logging a warning for) any entry that fails validation
// rather than aborting the whole load.
func (m *Manager) LoadPresetsFromConfig(entries []RawPresetConfig) {
	for _, e := range entries {
		p, err := validateRawPreset(e)
		if err != nil {
			m.log.WithField("preset", e.Name).Warnf("skipping invalid color preset: %v", err)
			continue
		}
		m.AddPreset(e.Name, p)
	}
}

func validateRawPreset(e RawPresetConfig) (Preset, error) {
	if e.Name == "" {
		return Preset{}, fmt.Errorf("missing name")
	}
	switch PresetKind(e.Kind) {
	case KindSolid:
		if e.Color == nil {
			return Preset{}, fmt.Errorf("solid preset %q missing color", e.Name)
		}
		c := e.Color
		return SolidPreset(colorspace.RGBCCTColor{R: c.R, G: c.G, B: c.B, Cool: c.Cool, Warm: c.Warm}), nil
	case KindGradient:
		if e.Gradient == nil || len(e.Gradient.Stops) == 0 {
			return Preset{}, fmt.Errorf("gradient preset %q missing stops", e.Name)
		}
		stops := make([]colorspace.GradientStop, 0, len(e.Gradient.Stops))
		for _, s := range e.Gradient.Stops {
			stops = append(stops, colorspace.GradientStop{
				Position: s.Position,
				Color:    colorspace.RGBCCTColor{R: s.Color.R, G: s.Color.G, B: s.Color.B, Cool: s.Color.Cool, Warm: s.Color.Warm},
			})
		}
		space := colorspace.SpaceRGB
		if colorspace.ColorSpace(e.Gradient.Space) == colorspace.SpaceHSV {
			space = colorspace.SpaceHSV
		}
		return GradientPreset(colorspace.NewGradient(space, stops...)), nil
	default:
		return Preset{}, fmt.Errorf("preset %q has unknown kind %q", e.Name, e.Kind)
	}
}

// InterpolateGradient samples a gradient at position p in [0,1].
func (m *Manager) InterpolateGradient(g colorspace.Gradient, p float64) colorspace.RGBCCTColor {
	return g.Sample(p)
}

// ResolveColor resolves a named preset to a single representative color:
// the solid color itself, or the gradient sampled at its midpoint. If the
// name is unknown, ok is false.
func (m *Manager) ResolveColor(name string) (colorspace.RGBCCTColor, bool) {
	p, ok := m.GetPreset(name)
	if !ok {
		return colorspace.RGBCCTColor{}, false
	}
	if p.Kind == KindSolid {
		return p.Solid, true
	}
	return p.Gradient.Sample(0.5), true
}

// ResolveGradient resolves a named preset to a gradient: the gradient
// itself, or a degenerate single-color gradient for a solid preset. If the
// name is unknown, ok is false.
func (m *Manager) ResolveGradient(name string) (colorspace.Gradient, bool) {
	p, ok := m.GetPreset(name)
	if !ok {
		return colorspace.Gradient{}, false
	}
	if p.Kind == KindGradient {
		return p.Gradient, true
	}
	return colorspace.NewGradient(colorspace.SpaceRGB,
		colorspace.GradientStop{Position: 0, Color: p.Solid},
		colorspace.GradientStop{Position: 1, Color: p.Solid},
	), true
}
