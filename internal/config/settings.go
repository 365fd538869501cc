package config

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/sisuhud/sisu-hud/internal/model"
)

// Store is a synchronous key/value store. fyne.Preferences satisfies it.
type Store interface {
	String(key string) string
	SetString(key, value string)
}

// Settings keys, shared with earlier releases of the overlay
const (
	KeyFieldState = "hudFieldOrder"
	KeyBounds     = "sisu-hud-bounds"
	KeyTextScale  = "sisu-hud-text-scaling"
	KeyAppearance = "sisu-modal-settings"
)

// Default values
const (
	DefaultTextScale  = 1.0
	DefaultIconColor  = "#FF0000"
	DefaultValueColor = "#008000"
)

// Appearance holds the colours chosen in the settings dialog
type Appearance struct {
	IconColor  string `json:"iconColor,omitempty"`
	ValueColor string `json:"valueColor,omitempty"`
}

// DefaultAppearance returns the colours used when nothing is stored
func DefaultAppearance() Appearance {
	return Appearance{IconColor: DefaultIconColor, ValueColor: DefaultValueColor}
}

// Normalized replaces missing or unparsable colours with the defaults
func (a Appearance) Normalized() Appearance {
	if !ValidColor(a.IconColor) {
		a.IconColor = DefaultIconColor
	}
	if !ValidColor(a.ValueColor) {
		a.ValueColor = DefaultValueColor
	}
	return a
}

// ValidColor reports whether s is a #RRGGBB or #RGB hex colour
func ValidColor(s string) bool {
	_, err := colorful.Hex(strings.TrimSpace(s))
	return err == nil
}

// Settings reads and writes the overlay's persisted customization.
// Malformed stored values are logged and treated as absent.
type Settings struct {
	store Store
	log   zerolog.Logger
}

// NewSettings creates a new settings manager
func NewSettings(store Store, log zerolog.Logger) *Settings {
	return &Settings{
		store: store,
		log:   log.With().Str("component", "settings").Logger(),
	}
}

// FieldState returns the persisted field order and visibility, or nil
func (s *Settings) FieldState() []model.FieldState {
	raw := strings.TrimSpace(s.store.String(KeyFieldState))
	if raw == "" {
		return nil
	}

	var states []model.FieldState
	if err := json.Unmarshal([]byte(raw), &states); err != nil {
		s.log.Warn().Err(err).Str("key", KeyFieldState).Msg("Ignoring malformed field state")
		return nil
	}
	return states
}

// SaveFieldState persists the field order and visibility
func (s *Settings) SaveFieldState(states []model.FieldState) {
	if states == nil {
		states = []model.FieldState{}
	}
	s.setJSON(KeyFieldState, states)
}

// Bounds returns the persisted panel geometry, or nil when absent or invalid
func (s *Settings) Bounds() *model.Geometry {
	raw := strings.TrimSpace(s.store.String(KeyBounds))
	if raw == "" {
		return nil
	}

	var g model.Geometry
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		s.log.Warn().Err(err).Str("key", KeyBounds).Msg("Ignoring malformed panel bounds")
		return nil
	}
	return &g
}

// SaveBounds persists the panel geometry
func (s *Settings) SaveBounds(g model.Geometry) {
	s.setJSON(KeyBounds, g)
}

// TextScale returns the persisted text scale, defaulting to 1
func (s *Settings) TextScale() float64 {
	raw := strings.TrimSpace(s.store.String(KeyTextScale))
	if raw == "" {
		return DefaultTextScale
	}

	scale, err := strconv.ParseFloat(raw, 64)
	if err != nil || scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		s.log.Warn().Str("key", KeyTextScale).Str("value", raw).Msg("Ignoring invalid text scale")
		return DefaultTextScale
	}
	return scale
}

// SaveTextScale persists the text scale factor
func (s *Settings) SaveTextScale(scale float64) {
	s.store.SetString(KeyTextScale, strconv.FormatFloat(scale, 'f', -1, 64))
}

// Appearance returns the persisted colours with defaults filled in
func (s *Settings) Appearance() Appearance {
	raw := strings.TrimSpace(s.store.String(KeyAppearance))
	if raw == "" {
		return DefaultAppearance()
	}

	var a Appearance
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		s.log.Warn().Err(err).Str("key", KeyAppearance).Msg("Ignoring malformed appearance settings")
		return DefaultAppearance()
	}
	return a.Normalized()
}

// SaveAppearance persists the colours
func (s *Settings) SaveAppearance(a Appearance) {
	s.setJSON(KeyAppearance, a.Normalized())
}

func (s *Settings) setJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to encode setting")
		return
	}
	s.store.SetString(key, string(data))
}
