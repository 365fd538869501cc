package hud

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/sisuhud/sisu-hud/internal/config"
	"github.com/sisuhud/sisu-hud/internal/model"
)

// LogSurface is a Surface that writes the panel to a logger. It backs the
// headless entry point and only logs rows when their text changes.
type LogSurface struct {
	log  zerolog.Logger
	last string
}

var _ Surface = (*LogSurface)(nil)

// NewLogSurface creates a surface logging to log
func NewLogSurface(log zerolog.Logger) *LogSurface {
	return &LogSurface{log: log.With().Str("component", "surface").Logger()}
}

// Render logs the visible rows as label=value pairs
func (s *LogSurface) Render(rows []Row) {
	line := FormatRows(rows)
	if line == s.last {
		return
	}
	s.last = line
	s.log.Info().Int("fields", len(rows)).Msg(line)
}

// Place logs the panel geometry
func (s *LogSurface) Place(g model.Geometry, textScale float64) {
	s.log.Debug().
		Float64("left", g.Left).
		Float64("top", g.Top).
		Float64("width", g.Width).
		Float64("height", g.Height).
		Float64("text_scale", textScale).
		Msg("Panel placed")
}

// Restyle logs the panel colours
func (s *LogSurface) Restyle(a config.Appearance) {
	s.log.Debug().Str("icon_color", a.IconColor).Str("value_color", a.ValueColor).Msg("Panel restyled")
}

// FormatRows renders rows on one line, e.g. "Power=250 | Cadence=90"
func FormatRows(rows []Row) string {
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, r.Label+"="+r.Display)
	}
	return strings.Join(parts, " | ")
}
