package ui

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/rs/zerolog"
)

// IconLoader loads field icons from disk and tints them with the HUD icon
// colour. Failures are logged once and cached; the row renders without icon.
type IconLoader struct {
	dir   string
	cache map[string]fyne.Resource
	log   zerolog.Logger
}

// NewIconLoader creates a loader resolving icon refs against dir
func NewIconLoader(dir string, log zerolog.Logger) *IconLoader {
	return &IconLoader{
		dir:   dir,
		cache: make(map[string]fyne.Resource),
		log:   log.With().Str("component", "icons").Logger(),
	}
}

// Load returns the tinted icon for ref, or nil when it cannot be read
func (l *IconLoader) Load(ref string) fyne.Resource {
	if res, ok := l.cache[ref]; ok {
		return res
	}

	var res fyne.Resource
	path := filepath.Join(l.dir, filepath.FromSlash(ref))
	raw, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		l.log.Warn().Err(err).Str("icon", path).Msg("Failed to load icon")
	} else {
		res = theme.NewColoredResource(raw, ColorNameHUDIcon)
	}

	l.cache[ref] = res
	return res
}
