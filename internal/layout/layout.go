// Package layout tracks the panel geometry: restore at load, live
// drag-resize sessions, and clamping whenever the viewport changes.
package layout

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/sisuhud/sisu-hud/internal/model"
)

// Defaults
const (
	DefaultMinWidth         = 100
	DefaultMinHeight        = 100
	DefaultViewportFraction = 0.99
)

// GeometryStore persists the committed geometry and text scale
type GeometryStore interface {
	SaveBounds(g model.Geometry)
	SaveTextScale(scale float64)
}

// Options configures size limits for drag-resize
type Options struct {
	MinWidth  float64
	MinHeight float64
	// ViewportFraction caps drag-resize at this share of the viewport
	ViewportFraction float64
}

// DefaultOptions returns the standard 100x100 floor and 0.99 ceiling
func DefaultOptions() Options {
	return Options{
		MinWidth:         DefaultMinWidth,
		MinHeight:        DefaultMinHeight,
		ViewportFraction: DefaultViewportFraction,
	}
}

func (o Options) normalized() Options {
	if o.MinWidth <= 0 {
		o.MinWidth = DefaultMinWidth
	}
	if o.MinHeight <= 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.ViewportFraction <= 0 || o.ViewportFraction > 1 || math.IsNaN(o.ViewportFraction) {
		o.ViewportFraction = DefaultViewportFraction
	}
	return o
}

// Phase is the state of the resize interaction
type Phase int

const (
	Idle Phase = iota
	Dragging
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// dragSession is the transient record of an active resize
type dragSession struct {
	startX, startY                float64
	originalWidth, originalHeight float64
}

// State owns the panel geometry and the resize state machine
type State struct {
	opts      Options
	store     GeometryStore
	log       zerolog.Logger
	geometry  model.Geometry
	viewport  model.Size
	textScale float64
	session   *dragSession
}

// New creates a layout state with default geometry for an empty viewport
func New(opts Options, store GeometryStore, log zerolog.Logger) *State {
	return &State{
		opts:      opts.normalized(),
		store:     store,
		log:       log.With().Str("component", "layout").Logger(),
		textScale: 1,
	}
}

// Restore adopts persisted geometry verbatim, or the fixed-fraction default
// when nothing was stored.
func (s *State) Restore(persisted *model.Geometry, viewport model.Size) model.Geometry {
	s.viewport = viewport
	if persisted != nil {
		s.geometry = *persisted
	} else {
		s.geometry = model.DefaultGeometry(viewport)
	}
	s.log.Debug().
		Bool("persisted", persisted != nil).
		Interface("geometry", s.geometry).
		Msg("Geometry restored")
	return s.geometry
}

// RestoreTextScale adopts a stored text scale without persisting it
func (s *State) RestoreTextScale(scale float64) {
	if validScale(scale) {
		s.textScale = scale
	}
}

// Geometry returns the current geometry
func (s *State) Geometry() model.Geometry {
	return s.geometry
}

// TextScale returns the current text scale factor
func (s *State) TextScale() float64 {
	return s.textScale
}

// Phase reports whether a resize is in progress
func (s *State) Phase() Phase {
	if s.session != nil {
		return Dragging
	}
	return Idle
}

// BeginDrag starts a resize session at the pointer position. Starting while
// already dragging restarts the session from the current size.
func (s *State) BeginDrag(x, y float64) {
	s.session = &dragSession{
		startX:         x,
		startY:         y,
		originalWidth:  s.geometry.Width,
		originalHeight: s.geometry.Height,
	}
}

// DragTo resizes the panel by the pointer delta since BeginDrag. The result
// is clamped to the size floor and the viewport ceiling; it is not persisted.
func (s *State) DragTo(x, y float64) {
	if s.session == nil {
		return
	}

	width := s.session.originalWidth + (x - s.session.startX)
	height := s.session.originalHeight + (y - s.session.startY)

	width = clampSize(width, s.opts.MinWidth, s.viewport.Width*s.opts.ViewportFraction)
	height = clampSize(height, s.opts.MinHeight, s.viewport.Height*s.opts.ViewportFraction)

	s.geometry.Width = width
	s.geometry.Height = height
}

// EndDrag finishes the session and persists the final geometry
func (s *State) EndDrag() {
	if s.session == nil {
		return
	}
	s.session = nil
	s.log.Debug().Interface("geometry", s.geometry).Msg("Resize finished")
	if s.store != nil {
		s.store.SaveBounds(s.geometry)
	}
}

// OnViewportChange keeps the panel inside a resized viewport: shrink to fit,
// pull the right/bottom edges back on screen, then floor left/top at zero.
func (s *State) OnViewportChange(width, height float64) {
	s.viewport = model.Size{Width: width, Height: height}
	s.geometry = Clamp(s.geometry, s.viewport)
}

// Clamp constrains g to lie within viewport
func Clamp(g model.Geometry, viewport model.Size) model.Geometry {
	if g.Fits(viewport) {
		return g
	}

	if g.Width > viewport.Width {
		g.Width = viewport.Width
	}
	if g.Height > viewport.Height {
		g.Height = viewport.Height
	}

	if g.Right() > viewport.Width {
		g.Left = viewport.Width - g.Width
	}
	if g.Bottom() > viewport.Height {
		g.Top = viewport.Height - g.Height
	}

	if g.Left < 0 {
		g.Left = 0
	}
	if g.Top < 0 {
		g.Top = 0
	}
	return g
}

// SetTextScale sets and persists the text scale. Non-positive or
// non-finite factors are ignored.
func (s *State) SetTextScale(scale float64) {
	if !validScale(scale) {
		s.log.Debug().Float64("scale", scale).Msg("Ignoring invalid text scale")
		return
	}
	s.textScale = scale
	if s.store != nil {
		s.store.SaveTextScale(scale)
	}
}

// clampSize applies the ceiling then the floor, so the floor wins when the
// viewport is smaller than the minimum size.
func clampSize(v, floor, ceiling float64) float64 {
	return math.Max(math.Min(v, ceiling), floor)
}

func validScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0) && !math.IsNaN(scale)
}
