// Package hud ties the field catalog, the layout state and the formatter
// together behind plain synchronous methods. A host adapter translates UI
// events and telemetry deliveries into these calls; the panel pushes the
// resulting state to a Surface.
package hud

import (
	"github.com/rs/zerolog"

	"github.com/sisuhud/sisu-hud/internal/catalog"
	"github.com/sisuhud/sisu-hud/internal/config"
	"github.com/sisuhud/sisu-hud/internal/format"
	"github.com/sisuhud/sisu-hud/internal/layout"
	"github.com/sisuhud/sisu-hud/internal/model"
)

// Row is one visible field as handed to the surface
type Row struct {
	ID      model.FieldID
	Label   string
	IconRef string
	Display string
}

// Surface draws the panel. It never calls back into the panel while one of
// these methods is running.
type Surface interface {
	Render(rows []Row)
	Place(g model.Geometry, textScale float64)
	Restyle(a config.Appearance)
}

// Options configures a panel
type Options struct {
	Layout   layout.Options
	Viewport model.Size
	// Fields overrides the default catalog, mainly for tests
	Fields []model.FieldDescriptor
}

// Panel is the overlay's in-memory state
type Panel struct {
	settings   *config.Settings
	surface    Surface
	catalog    *catalog.Catalog
	layout     *layout.State
	appearance config.Appearance
	readout    format.Readout
	subjectID  int64
	log        zerolog.Logger
}

// NewPanel loads persisted customization and builds the panel state. It does
// not touch the surface until Refresh is called.
func NewPanel(settings *config.Settings, surface Surface, opts Options, log zerolog.Logger) *Panel {
	log = log.With().Str("component", "panel").Logger()

	fields := opts.Fields
	if fields == nil {
		fields = model.DefaultFields()
	}

	ls := layout.New(opts.Layout, settings, log)
	ls.Restore(settings.Bounds(), opts.Viewport)
	ls.RestoreTextScale(settings.TextScale())

	p := &Panel{
		settings:   settings,
		surface:    surface,
		catalog:    catalog.New(fields, settings.FieldState(), settings, log),
		layout:     ls,
		appearance: settings.Appearance(),
		log:        log,
	}

	p.log.Info().
		Interface("geometry", ls.Geometry()).
		Float64("text_scale", ls.TextScale()).
		Msg("Panel loaded")
	return p
}

// Refresh pushes the full panel state to the surface
func (p *Panel) Refresh() {
	p.surface.Restyle(p.appearance)
	p.surface.Place(p.layout.Geometry(), p.layout.TextScale())
	p.render()
}

// HandleSnapshot formats a telemetry snapshot and updates the visible rows
func (p *Panel) HandleSnapshot(s model.Snapshot) {
	if s.AthleteID != p.subjectID {
		p.log.Info().Int64("from", p.subjectID).Int64("to", s.AthleteID).Msg("Switched athlete")
		p.subjectID = s.AthleteID
	}
	p.readout = format.Format(p.subjectID, s)
	p.render()
}

// Rows returns the visible fields in display order with their current text
func (p *Panel) Rows() []Row {
	var rows []Row
	for f := range p.catalog.VisibleOrdered() {
		rows = append(rows, Row{
			ID:      f.ID,
			Label:   f.Label,
			IconRef: f.IconRef,
			Display: p.readout.Value(f.ID),
		})
	}
	return rows
}

// Fields returns every field, hidden ones included, in display order
func (p *Panel) Fields() []model.FieldDescriptor {
	return p.catalog.All()
}

// Hide removes a field from the panel
func (p *Panel) Hide(id model.FieldID) {
	f, ok := p.catalog.Lookup(id)
	if !ok {
		p.log.Debug().Str("field", id.String()).Msg("Ignoring hide of unknown field")
		return
	}
	p.catalog.Hide(id)
	p.log.Debug().Str("field", f.Label).Msg("Field hidden")
	p.render()
}

// Reorder applies the user's drag-reorder result
func (p *Panel) Reorder(ids []model.FieldID) {
	p.catalog.Reorder(ids)
	p.render()
}

// ResetAll shows every field again
func (p *Panel) ResetAll() {
	p.catalog.ResetAll()
	p.render()
}

// BeginResize starts a resize gesture at the pointer position
func (p *Panel) BeginResize(x, y float64) {
	p.layout.BeginDrag(x, y)
}

// ResizeTo follows the pointer during a resize gesture
func (p *Panel) ResizeTo(x, y float64) {
	if p.layout.Phase() != layout.Dragging {
		return
	}
	p.layout.DragTo(x, y)
	p.place()
}

// EndResize commits the resize gesture
func (p *Panel) EndResize() {
	if p.layout.Phase() != layout.Dragging {
		return
	}
	p.layout.EndDrag()
	p.place()
}

// ViewportChanged clamps the panel into a resized viewport
func (p *Panel) ViewportChanged(width, height float64) {
	before := p.layout.Geometry()
	p.layout.OnViewportChange(width, height)
	if after := p.layout.Geometry(); after != before {
		p.log.Debug().Interface("from", before).Interface("to", after).Msg("Panel clamped to viewport")
		p.place()
	}
}

// SetTextScale changes and persists the text scale
func (p *Panel) SetTextScale(scale float64) {
	p.layout.SetTextScale(scale)
	p.place()
}

// SetAppearance changes and persists the panel colours
func (p *Panel) SetAppearance(a config.Appearance) {
	p.appearance = a.Normalized()
	p.settings.SaveAppearance(p.appearance)
	p.surface.Restyle(p.appearance)
}

// Geometry returns the current panel geometry
func (p *Panel) Geometry() model.Geometry {
	return p.layout.Geometry()
}

// TextScale returns the current text scale factor
func (p *Panel) TextScale() float64 {
	return p.layout.TextScale()
}

// Appearance returns the current colours
func (p *Panel) Appearance() config.Appearance {
	return p.appearance
}

func (p *Panel) render() {
	p.surface.Render(p.Rows())
}

func (p *Panel) place() {
	p.surface.Place(p.layout.Geometry(), p.layout.TextScale())
}
