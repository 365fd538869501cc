package ui

import (
	"image/color"
	"math"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/sisuhud/sisu-hud/internal/config"
	"github.com/sisuhud/sisu-hud/internal/hud"
	"github.com/sisuhud/sisu-hud/internal/model"
)

// Controller receives the user's gestures. *hud.Panel implements it.
type Controller interface {
	Refresh()
	Hide(id model.FieldID)
	Reorder(ids []model.FieldID)
	ResetAll()
	BeginResize(x, y float64)
	ResizeTo(x, y float64)
	EndResize()
	ViewportChanged(width, height float64)
	SetTextScale(scale float64)
	SetAppearance(a config.Appearance)
	Appearance() config.Appearance
	TextScale() float64
}

// StyleColors are the colours applied to a row
type StyleColors struct {
	Value color.Color
}

// Options configures the overlay
type Options struct {
	IconDir string
}

// Overlay is the Fyne implementation of hud.Surface
type Overlay struct {
	app    fyne.App
	window fyne.Window
	theme  *HUDTheme
	icons  *IconLoader
	log    zerolog.Logger

	controller Controller

	frame       *fyne.Container
	rowsBox     *fyne.Container
	scaleSlider *widget.Slider
	settings    *SettingsDialog

	rows      map[model.FieldID]*StatRow
	order     []model.FieldID
	geometry  model.Geometry
	textScale float64
	viewport  fyne.Size
}

var _ hud.Surface = (*Overlay)(nil)

// NewOverlay creates the surface. Call Attach before showing the window.
func NewOverlay(app fyne.App, window fyne.Window, opts Options, log zerolog.Logger) *Overlay {
	log = log.With().Str("component", "overlay").Logger()
	hudTheme := NewHUDTheme(config.DefaultAppearance())
	app.Settings().SetTheme(hudTheme)

	return &Overlay{
		app:       app,
		window:    window,
		theme:     hudTheme,
		icons:     NewIconLoader(opts.IconDir, log),
		log:       log,
		rows:      make(map[model.FieldID]*StatRow),
		textScale: 1,
	}
}

// Attach wires the overlay to its controller, builds the window content
// and pushes the initial state.
func (o *Overlay) Attach(c Controller) {
	o.controller = c
	o.setupUI()
	c.Refresh()
}

func (o *Overlay) setupUI() {
	c := o.controller

	o.rowsBox = container.NewVBox()

	settingsBtn := widget.NewButton(IconSettings, o.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	resetBtn := widget.NewButton(IconReset, c.ResetAll)
	resetBtn.Importance = widget.LowImportance
	closeBtn := widget.NewButton(IconClose, o.window.Close)
	closeBtn.Importance = widget.LowImportance

	o.scaleSlider = widget.NewSlider(ScaleMin, ScaleMax)
	o.scaleSlider.Step = ScaleStep
	o.scaleSlider.Value = c.TextScale()
	o.scaleSlider.OnChanged = c.SetTextScale

	toolbar := container.NewBorder(nil, nil, container.NewHBox(settingsBtn, resetBtn), closeBtn, o.scaleSlider)

	handle := NewResizeHandle(
		func(pos fyne.Position) { c.BeginResize(float64(pos.X), float64(pos.Y)) },
		func(pos fyne.Position) { c.ResizeTo(float64(pos.X), float64(pos.Y)) },
		c.EndResize,
	)
	footer := container.NewHBox(layout.NewSpacer(), handle)

	background := canvas.NewRectangle(o.theme.Color(theme.ColorNameBackground, theme.VariantDark))

	o.frame = container.NewStack(background, container.NewBorder(toolbar, footer, nil, nil, o.rowsBox))
	o.settings = NewSettingsDialog(c, o.window)

	o.window.SetContent(container.New(&floatingLayout{overlay: o}, o.frame))
}

// Render shows rows in order, rebuilding the row list only when the set or
// order of visible fields changed
func (o *Overlay) Render(rows []hud.Row) {
	if o.rowsBox == nil {
		return
	}

	ids := make([]model.FieldID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	if !slices.Equal(ids, o.order) {
		objects := make([]fyne.CanvasObject, 0, len(rows))
		for _, r := range rows {
			row, ok := o.rows[r.ID]
			if !ok {
				row = NewStatRow(r.ID, o.icons.Load(r.IconRef), o.controller.Hide, o.onRowDragged)
				o.styleRow(row)
				o.rows[r.ID] = row
			}
			objects = append(objects, row)
		}
		o.rowsBox.Objects = objects
		o.rowsBox.Refresh()
		o.order = ids
	}

	for _, r := range rows {
		o.rows[r.ID].SetValue(r.Display)
	}
}

// Place moves and sizes the panel
func (o *Overlay) Place(g model.Geometry, textScale float64) {
	o.geometry = g
	if textScale != o.textScale {
		o.textScale = textScale
		for _, row := range o.rows {
			o.styleRow(row)
		}
	}
	o.applyGeometry()
}

// Restyle applies new icon and value colours
func (o *Overlay) Restyle(a config.Appearance) {
	o.theme.SetAppearance(a)
	o.app.Settings().SetTheme(o.theme)
	for _, row := range o.rows {
		o.styleRow(row)
	}
}

// Rows returns the currently displayed rows in order
func (o *Overlay) Rows() []*StatRow {
	rows := make([]*StatRow, 0, len(o.order))
	for _, id := range o.order {
		rows = append(rows, o.rows[id])
	}
	return rows
}

func (o *Overlay) applyGeometry() {
	if o.frame == nil {
		return
	}
	o.frame.Move(fyne.NewPos(float32(o.geometry.Left), float32(o.geometry.Top)))
	o.frame.Resize(fyne.NewSize(float32(o.geometry.Width), float32(o.geometry.Height)))
}

func (o *Overlay) styleRow(row *StatRow) {
	row.Style(BaseFontSize*float32(o.textScale), StyleColors{Value: o.theme.ValueColor()})
}

// onViewport reports a window size change to the controller
func (o *Overlay) onViewport(size fyne.Size) {
	if size == o.viewport || o.controller == nil {
		return
	}
	o.viewport = size
	o.controller.ViewportChanged(float64(size.Width), float64(size.Height))
}

// onRowDragged turns a vertical drag of dy pixels into a new field order
func (o *Overlay) onRowDragged(id model.FieldID, dy float32) {
	from := slices.Index(o.order, id)
	row := o.rows[id]
	if from < 0 || row == nil {
		return
	}

	height := row.Size().Height + theme.Padding()
	if height <= 0 {
		return
	}
	to := from + int(math.Round(float64(dy/height)))

	order := MoveID(o.order, from, to)
	if slices.Equal(order, o.order) {
		return
	}
	o.log.Debug().Str("field", id.String()).Int("from", from).Int("to", to).Msg("Field moved")
	o.controller.Reorder(order)
}

func (o *Overlay) onShowSettings() {
	if o.settings != nil {
		o.settings.Show()
	}
}

// MoveID returns a copy of order with the element at from moved to to.
// to is clamped to the valid range.
func MoveID(order []model.FieldID, from, to int) []model.FieldID {
	out := slices.Clone(order)
	if from < 0 || from >= len(out) {
		return out
	}
	to = max(0, min(to, len(out)-1))
	if from == to {
		return out
	}

	id := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, id)
}

// floatingLayout positions the panel at its geometry and reports every
// window resize so the geometry can be clamped
type floatingLayout struct {
	overlay *Overlay
}

func (l *floatingLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	l.overlay.onViewport(size)
	l.overlay.applyGeometry()
}

func (l *floatingLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSquareSize(ResizeHandleSize)
}
