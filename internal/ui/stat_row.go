package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/sisuhud/sisu-hud/internal/model"
)

// StatRow shows one field: its icon and current value. A secondary tap
// hides the field; a vertical drag moves it within the panel.
type StatRow struct {
	widget.BaseWidget

	ID    model.FieldID
	icon  *canvas.Image
	value *canvas.Text

	onHide    func(model.FieldID)
	onReorder func(model.FieldID, float32)
	tracker   *DragTracker
}

var (
	_ fyne.SecondaryTappable = (*StatRow)(nil)
	_ fyne.Draggable         = (*StatRow)(nil)
)

// NewStatRow creates a row. icon may be nil.
func NewStatRow(id model.FieldID, icon fyne.Resource, onHide func(model.FieldID), onReorder func(model.FieldID, float32)) *StatRow {
	r := &StatRow{
		ID:        id,
		value:     canvas.NewText("--", color.White),
		onHide:    onHide,
		onReorder: onReorder,
	}
	if icon != nil {
		r.icon = canvas.NewImageFromResource(icon)
		r.icon.FillMode = canvas.ImageFillContain
	}
	r.tracker = NewDragTracker(nil, nil, r.finishDrag)
	r.ExtendBaseWidget(r)
	return r
}

// CreateRenderer lays out icon and value side by side
func (r *StatRow) CreateRenderer() fyne.WidgetRenderer {
	if r.icon == nil {
		return widget.NewSimpleRenderer(container.NewHBox(r.value))
	}
	return widget.NewSimpleRenderer(container.NewHBox(r.icon, r.value))
}

// SetValue updates the displayed text
func (r *StatRow) SetValue(text string) {
	if r.value.Text == text {
		return
	}
	r.value.Text = text
	r.value.Refresh()
}

// Value returns the displayed text
func (r *StatRow) Value() string {
	return r.value.Text
}

// Style applies text size and colour
func (r *StatRow) Style(textSize float32, style StyleColors) {
	r.value.TextSize = textSize
	r.value.Color = style.Value
	r.value.Refresh()
	if r.icon != nil {
		r.icon.SetMinSize(fyne.NewSquareSize(textSize * IconRatio))
		r.icon.Refresh()
	}
}

// TappedSecondary hides the field
func (r *StatRow) TappedSecondary(*fyne.PointEvent) {
	if r.onHide != nil {
		r.onHide(r.ID)
	}
}

// Dragged handles drag events
func (r *StatRow) Dragged(event *fyne.DragEvent) {
	r.tracker.Dragged(event)
}

// DragEnd handles the end of a drag
func (r *StatRow) DragEnd() {
	r.tracker.DragEnd()
}

func (r *StatRow) finishDrag() {
	if r.onReorder != nil {
		r.onReorder(r.ID, r.tracker.Offset().DY)
	}
}
