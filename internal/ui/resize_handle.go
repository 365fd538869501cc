package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// ResizeHandle is the corner grip that resizes the panel
type ResizeHandle struct {
	widget.BaseWidget
	tracker *DragTracker
}

var (
	_ fyne.Draggable    = (*ResizeHandle)(nil)
	_ desktop.Cursorable = (*ResizeHandle)(nil)
)

// NewResizeHandle creates a handle reporting gestures to the callbacks
func NewResizeHandle(onBegin, onMove func(fyne.Position), onEnd func()) *ResizeHandle {
	h := &ResizeHandle{tracker: NewDragTracker(onBegin, onMove, onEnd)}
	h.ExtendBaseWidget(h)
	return h
}

// CreateRenderer draws the grip
func (h *ResizeHandle) CreateRenderer() fyne.WidgetRenderer {
	grip := canvas.NewRectangle(color.NRGBA{R: 200, G: 200, B: 200, A: 120})
	grip.SetMinSize(fyne.NewSquareSize(ResizeHandleSize))
	return widget.NewSimpleRenderer(grip)
}

// Dragged handles drag events
func (h *ResizeHandle) Dragged(event *fyne.DragEvent) {
	h.tracker.Dragged(event)
}

// DragEnd handles the end of a drag
func (h *ResizeHandle) DragEnd() {
	h.tracker.DragEnd()
}

// Cursor shows a crosshair over the grip
func (h *ResizeHandle) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}
