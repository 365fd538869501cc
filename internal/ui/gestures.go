package ui

import (
	"fyne.io/fyne/v2"
)

// DragTracker turns Fyne's stream of drag events into an explicit
// begin/move/end sequence in absolute canvas coordinates
type DragTracker struct {
	onBegin func(pos fyne.Position)
	onMove  func(pos fyne.Position)
	onEnd   func()

	active bool
	start  fyne.Position
	last   fyne.Position
}

// NewDragTracker creates a tracker. Any callback may be nil.
func NewDragTracker(onBegin, onMove func(fyne.Position), onEnd func()) *DragTracker {
	return &DragTracker{
		onBegin: onBegin,
		onMove:  onMove,
		onEnd:   onEnd,
	}
}

// Dragged handles a drag event. The first event of a gesture reports the
// pointer position before its delta as the gesture start.
func (dt *DragTracker) Dragged(event *fyne.DragEvent) {
	pos := event.AbsolutePosition
	if !dt.active {
		dt.active = true
		dt.start = fyne.NewPos(pos.X-event.Dragged.DX, pos.Y-event.Dragged.DY)
		if dt.onBegin != nil {
			dt.onBegin(dt.start)
		}
	}
	dt.last = pos
	if dt.onMove != nil {
		dt.onMove(pos)
	}
}

// DragEnd finishes the current gesture
func (dt *DragTracker) DragEnd() {
	if !dt.active {
		return
	}
	dt.active = false
	if dt.onEnd != nil {
		dt.onEnd()
	}
}

// Offset returns how far the pointer moved since the gesture started
func (dt *DragTracker) Offset() fyne.Delta {
	return fyne.Delta{DX: dt.last.X - dt.start.X, DY: dt.last.Y - dt.start.Y}
}
