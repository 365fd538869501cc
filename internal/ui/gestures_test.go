package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"github.com/sisuhud/sisu-hud/internal/model"
)

func dragEvent(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestDragTracker_Sequence(t *testing.T) {
	var begins, moves []fyne.Position
	ends := 0
	dt := NewDragTracker(
		func(p fyne.Position) { begins = append(begins, p) },
		func(p fyne.Position) { moves = append(moves, p) },
		func() { ends++ },
	)

	dt.Dragged(dragEvent(110, 205, 10, 5))
	dt.Dragged(dragEvent(130, 240, 20, 35))
	assert.True(t, dt.active)
	assert.Equal(t, fyne.NewDelta(30, 40), dt.Offset())

	dt.DragEnd()
	assert.False(t, dt.active)

	assert.Equal(t, []fyne.Position{fyne.NewPos(100, 200)}, begins)
	assert.Equal(t, []fyne.Position{fyne.NewPos(110, 205), fyne.NewPos(130, 240)}, moves)
	assert.Equal(t, 1, ends)
}

func TestDragTracker_EndWithoutDrag(t *testing.T) {
	ends := 0
	dt := NewDragTracker(nil, nil, func() { ends++ })

	dt.DragEnd()
	assert.Equal(t, 0, ends)

	// nil callbacks are allowed
	dt.Dragged(dragEvent(5, 5, 1, 1))
	dt.DragEnd()
	assert.Equal(t, 1, ends)
}

func TestDragTracker_NewGestureResetsStart(t *testing.T) {
	dt := NewDragTracker(nil, nil, nil)

	dt.Dragged(dragEvent(50, 50, 0, 0))
	dt.Dragged(dragEvent(50, 150, 0, 100))
	dt.DragEnd()

	dt.Dragged(dragEvent(10, 10, 0, 0))
	assert.Equal(t, fyne.NewDelta(0, 0), dt.Offset())
}

func TestStatRow_GesturesReportToOwner(t *testing.T) {
	var hidden []string
	var offsets []float32
	row := NewStatRow(model.FieldPower, nil,
		func(id model.FieldID) { hidden = append(hidden, string(id)) },
		func(id model.FieldID, dy float32) { offsets = append(offsets, dy) },
	)

	row.TappedSecondary(&fyne.PointEvent{})
	row.Dragged(dragEvent(0, 60, 0, 10))
	row.Dragged(dragEvent(0, 120, 0, 60))
	row.DragEnd()

	assert.Equal(t, []string{"power"}, hidden)
	assert.Equal(t, []float32{70}, offsets)
	assert.Nil(t, row.icon)
}
