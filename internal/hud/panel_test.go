package hud

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisuhud/sisu-hud/internal/config"
	"github.com/sisuhud/sisu-hud/internal/layout"
	"github.com/sisuhud/sisu-hud/internal/model"
)

type mapStore map[string]string

func (m mapStore) String(key string) string     { return m[key] }
func (m mapStore) SetString(key, value string) { m[key] = value }

type fakeSurface struct {
	rows       [][]Row
	placements []model.Geometry
	scales     []float64
	styles     []config.Appearance
}

func (f *fakeSurface) Render(rows []Row) { f.rows = append(f.rows, rows) }

func (f *fakeSurface) Place(g model.Geometry, textScale float64) {
	f.placements = append(f.placements, g)
	f.scales = append(f.scales, textScale)
}

func (f *fakeSurface) Restyle(a config.Appearance) { f.styles = append(f.styles, a) }

func (f *fakeSurface) lastRows() []Row {
	if len(f.rows) == 0 {
		return nil
	}
	return f.rows[len(f.rows)-1]
}

func rowIDs(rows []Row) []model.FieldID {
	ids := make([]model.FieldID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func newPanel(t *testing.T, store mapStore) (*Panel, *fakeSurface) {
	t.Helper()
	surface := &fakeSurface{}
	settings := config.NewSettings(store, zerolog.Nop())
	p := NewPanel(settings, surface, Options{
		Layout:   layout.DefaultOptions(),
		Viewport: model.Size{Width: 1000, Height: 800},
	}, zerolog.Nop())
	return p, surface
}

func TestNewPanel_LoadsPersistedState(t *testing.T) {
	store := mapStore{
		config.KeyFieldState: `[{"id":"power","isVisible":true},{"id":"cadence","isVisible":false}]`,
		config.KeyBounds:     `{"left":5,"top":6,"width":300,"height":200}`,
		config.KeyTextScale:  "1.5",
		config.KeyAppearance: `{"iconColor":"#000000","valueColor":"#FFFFFF"}`,
	}

	p, surface := newPanel(t, store)
	assert.Empty(t, surface.rows, "NewPanel does not render")

	p.Refresh()

	rows := surface.lastRows()
	require.NotEmpty(t, rows)
	assert.Equal(t, model.FieldPower, rows[0].ID)
	assert.NotContains(t, rowIDs(rows), model.FieldCadence)
	assert.Equal(t, model.FieldDraft, rows[1].ID, "absent ids append after persisted ones")

	assert.Equal(t, model.Geometry{Left: 5, Top: 6, Width: 300, Height: 200}, surface.placements[0])
	assert.Equal(t, 1.5, surface.scales[0])
	assert.Equal(t, config.Appearance{IconColor: "#000000", ValueColor: "#FFFFFF"}, surface.styles[0])
}

func TestNewPanel_MalformedStoreFallsBack(t *testing.T) {
	store := mapStore{
		config.KeyFieldState: `oops`,
		config.KeyBounds:     `{`,
		config.KeyTextScale:  "big",
		config.KeyAppearance: `nope`,
	}

	p, _ := newPanel(t, store)

	assert.Equal(t, model.DefaultFields(), p.Fields())
	assert.Equal(t, model.DefaultGeometry(model.Size{Width: 1000, Height: 800}), p.Geometry())
	assert.Equal(t, 1.0, p.TextScale())
	assert.Equal(t, config.DefaultAppearance(), p.Appearance())
}

func TestHandleSnapshot(t *testing.T) {
	p, surface := newPanel(t, mapStore{})

	p.HandleSnapshot(model.Snapshot{
		AthleteID: 99,
		Athlete:   model.Athlete{Weight: model.Of(76.6)},
		State:     model.RideState{Power: model.Of(230)},
	})

	assert.Equal(t, int64(99), p.subjectID)
	rows := surface.lastRows()
	require.Len(t, rows, 12)

	byID := make(map[model.FieldID]string)
	for _, r := range rows {
		byID[r.ID] = r.Display
	}
	assert.Equal(t, "230", byID[model.FieldPower])
	assert.Equal(t, "3.00", byID[model.FieldWKG])
	assert.Equal(t, "N/A", byID[model.FieldCadence])
	assert.Equal(t, "--", byID[model.FieldHR])
}

func TestRows_BeforeAnySnapshot(t *testing.T) {
	p, _ := newPanel(t, mapStore{})
	for _, r := range p.Rows() {
		assert.Equal(t, "--", r.Display, "field %s", r.ID)
	}
}

func TestHide_PersistsAndRenders(t *testing.T) {
	store := mapStore{}
	p, surface := newPanel(t, store)

	p.Hide(model.FieldHR)

	assert.NotContains(t, rowIDs(surface.lastRows()), model.FieldHR)
	assert.Contains(t, store[config.KeyFieldState], `{"id":"hr","isVisible":false}`)
}

func TestHide_UnknownFieldIsIgnored(t *testing.T) {
	store := mapStore{}
	p, surface := newPanel(t, store)
	renders := len(surface.rows)

	p.Hide("altitude")

	assert.Len(t, surface.rows, renders)
	assert.NotContains(t, store, config.KeyFieldState)
}

func TestReorderAndReset(t *testing.T) {
	store := mapStore{}
	p, surface := newPanel(t, store)

	p.Hide(model.FieldCadence)
	p.Reorder([]model.FieldID{model.FieldGrade, model.FieldCadence})

	rows := surface.lastRows()
	assert.Equal(t, model.FieldGrade, rows[0].ID)
	assert.Equal(t, model.FieldDraft, rows[1].ID)

	p.ResetAll()
	rows = surface.lastRows()
	assert.Equal(t, []model.FieldID{model.FieldGrade, model.FieldCadence, model.FieldDraft}, rowIDs(rows)[:3])

	reloaded, _ := newPanel(t, store)
	assert.Equal(t, p.Fields(), reloaded.Fields(), "customization survives a restart")
}

func TestResizeGesture(t *testing.T) {
	store := mapStore{}
	p, surface := newPanel(t, store)
	start := p.Geometry()

	p.ResizeTo(10, 10)
	assert.Empty(t, surface.placements, "moves without a gesture are ignored")

	p.BeginResize(100, 100)
	assert.Equal(t, layout.Dragging, p.layout.Phase())
	p.ResizeTo(150, 120)
	assert.Equal(t, start.Width+50, p.Geometry().Width)
	assert.Equal(t, start.Height+20, p.Geometry().Height)
	assert.Empty(t, store[config.KeyBounds])

	p.EndResize()
	assert.Equal(t, layout.Idle, p.layout.Phase())
	assert.NotEmpty(t, store[config.KeyBounds])

	reloaded, _ := newPanel(t, store)
	assert.Equal(t, p.Geometry(), reloaded.Geometry())
}

func TestViewportChanged(t *testing.T) {
	p, surface := newPanel(t, mapStore{})

	p.ViewportChanged(1000, 800)
	assert.Empty(t, surface.placements, "unchanged geometry is not re-placed")

	p.ViewportChanged(300, 200)
	g := p.Geometry()
	assert.True(t, g.Fits(model.Size{Width: 300, Height: 200}))
	assert.Len(t, surface.placements, 1)
}

func TestSetTextScale(t *testing.T) {
	store := mapStore{}
	p, surface := newPanel(t, store)

	p.SetTextScale(2)

	assert.Equal(t, "2", store[config.KeyTextScale])
	assert.Equal(t, 2.0, surface.scales[len(surface.scales)-1])
}

func TestSetAppearance(t *testing.T) {
	store := mapStore{}
	p, surface := newPanel(t, store)

	p.SetAppearance(config.Appearance{IconColor: "#123456", ValueColor: "bogus"})

	expected := config.Appearance{IconColor: "#123456", ValueColor: config.DefaultValueColor}
	assert.Equal(t, expected, p.Appearance())
	assert.Equal(t, expected, surface.styles[len(surface.styles)-1])
	assert.JSONEq(t, `{"iconColor":"#123456","valueColor":"#008000"}`, store[config.KeyAppearance])
}
