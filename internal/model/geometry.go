package model

// Size is a width/height pair in pixels
type Size struct {
	Width  float64
	Height float64
}

// Geometry is the panel's position and size relative to the viewport.
// The JSON shape is the persisted bounds record.
type Geometry struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the panel's right edge
func (g Geometry) Right() float64 {
	return g.Left + g.Width
}

// Bottom returns the y coordinate of the panel's bottom edge
func (g Geometry) Bottom() float64 {
	return g.Top + g.Height
}

// Fits reports whether the geometry lies fully inside a viewport
func (g Geometry) Fits(viewport Size) bool {
	return g.Left >= 0 && g.Top >= 0 && g.Right() <= viewport.Width && g.Bottom() <= viewport.Height
}

// DefaultGeometry places the panel at 5%/5% of the viewport with half its
// width and 40% of its height.
func DefaultGeometry(viewport Size) Geometry {
	return Geometry{
		Left:   viewport.Width * 0.05,
		Top:    viewport.Height * 0.05,
		Width:  viewport.Width * 0.50,
		Height: viewport.Height * 0.40,
	}
}
