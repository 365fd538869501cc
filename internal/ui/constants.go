package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconReset    = "↺"
	IconClose    = "×"
)

// Text sizing
const (
	// BaseFontSize is the value text size at a text scale of 1
	BaseFontSize float32 = 48
	// IconRatio sizes row icons relative to the value text
	IconRatio float32 = 0.8
)

// Text scale slider range
const (
	ScaleMin  = 0.25
	ScaleMax  = 3.0
	ScaleStep = 0.05
)

// Layout sizing
const (
	ResizeHandleSize float32 = 16
	DialogWidth      float32 = 360
	DialogHeight     float32 = 220
)

// Placeholders
const (
	ColorPlaceholder = "#RRGGBB"
)
