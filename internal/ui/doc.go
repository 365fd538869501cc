package ui

// Package ui contains the Fyne-based overlay surface. It draws the panel the
// hud package describes and translates pointer, tap and slider events into
// calls on a Controller. All widget updates happen on the Fyne UI goroutine.
