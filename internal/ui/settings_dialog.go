package ui

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/sisuhud/sisu-hud/internal/config"
)

var errInvalidColor = errors.New("expected a colour like #FF0000")

// SettingsDialog edits the icon and value colours
type SettingsDialog struct {
	controller Controller
	window     fyne.Window
	dialog     *dialog.ConfirmDialog

	iconColorEntry  *widget.Entry
	valueColorEntry *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(controller Controller, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		controller: controller,
		window:     window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.iconColorEntry = widget.NewEntry()
	sd.iconColorEntry.SetPlaceHolder(ColorPlaceholder)
	sd.iconColorEntry.Validator = validateColor

	sd.valueColorEntry = widget.NewEntry()
	sd.valueColorEntry.SetPlaceHolder(ColorPlaceholder)
	sd.valueColorEntry.Validator = validateColor

	form := container.NewVBox(
		widget.NewLabel("Icon colour:"),
		sd.iconColorEntry,
		widget.NewLabel("Value colour:"),
		sd.valueColorEntry,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	a := sd.controller.Appearance().Normalized()
	sd.iconColorEntry.SetText(a.IconColor)
	sd.valueColorEntry.SetText(a.ValueColor)
}

// appearance returns the entered colours. Blank or invalid entries fall
// back to the defaults.
func (sd *SettingsDialog) appearance() config.Appearance {
	return config.Appearance{
		IconColor:  strings.TrimSpace(sd.iconColorEntry.Text),
		ValueColor: strings.TrimSpace(sd.valueColorEntry.Text),
	}.Normalized()
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.controller.SetAppearance(sd.appearance())
}

func validateColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || config.ValidColor(s) {
		return nil
	}
	return errInvalidColor
}
