package dialogs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"sticker-slicer/internal/i18n"
	"sticker-slicer/internal/version"
)

// ShowAbout displays the about dialog.
func ShowAbout(window fyne.Window) {
	content := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("app.title"), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle(version.String(), fyne.TextAlignCenter, fyne.TextStyle{}),
	)
	dialog.ShowCustom(i18n.T("menu.help.about"), i18n.T("common.ok"), content, window)
}
