// Package dialogs provides application dialogs.
package dialogs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"sticker-slicer/internal/app"
	"sticker-slicer/internal/i18n"
	"sticker-slicer/ui/prefs"
)

// PrefsDialog edits application preferences.
type PrefsDialog struct {
	prefs   *prefs.Prefs
	fyneApp fyne.App
	window  fyne.Window

	themeSelect *widget.Select
	langSelect  *widget.Select
}

// NewPrefsDialog creates a new preferences dialog.
func NewPrefsDialog(p *prefs.Prefs, fyneApp fyne.App, window fyne.Window) *PrefsDialog {
	return &PrefsDialog{
		prefs:   p,
		fyneApp: fyneApp,
		window:  window,
	}
}

// Show displays the dialog.
func (d *PrefsDialog) Show() {
	themeValues := []string{"dark", "light", "system"}
	themeNames := []string{
		i18n.T("dialog.prefs.dark"),
		i18n.T("dialog.prefs.light"),
		i18n.T("dialog.prefs.system"),
	}

	d.themeSelect = widget.NewSelect(themeNames, nil)
	currentTheme := d.prefs.StringWithFallback(prefs.KeyTheme, "system")
	for i, v := range themeValues {
		if v == currentTheme {
			d.themeSelect.SetSelected(themeNames[i])
		}
	}

	langs := i18n.Languages()
	langNames := make([]string, len(langs))
	currentLang := d.prefs.StringWithFallback(prefs.KeyLanguage, i18n.Active())
	for i, l := range langs {
		langNames[i] = l.Name
	}
	d.langSelect = widget.NewSelect(langNames, nil)
	for _, l := range langs {
		if l.Code == currentLang {
			d.langSelect.SetSelected(l.Name)
		}
	}

	content := widget.NewForm(
		widget.NewFormItem(i18n.T("dialog.prefs.theme"), d.themeSelect),
		widget.NewFormItem(i18n.T("dialog.prefs.language"), d.langSelect),
	)

	dlg := dialog.NewCustomConfirm(
		i18n.T("dialog.prefs.title"),
		i18n.T("common.ok"),
		i18n.T("common.cancel"),
		content,
		func(save bool) {
			if !save {
				return
			}

			themePref := currentTheme
			for i, name := range themeNames {
				if name == d.themeSelect.Selected {
					themePref = themeValues[i]
				}
			}

			langPref := currentLang
			for _, l := range langs {
				if l.Name == d.langSelect.Selected {
					langPref = l.Code
				}
			}

			d.prefs.SetString(prefs.KeyTheme, themePref)
			d.prefs.SetString(prefs.KeyLanguage, langPref)
			if err := d.prefs.Save(); err != nil {
				dialog.ShowError(err, d.window)
				return
			}

			// Theme applies immediately, language needs a restart
			d.fyneApp.Settings().SetTheme(app.ThemeFromPreference(themePref))
			if langPref != currentLang {
				dialog.ShowInformation(
					i18n.T("dialog.prefs.title"),
					i18n.T("dialog.prefs.restart"),
					d.window,
				)
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(360, 220))
	dlg.Show()
}
