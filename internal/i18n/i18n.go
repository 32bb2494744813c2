// Package i18n holds the user-facing strings of the application.
//
// Lookups go through T with dotted keys. The active language is negotiated
// from a BCP 47 tag against the supported set, so "de-AT" lands on German
// and anything unknown lands on English. Not safe for concurrent mutation;
// pick the language once at startup.
package i18n

import (
	"golang.org/x/text/language"
)

// supported languages, first entry is the fallback.
var supported = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(supported)

var active = language.English

// Lang describes a selectable language for the preferences dialog.
type Lang struct {
	Code string
	Name string
}

// Languages lists the selectable languages with their native names.
func Languages() []Lang {
	return []Lang{
		{Code: "en", Name: "English"},
		{Code: "de", Name: "Deutsch"},
	}
}

// SetLanguage activates the closest supported language for the given
// BCP 47 tag and returns the code actually chosen.
func SetLanguage(code string) string {
	_, idx := language.MatchStrings(matcher, code)
	active = supported[idx]
	return active.String()
}

// Active returns the code of the active language.
func Active() string {
	return active.String()
}

// T returns the translation of key in the active language, falling back to
// English and finally to the key itself.
func T(key string) string {
	if s, ok := catalogs[active][key]; ok {
		return s
	}
	if s, ok := catalogs[language.English][key]; ok {
		return s
	}
	return key
}

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		"app.title": "Sticker Slicer",

		"common.ok":     "OK",
		"common.cancel": "Cancel",
		"common.yes":    "Yes",
		"common.no":     "No",

		"menu.file":            "File",
		"menu.file.open_atlas": "Open Atlas...",
		"menu.file.open_proj":  "Open Project...",
		"menu.file.save_proj":  "Save Project",
		"menu.file.save_as":    "Save Project As...",
		"menu.file.export_dir": "Export Stickers...",
		"menu.file.export_zip": "Export Archive...",
		"menu.file.quit":       "Quit",

		"menu.edit":              "Edit",
		"menu.edit.select_all":   "Select All",
		"menu.edit.deselect_all": "Deselect All",
		"menu.edit.delete":       "Delete Selected",

		"menu.view":            "View",
		"menu.view.sort":       "Sort Stickers",
		"menu.view.labels":     "Show Labels",
		"menu.view.zoom_in":    "Zoom In",
		"menu.view.zoom_out":   "Zoom Out",
		"menu.view.fit":        "Fit to Window",
		"menu.view.zoom_reset": "Reset Zoom",

		"menu.tools":         "Tools",
		"menu.tools.rescan":  "Rescan",
		"menu.tools.suggest": "Suggest Threshold",
		"menu.tools.prefs":   "Preferences...",

		"menu.help":       "Help",
		"menu.help.about": "About",

		"sort.discovery": "Discovery Order",
		"sort.largest":   "Largest First",
		"sort.smallest":  "Smallest First",

		"panel.settings.title":     "Extraction",
		"panel.settings.threshold": "Alpha Threshold",
		"panel.settings.min_dim":   "Min Dimension",
		"panel.settings.padding":   "Padding",
		"panel.settings.rescan":    "Rescan",
		"panel.settings.suggest":   "Suggest",

		"panel.regions.title": "Stickers",
		"panel.regions.empty": "No stickers extracted",

		"status.ready":       "Ready",
		"status.counts":      "%d stickers, %d selected",
		"status.no_atlas":    "No atlas loaded",
		"status.empty_atlas": "Atlas is empty",
		"status.nothing":     "No stickers found",
		"status.proj_saved":  "Project saved",

		"dialog.export.done":    "%d stickers exported",
		"dialog.export.none":    "No stickers selected",
		"dialog.prefs.title":    "Preferences",
		"dialog.prefs.theme":    "Theme",
		"dialog.prefs.dark":     "Dark",
		"dialog.prefs.light":    "Light",
		"dialog.prefs.system":   "System",
		"dialog.prefs.language": "Language",
		"dialog.prefs.restart":  "Language changes apply after restart",
		"dialog.unsaved":        "The project has unsaved changes. Discard them?",
		"dialog.atlas_changed":  "The atlas file changed on disk. Reload it?",
	},

	language.German: {
		"app.title": "Sticker Slicer",

		"common.ok":     "OK",
		"common.cancel": "Abbrechen",
		"common.yes":    "Ja",
		"common.no":     "Nein",

		"menu.file":            "Datei",
		"menu.file.open_atlas": "Atlas öffnen...",
		"menu.file.open_proj":  "Projekt öffnen...",
		"menu.file.save_proj":  "Projekt speichern",
		"menu.file.save_as":    "Projekt speichern unter...",
		"menu.file.export_dir": "Sticker exportieren...",
		"menu.file.export_zip": "Archiv exportieren...",
		"menu.file.quit":       "Beenden",

		"menu.edit":              "Bearbeiten",
		"menu.edit.select_all":   "Alle auswählen",
		"menu.edit.deselect_all": "Auswahl aufheben",
		"menu.edit.delete":       "Ausgewählte löschen",

		"menu.view":            "Ansicht",
		"menu.view.sort":       "Sticker sortieren",
		"menu.view.labels":     "Beschriftungen anzeigen",
		"menu.view.zoom_in":    "Vergrößern",
		"menu.view.zoom_out":   "Verkleinern",
		"menu.view.fit":        "An Fenster anpassen",
		"menu.view.zoom_reset": "Zoom zurücksetzen",

		"menu.tools":         "Werkzeuge",
		"menu.tools.rescan":  "Neu scannen",
		"menu.tools.suggest": "Schwellenwert vorschlagen",
		"menu.tools.prefs":   "Einstellungen...",

		"menu.help":       "Hilfe",
		"menu.help.about": "Über",

		"sort.discovery": "Reihenfolge der Erkennung",
		"sort.largest":   "Größte zuerst",
		"sort.smallest":  "Kleinste zuerst",

		"panel.settings.title":     "Extraktion",
		"panel.settings.threshold": "Alpha-Schwellenwert",
		"panel.settings.min_dim":   "Mindestgröße",
		"panel.settings.padding":   "Rand",
		"panel.settings.rescan":    "Neu scannen",
		"panel.settings.suggest":   "Vorschlagen",

		"panel.regions.title": "Sticker",
		"panel.regions.empty": "Keine Sticker extrahiert",

		"status.ready":       "Bereit",
		"status.counts":      "%d Sticker, %d ausgewählt",
		"status.no_atlas":    "Kein Atlas geladen",
		"status.empty_atlas": "Atlas ist leer",
		"status.nothing":     "Keine Sticker gefunden",
		"status.proj_saved":  "Projekt gespeichert",

		"dialog.export.done":    "%d Sticker exportiert",
		"dialog.export.none":    "Keine Sticker ausgewählt",
		"dialog.prefs.title":    "Einstellungen",
		"dialog.prefs.theme":    "Thema",
		"dialog.prefs.dark":     "Dunkel",
		"dialog.prefs.light":    "Hell",
		"dialog.prefs.system":   "System",
		"dialog.prefs.language": "Sprache",
		"dialog.prefs.restart":  "Sprachänderungen gelten nach einem Neustart",
		"dialog.unsaved":        "Das Projekt hat ungespeicherte Änderungen. Verwerfen?",
		"dialog.atlas_changed":  "Die Atlas-Datei wurde auf der Festplatte geändert. Neu laden?",
	},
}
