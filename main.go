// Package main provides the entry point for the Sticker Slicer application.
package main

import (
	"flag"
	"log"

	"sticker-slicer/internal/app"
	"sticker-slicer/internal/i18n"
	"sticker-slicer/internal/version"
	"sticker-slicer/ui/mainwindow"
	"sticker-slicer/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "com.stickerslicer.app"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Sticker Slicer %s", version.String())

	atlasPath := flag.String("atlas", "", "atlas image to load on startup")
	projectPath := flag.String("project", "", "project file to load on startup")
	flag.Parse()

	// Language and theme must be in place before any widget is built
	appPrefs := prefs.Load()
	i18n.SetLanguage(appPrefs.String(prefs.KeyLanguage))

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(app.ThemeFromPreference(appPrefs.String(prefs.KeyTheme)))

	appState := app.NewState()
	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Command line arguments override the restored session
	if flag.NArg() > 0 && *projectPath == "" {
		*projectPath = flag.Arg(0)
	}
	switch {
	case *projectPath != "":
		if err := appState.LoadProject(*projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", *projectPath, err)
		}
	case *atlasPath != "":
		if err := appState.LoadAtlas(*atlasPath); err != nil {
			log.Printf("Failed to load atlas %s: %v", *atlasPath, err)
		} else if err := appState.Rescan(); err != nil {
			log.Printf("Initial scan failed: %v", err)
		}
	}

	win.ShowAndRun()
}
