package i18n

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestDefaultIsEnglish(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })
	SetLanguage("en")
	if got := T("menu.file"); got != "File" {
		t.Fatalf("T(menu.file) = %q, want File", got)
	}
}

func TestSetLanguage(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })

	for _, tc := range []struct {
		code     string
		want     string
		menuFile string
	}{
		{"de", "de", "Datei"},
		{"de-AT", "de", "Datei"},
		{"en-US", "en", "File"},
		{"fr", "en", "File"},
		{"garbage", "en", "File"},
	} {
		t.Run(tc.code, func(t *testing.T) {
			if got := SetLanguage(tc.code); got != tc.want {
				t.Errorf("SetLanguage(%q) = %q, want %q", tc.code, got, tc.want)
			}
			if got := Active(); got != tc.want {
				t.Errorf("Active() = %q, want %q", got, tc.want)
			}
			if got := T("menu.file"); got != tc.menuFile {
				t.Errorf("T(menu.file) = %q, want %q", got, tc.menuFile)
			}
		})
	}
}

func TestUnknownKeyFallsThrough(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })
	SetLanguage("de")
	if got := T("no.such.key"); got != "no.such.key" {
		t.Fatalf("unknown key = %q, want the key itself", got)
	}
}

// Every catalog must carry exactly the English key set, with matching
// format verbs, so a language switch can never drop a string.
func TestCatalogCoverage(t *testing.T) {
	en := catalogs[language.English]
	if len(en) == 0 {
		t.Fatal("english catalog is empty")
	}
	for tag, cat := range catalogs {
		if tag == language.English {
			continue
		}
		for key, ref := range en {
			val, ok := cat[key]
			if !ok {
				t.Errorf("%v: missing key %q", tag, key)
				continue
			}
			if strings.Count(val, "%d") != strings.Count(ref, "%d") {
				t.Errorf("%v: %q format verbs differ: %q vs %q", tag, key, val, ref)
			}
		}
		for key := range cat {
			if _, ok := en[key]; !ok {
				t.Errorf("%v: orphan key %q", tag, key)
			}
		}
	}
}
