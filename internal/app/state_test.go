package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"sticker-slicer/internal/region"
	"sticker-slicer/internal/segment"
	"sticker-slicer/pkg/geometry"
)

// writeAtlasFile renders a 10x10 atlas with two 2x2 opaque blocks at (1,1)
// and (6,6) into dir and returns its path.
func writeAtlasFile(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for _, origin := range []image.Point{{X: 1, Y: 1}, {X: 6, Y: 6}} {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				img.SetNRGBA(origin.X+dx, origin.Y+dy, color.NRGBA{R: 200, G: 80, B: 80, A: 255})
			}
		}
	}

	path := filepath.Join(dir, "atlas.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create atlas: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode atlas: %v", err)
	}
	return path
}

func TestStateRescan(t *testing.T) {
	s := NewState()
	if err := s.Rescan(); err == nil {
		t.Fatal("rescan without an atlas should fail")
	}

	var regionEvents int
	s.On(EventRegionsChanged, func(interface{}) { regionEvents++ })

	if err := s.LoadAtlas(writeAtlasFile(t, t.TempDir())); err != nil {
		t.Fatalf("load atlas: %v", err)
	}
	if s.Raster.Width() != 10 || s.Raster.Height() != 10 {
		t.Fatalf("raster %dx%d, want 10x10", s.Raster.Width(), s.Raster.Height())
	}

	if err := s.Rescan(); err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if s.LastResult == nil || s.LastResult.Status != segment.StatusOK {
		t.Fatalf("unexpected result: %+v", s.LastResult)
	}

	regions := s.Regions.All()
	want := []geometry.RectInt{
		{X: 1, Y: 1, Width: 2, Height: 2},
		{X: 6, Y: 6, Width: 2, Height: 2},
	}
	if len(regions) != len(want) {
		t.Fatalf("got %d regions, want %d", len(regions), len(want))
	}
	for i, r := range regions {
		if r.Bounds != want[i] {
			t.Errorf("region %d bounds = %+v, want %+v", i, r.Bounds, want[i])
		}
		if !r.Selected {
			t.Errorf("region %d should start selected", i)
		}
	}
	if regionEvents < 2 {
		t.Errorf("expected region events for load and rescan, got %d", regionEvents)
	}
}

func TestStateLoadAtlasMissing(t *testing.T) {
	s := NewState()
	if err := s.LoadAtlas(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing atlas")
	}
}

func TestStateSetParams(t *testing.T) {
	s := NewState()

	var events int
	s.On(EventParamsChanged, func(interface{}) { events++ })

	bad := segment.Params{AlphaThreshold: 0}
	if err := s.SetParams(bad); err == nil {
		t.Fatal("expected validation error")
	}
	if s.Params != segment.DefaultParams() {
		t.Error("params must not change on validation failure")
	}
	if events != 0 {
		t.Error("no event should fire on validation failure")
	}

	p := segment.DefaultParams().WithThreshold(128)
	if err := s.SetParams(p); err != nil {
		t.Fatalf("set params: %v", err)
	}
	if s.Params != p {
		t.Errorf("params = %+v, want %+v", s.Params, p)
	}
	if events != 1 {
		t.Errorf("got %d events, want 1", events)
	}

	// Re-applying identical params is a no-op.
	if err := s.SetParams(p); err != nil {
		t.Fatalf("set params again: %v", err)
	}
	if events != 1 {
		t.Errorf("identical params fired an event, got %d", events)
	}
}

func TestStateSelection(t *testing.T) {
	s := NewState()
	s.Regions.Reset([]geometry.RectInt{
		{X: 0, Y: 0, Width: 2, Height: 2},
		{X: 4, Y: 4, Width: 2, Height: 2},
	})

	var selectionEvents, regionEvents int
	s.On(EventSelectionChanged, func(interface{}) { selectionEvents++ })
	s.On(EventRegionsChanged, func(interface{}) { regionEvents++ })

	s.ToggleRegion(1)
	if selectionEvents != 1 {
		t.Fatalf("toggle fired %d events, want 1", selectionEvents)
	}
	s.ToggleRegion(99)
	if selectionEvents != 1 {
		t.Fatal("unknown id must not fire an event")
	}

	s.DeselectAll()
	if got := s.Regions.SelectedCount(); got != 0 {
		t.Fatalf("selected count = %d, want 0", got)
	}
	if n := s.DeleteSelected(); n != 0 {
		t.Fatalf("deleted %d with empty selection", n)
	}
	if regionEvents != 0 {
		t.Fatal("no-op delete must not fire a region event")
	}

	s.SelectAll()
	if n := s.DeleteSelected(); n != 2 {
		t.Fatalf("deleted %d, want 2", n)
	}
	if regionEvents != 1 {
		t.Errorf("delete fired %d region events, want 1", regionEvents)
	}
	if s.Regions.Len() != 0 {
		t.Errorf("collection still holds %d regions", s.Regions.Len())
	}
}

func TestStateSortMode(t *testing.T) {
	s := NewState()
	s.Regions.Reset([]geometry.RectInt{
		{X: 0, Y: 0, Width: 1, Height: 1},
		{X: 2, Y: 0, Width: 3, Height: 3},
	})

	var events int
	s.On(EventSortChanged, func(interface{}) { events++ })

	s.SetSortMode(region.SortLargest)
	ordered := s.OrderedRegions()
	if ordered[0].Bounds.Width != 3 {
		t.Errorf("largest-first put %+v first", ordered[0].Bounds)
	}
	if events != 1 {
		t.Errorf("got %d sort events, want 1", events)
	}

	s.SetSortMode(region.SortLargest)
	if events != 1 {
		t.Error("re-applying the same mode fired an event")
	}
}

func TestStateProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	atlasPath := writeAtlasFile(t, dir)
	projPath := filepath.Join(dir, "demo.slicerproj")

	s := NewState()
	if err := s.LoadAtlas(atlasPath); err != nil {
		t.Fatalf("load atlas: %v", err)
	}
	if err := s.SetParams(segment.DefaultParams().WithPadding(1)); err != nil {
		t.Fatalf("set params: %v", err)
	}
	if err := s.Rescan(); err != nil {
		t.Fatalf("rescan: %v", err)
	}
	s.ToggleRegion(2)
	s.SetSortMode(region.SortLargest)

	if err := s.SaveProject(projPath); err != nil {
		t.Fatalf("save project: %v", err)
	}
	if s.Modified {
		t.Error("state still modified after save")
	}

	restored := NewState()
	if err := restored.LoadProject(projPath); err != nil {
		t.Fatalf("load project: %v", err)
	}
	if restored.Modified {
		t.Error("freshly loaded project marked modified")
	}
	if restored.Params != s.Params {
		t.Errorf("params = %+v, want %+v", restored.Params, s.Params)
	}
	if restored.SortMode != region.SortLargest {
		t.Errorf("sort mode = %v, want largest", restored.SortMode)
	}
	if restored.Raster == nil || restored.Raster.Width() != 10 {
		t.Fatal("atlas not restored from project")
	}

	got := restored.Regions.All()
	want := s.Regions.All()
	if len(got) != len(want) {
		t.Fatalf("got %d regions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("region %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[1].Selected {
		t.Error("deselected region came back selected")
	}
}
