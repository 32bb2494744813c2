// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"sticker-slicer/internal/atlas"
	"sticker-slicer/internal/project"
	"sticker-slicer/internal/region"
	"sticker-slicer/internal/segment"
)

// State holds the application state including the loaded atlas, extraction
// parameters, and the current region collection.
type State struct {
	mu sync.RWMutex

	// Project
	Project     *project.File
	ProjectPath string
	Modified    bool

	// Atlas
	Atlas  *atlas.Atlas
	Raster *atlas.Raster

	// Extraction
	Params     segment.Params
	LastResult *segment.Result
	Regions    *region.Collection

	// View
	SortMode   region.SortMode
	ShowLabels bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventAtlasLoaded
	EventParamsChanged
	EventRegionsChanged
	EventSelectionChanged
	EventSortChanged
	EventViewChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		Params:     segment.DefaultParams(),
		Regions:    region.NewCollection(),
		SortMode:   region.SortDiscovery,
		ShowLabels: true,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadAtlas loads an atlas image and clears any previous extraction.
func (s *State) LoadAtlas(path string) error {
	a, err := atlas.Load(path)
	if err != nil {
		return err
	}
	raster := a.Raster()

	s.mu.Lock()
	s.Atlas = a
	s.Raster = raster
	s.LastResult = nil
	s.mu.Unlock()
	s.Regions.Reset(nil)

	s.SetModified(true)
	s.Emit(EventAtlasLoaded, a)
	s.Emit(EventRegionsChanged, nil)
	return nil
}

// Rescan runs extraction on the loaded atlas with the current parameters
// and replaces the region collection with the results.
func (s *State) Rescan() error {
	s.mu.RLock()
	raster := s.Raster
	params := s.Params
	s.mu.RUnlock()

	if raster == nil {
		return fmt.Errorf("no atlas loaded")
	}

	result, err := segment.Segment(raster, params)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.LastResult = result
	s.mu.Unlock()
	s.Regions.Reset(result.Regions)

	s.SetModified(true)
	s.Emit(EventRegionsChanged, result)
	return nil
}

// SetParams validates and stores new extraction parameters. The next
// Rescan picks them up.
func (s *State) SetParams(p segment.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.Params != p
	s.Params = p
	s.mu.Unlock()

	if changed {
		s.SetModified(true)
		s.Emit(EventParamsChanged, p)
	}
	return nil
}

// SetSortMode changes the presentation order of the region list.
func (s *State) SetSortMode(mode region.SortMode) {
	s.mu.Lock()
	changed := s.SortMode != mode
	s.SortMode = mode
	s.mu.Unlock()

	if changed {
		s.Emit(EventSortChanged, mode)
	}
}

// SetShowLabels toggles region index labels on the canvas overlay.
func (s *State) SetShowLabels(show bool) {
	s.mu.Lock()
	changed := s.ShowLabels != show
	s.ShowLabels = show
	s.mu.Unlock()

	if changed {
		s.Emit(EventViewChanged, show)
	}
}

// OrderedRegions returns the regions in the current sort mode.
func (s *State) OrderedRegions() []region.Region {
	s.mu.RLock()
	mode := s.SortMode
	s.mu.RUnlock()
	return s.Regions.Ordered(mode)
}

// ToggleRegion flips the selection of one region.
func (s *State) ToggleRegion(id int) {
	if s.Regions.Toggle(id) {
		s.SetModified(true)
		s.Emit(EventSelectionChanged, id)
	}
}

// SelectAll marks every region as selected.
func (s *State) SelectAll() {
	s.Regions.SelectAll()
	s.SetModified(true)
	s.Emit(EventSelectionChanged, nil)
}

// DeselectAll clears the selection.
func (s *State) DeselectAll() {
	s.Regions.DeselectAll()
	s.SetModified(true)
	s.Emit(EventSelectionChanged, nil)
}

// DeleteSelected removes the selected regions and reports how many went.
func (s *State) DeleteSelected() int {
	n := s.Regions.DeleteSelected()
	if n > 0 {
		s.SetModified(true)
		s.Emit(EventRegionsChanged, nil)
	}
	return n
}

// LoadProject loads a project from the specified path.
func (s *State) LoadProject(path string) error {
	pf, err := project.Load(path)
	if err != nil {
		return err
	}

	if atlasPath := pf.GetAtlasPath(path); atlasPath != "" {
		if err := s.LoadAtlas(atlasPath); err != nil {
			return err
		}
	}

	mode := region.SortMode(pf.Settings.SortMode)
	if mode < region.SortDiscovery || mode > region.SortSmallest {
		mode = region.SortDiscovery
	}

	s.mu.Lock()
	s.Project = pf
	s.ProjectPath = path
	s.Params = pf.Params
	s.SortMode = mode
	s.ShowLabels = pf.Settings.ShowLabels
	s.Modified = false
	s.mu.Unlock()
	s.Regions.Restore(pf.Regions)

	s.Emit(EventProjectLoaded, path)
	s.Emit(EventRegionsChanged, nil)
	return nil
}

// SaveProject saves the project to the specified path.
func (s *State) SaveProject(path string) error {
	s.mu.Lock()
	if s.Project == nil {
		name := strings.TrimSuffix(filepath.Base(path), project.Ext)
		s.Project = project.New(name)
	}
	pf := s.Project
	pf.Params = s.Params
	pf.Settings.SortMode = int(s.SortMode)
	pf.Settings.ShowLabels = s.ShowLabels
	if s.Atlas != nil {
		pf.SetAtlas(path, s.Atlas.Path)
	}
	s.mu.Unlock()
	pf.Regions = s.Regions.All()

	if err := pf.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}
