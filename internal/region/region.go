// Package region maintains the live collection of extracted sticker regions:
// stable identity, selection state, and read-only ordered views.
package region

import (
	"sort"
	"sync"

	"sticker-slicer/pkg/geometry"
)

// Region is one extracted sticker rectangle. Geometry is fixed at creation;
// only the Selected flag changes afterwards.
type Region struct {
	ID       int              `json:"id"`
	Bounds   geometry.RectInt `json:"bounds"`
	Selected bool             `json:"selected"`
}

// SortMode selects the ordering of a view over the collection.
type SortMode int

const (
	// SortDiscovery is creation order, the scanner's seed order.
	SortDiscovery SortMode = iota
	// SortLargest orders by area, big stickers first.
	SortLargest
	// SortSmallest orders by area, small stickers first.
	SortSmallest
)

func (m SortMode) String() string {
	switch m {
	case SortDiscovery:
		return "Discovery"
	case SortLargest:
		return "Largest First"
	case SortSmallest:
		return "Smallest First"
	default:
		return "Unknown"
	}
}

// Collection holds regions in creation order behind a single lock. Views are
// copies; reordering a view never reorders or reindexes the collection.
// The zero Collection is ready to use.
type Collection struct {
	mu      sync.RWMutex
	regions []Region
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Reset replaces the contents with freshly extracted rectangles. Every new
// region starts selected; IDs count up from 1 in discovery order.
func (c *Collection) Reset(bounds []geometry.RectInt) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.regions = make([]Region, len(bounds))
	for i, b := range bounds {
		c.regions[i] = Region{ID: i + 1, Bounds: b, Selected: true}
	}
}

// Restore replaces the contents with previously saved regions, keeping their
// IDs and selection flags as-is.
func (c *Collection) Restore(regions []Region) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.regions = make([]Region, len(regions))
	copy(c.regions, regions)
}

// Len returns the number of regions.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.regions)
}

// SelectedCount returns how many regions are currently selected. The count
// is derived on demand, never stored.
func (c *Collection) SelectedCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, r := range c.regions {
		if r.Selected {
			n++
		}
	}
	return n
}

// Get returns the region with the given ID.
func (c *Collection) Get(id int) (Region, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// Toggle flips the selection of the region with the given ID. Returns false
// if no such region exists; no other region is affected either way.
func (c *Collection) Toggle(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.regions {
		if c.regions[i].ID == id {
			c.regions[i].Selected = !c.regions[i].Selected
			return true
		}
	}
	return false
}

// SelectAll marks every region selected.
func (c *Collection) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.regions {
		c.regions[i].Selected = true
	}
}

// DeselectAll clears every selection. The regions themselves stay.
func (c *Collection) DeselectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.regions {
		c.regions[i].Selected = false
	}
}

// DeleteSelected removes every selected region and returns how many were
// removed. Survivors keep their relative order and their IDs.
func (c *Collection) DeleteSelected() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.regions[:0]
	removed := 0
	for _, r := range c.regions {
		if r.Selected {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	c.regions = kept
	return removed
}

// All returns a copy of the regions in creation order.
func (c *Collection) All() []Region {
	return c.Ordered(SortDiscovery)
}

// Ordered returns a copy of the regions in the given order. Area sorts are
// stable: regions of equal area keep their creation order.
func (c *Collection) Ordered(mode SortMode) []Region {
	c.mu.RLock()
	view := make([]Region, len(c.regions))
	copy(view, c.regions)
	c.mu.RUnlock()

	switch mode {
	case SortLargest:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Bounds.Area() > view[j].Bounds.Area()
		})
	case SortSmallest:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Bounds.Area() < view[j].Bounds.Area()
		})
	}
	return view
}
