// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"sticker-slicer/internal/region"
	"sticker-slicer/internal/segment"
)

// Ext is the project file extension.
const Ext = ".slicerproj"

// File represents a sticker slicer project file (.slicerproj).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Atlas image path (relative to project file)
	AtlasPath string `json:"atlas,omitempty"`

	// Extraction parameters of the last scan
	Params segment.Params `json:"params"`

	// Extracted regions with selection state
	Regions []region.Region `json:"regions,omitempty"`

	// User settings
	Settings ProjectSettings `json:"settings,omitempty"`
}

// ProjectSettings holds user preferences for the project.
type ProjectSettings struct {
	SortMode   int  `json:"sort_mode,omitempty"`
	ShowLabels bool `json:"show_labels"`
}

// New creates a new project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Params:   segment.DefaultParams(),
		Settings: ProjectSettings{
			ShowLabels: true,
		},
	}
}

// Load loads a project from a .slicerproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetAtlas sets the atlas image path (relative to project).
func (p *File) SetAtlas(projectPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), imagePath)
	if err != nil {
		p.AtlasPath = imagePath
	} else {
		p.AtlasPath = rel
	}
	p.Modified = time.Now()
}

// GetAtlasPath returns the absolute path to the atlas image.
func (p *File) GetAtlasPath(projectPath string) string {
	if p.AtlasPath == "" {
		return ""
	}
	if filepath.IsAbs(p.AtlasPath) {
		return p.AtlasPath
	}
	return filepath.Join(filepath.Dir(projectPath), p.AtlasPath)
}
