package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New(profileName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		BasePath:    "./",
		Renders:     make(map[string]Render),
	}
}

// ComputeStats recalculates aggregate statistics from renders. Failed is
// kept as is since failures leave no render entry.
func (m *Manifest) ComputeStats() {
	s := Stats{Failed: m.Stats.Failed}
	s.TotalRenders = len(m.Renders)
	for _, r := range m.Renders {
		s.TotalLayers += r.Layers
		s.TotalBytes += r.Size
		s.TotalPixels += int64(r.Width) * int64(r.Height)
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file. Map keys come out
// sorted, so identical builds produce identical manifests apart from
// generated_at.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest written by WriteJSON.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
