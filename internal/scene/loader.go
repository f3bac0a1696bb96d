package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a scene file. Relative layer paths resolve against the
// file's directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve scene dir: %w", err)
	}
	sc, err := Parse(data, abs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scene and resolves its file paths against baseDir.
func Parse(data []byte, baseDir string) (*Scene, error) {
	var sc Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	sc.BaseDir = baseDir
	for i := range sc.Layers {
		sc.Layers[i].File = sc.resolve(sc.Layers[i].File)
	}
	return &sc, nil
}

func (sc *Scene) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || sc.BaseDir == "" {
		return p
	}
	return filepath.Join(sc.BaseDir, p)
}
