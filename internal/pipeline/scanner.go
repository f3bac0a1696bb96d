package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered scene file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the render key (relpath without extension).
	Key string
}

// sceneExtension is the only file type the scanner picks up.
const sceneExtension = ".json"

// ScanScenes walks the input directory and returns all scene files in
// lexical order. Hidden directories and files are skipped.
func ScanScenes(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		hidden := strings.HasPrefix(info.Name(), ".") && info.Name() != "."
		if info.IsDir() {
			if hidden && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || strings.ToLower(filepath.Ext(path)) != sceneExtension {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: relPath,
			Key:     strings.TrimSuffix(relPath, filepath.Ext(relPath)),
		})
		return nil
	})

	return sources, err
}
