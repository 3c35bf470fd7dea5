// Package util - filesystem helpers for feeding the effects engine.
package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glitchlab-io/go-effects/images"
)

// ImageFile represents an image file loaded from disk.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Image holds the raw encoded bytes, ready for the engine.
	Image images.Image
}

// LoadImageDir reads every supported image file from a directory, sorted by
// file name so batch runs are reproducible.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: One entry per supported file, in name order.
// - error: Error if the directory or any matched file cannot be read.
func LoadImageDir(dir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp":
			path := filepath.Join(dir, entry.Name())
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return nil, readErr
			}
			files = append(files, ImageFile{
				Path:  path,
				Image: images.Image{Data: data},
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}
