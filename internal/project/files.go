package project

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// IsShaderFile reports whether path has a .wgsl or .wesl extension.
func IsShaderFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wgsl", ".wesl":
		return true
	}
	return false
}

// ShaderFiles returns every shader file below dir, sorted. Hidden
// directories are skipped.
func ShaderFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsShaderFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}
