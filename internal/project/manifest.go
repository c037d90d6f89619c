package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a package root.
const ManifestName = "wesl.toml"

var (
	// ErrNoManifest is returned by FindManifest when no wesl.toml exists in
	// the start directory or above it.
	ErrNoManifest = errors.New("no " + ManifestName + " found")
	// ErrPackageNameMissing is returned by Load for a manifest without
	// [package].name.
	ErrPackageNameMissing = errors.New("missing [package].name")
	ErrInvalidValue       = errors.New("invalid manifest value")
)

// Manifest is a decoded wesl.toml.
type Manifest struct {
	Path   string // absolute path of the manifest file
	Dir    string // directory containing it
	Config Config
}

type Config struct {
	Package      PackageConfig     `toml:"package"`
	Dependencies map[string]string `toml:"dependencies"`
	Analyzer     AnalyzerConfig    `toml:"analyzer"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Root    string `toml:"root"`
	Edition string `toml:"edition"`
}

type AnalyzerConfig struct {
	ShaderDefs     []string          `toml:"shader_defs"`
	TrailingCommas string            `toml:"trailing_commas"`
	Indent         string            `toml:"indent"`
	CustomImports  map[string]string `toml:"custom_imports"`
}

// FindManifest walks up from start to locate wesl.toml.
func FindManifest(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNoManifest
}

// Load decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	var cfg Config
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", abs, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: %w", abs, ErrPackageNameMissing)
	}
	switch cfg.Package.Edition {
	case "", "wgsl", "wesl":
	default:
		return nil, fmt.Errorf("%s: [package].edition %q: %w", abs, cfg.Package.Edition, ErrInvalidValue)
	}
	switch cfg.Analyzer.TrailingCommas {
	case "", "ignore", "remove", "insert":
	default:
		return nil, fmt.Errorf("%s: [analyzer].trailing_commas %q: %w", abs, cfg.Analyzer.TrailingCommas, ErrInvalidValue)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys %s: %w", abs, strings.Join(keys, ", "), ErrInvalidValue)
	}
	return &Manifest{Path: abs, Dir: filepath.Dir(abs), Config: cfg}, nil
}

// Name is the package name.
func (m *Manifest) Name() string { return strings.TrimSpace(m.Config.Package.Name) }

// RootDir is the directory module paths are taken relative to.
func (m *Manifest) RootDir() string {
	return filepath.Join(m.Dir, filepath.FromSlash(m.Config.Package.Root))
}

// DependencyNames lists the [dependencies] keys in sorted order.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Config.Dependencies))
	for name := range m.Config.Dependencies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DependencyDir resolves the directory of dependency name.
func (m *Manifest) DependencyDir(name string) (string, bool) {
	rel, ok := m.Config.Dependencies[name]
	if !ok {
		return "", false
	}
	return m.resolve(rel), true
}

// CustomImportFiles maps every legacy `#import` key to an absolute file path.
func (m *Manifest) CustomImportFiles() map[string]string {
	out := make(map[string]string, len(m.Config.Analyzer.CustomImports))
	for key, rel := range m.Config.Analyzer.CustomImports {
		out[key] = m.resolve(rel)
	}
	return out
}

func (m *Manifest) resolve(rel string) string {
	p := filepath.FromSlash(rel)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Dir, p)
}
