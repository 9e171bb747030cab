package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileNames are the config files Discover looks for, in order.
var FileNames = []string{".histgen.toml", ".histgen.yaml", ".histgen.yml"}

// FileSystem is the subset of file operations the loader needs.
// Tests substitute an in-memory implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Loader reads configuration files.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader backed by the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Load reads path over the defaults. A missing file is not an error.
// The format is chosen by extension.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &ParseError{Path: path, Message: "read failed", Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(path, data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(path, data, &cfg)
	default:
		return cfg, &ParseError{Path: path, Message: "unknown extension", Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Discover loads the first of FileNames present in dir, or the defaults.
// It returns the path that was loaded, empty if none.
func (l *Loader) Discover(dir string) (Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := l.fs.Stat(path); err != nil {
			continue
		}
		cfg, err := l.Load(path)
		return cfg, path, err
	}
	return Default(), "", nil
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		pe := &ParseError{Path: path, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return pe
	}
	return nil
}

func decodeYAML(path string, data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}
