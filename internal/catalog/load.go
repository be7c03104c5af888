package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Catalog errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrInvalidRecord     = errors.New("invalid texture record")
)

// File is the on-disk form of a texture catalog.
type File struct {
	Textures []TextureInfo `yaml:"textures" toml:"textures"`
	Cladding []TextureInfo `yaml:"cladding" toml:"cladding"`
}

// Catalog bundles the facade and cladding stores loaded from one file.
type Catalog struct {
	Path     string
	Facades  *Store
	Cladding *CladdingStore
}

// New indexes the records of a catalog file.
func New(f *File) (*Catalog, error) {
	c := &Catalog{
		Facades:  NewStore(),
		Cladding: NewCladdingStore(),
	}
	for i := range f.Textures {
		ti := &f.Textures[i]
		if err := validate(ti); err != nil {
			return nil, fmt.Errorf("texture %d: %w", i, err)
		}
		c.Facades.Add(ti)
	}
	for i := range f.Cladding {
		ti := &f.Cladding[i]
		if err := validate(ti); err != nil {
			return nil, fmt.Errorf("cladding %d: %w", i, err)
		}
		c.Cladding.Add(ti)
	}
	return c, nil
}

// Load reads a catalog, choosing the decoder by file extension: YAML for
// .yaml, .yml and .json, TOML for .toml.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	c, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// LoadFiles reads several catalogs, e.g. a facade catalog and a separate
// cladding catalog, into one. Empty paths are skipped.
func LoadFiles(paths ...string) (*Catalog, error) {
	var merged File
	var first string
	for _, path := range paths {
		if path == "" {
			continue
		}
		if first == "" {
			first = path
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f, err := Parse(data, filepath.Ext(path))
		if err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
		}
		merged.Textures = append(merged.Textures, f.Textures...)
		merged.Cladding = append(merged.Cladding, f.Cladding...)
	}
	c, err := New(&merged)
	if err != nil {
		return nil, err
	}
	c.Path = first
	return c, nil
}

// Parse decodes catalog data in the format named by ext.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return &f, nil
}

func validate(ti *TextureInfo) error {
	if ti.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	if ti.Material == "" {
		return fmt.Errorf("%w: %s has no material", ErrInvalidRecord, ti.Name)
	}
	return nil
}
