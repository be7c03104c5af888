// Package session manages the per-export working state: a unique work
// directory for intermediate files and the texture bake parameters
// collected while the facades are rendered.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/facadegen/internal/material"
)

// ManifestFile is the name of the material sidecar written next to the mesh.
const ManifestFile = "materials.yaml"

// BakeDir is the directory, next to the manifest, holding one parameter
// file per baked material.
const BakeDir = "bakes"

// Session errors.
var (
	ErrClosed = errors.New("session is closed")
)

// now is replaced in tests.
var now = time.Now

// Session is one export run.
type Session struct {
	ID        string
	WorkDir   string
	OutputDir string
	Started   time.Time

	log *zap.Logger

	mu      sync.Mutex
	closed  bool
	facades map[string]material.FacadeBake
	doors   map[string]material.DoorBake
}

// New starts a session. The work directory is created under root (the
// system temp directory if empty) and named after the current time in
// seconds; on collision the number is incremented until a free name is
// found, so concurrent exports never share it.
func New(root, outputDir string, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating work root: %w", err)
	}

	started := now()
	workDir, err := createWorkDir(root, started.Unix())
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		WorkDir:   workDir,
		OutputDir: outputDir,
		Started:   started,
		log:       log,
		facades:   make(map[string]material.FacadeBake),
		doors:     make(map[string]material.DoorBake),
	}
	s.log = log.With(zap.String("session", s.ID))
	s.log.Debug("session started", zap.String("work_dir", workDir))
	return s, nil
}

func createWorkDir(root string, seed int64) (string, error) {
	for n := seed; ; n++ {
		dir := filepath.Join(root, strconv.FormatInt(n, 10))
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("creating work dir: %w", err)
		}
	}
}

// RecordFacade stores the bake of a facade material. Each material is
// recorded once.
func (s *Session) RecordFacade(b material.FacadeBake) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.facades[b.Material]; !ok {
		s.facades[b.Material] = b
	}
}

// RecordDoor stores the bake of a door material. Each material is
// recorded once.
func (s *Session) RecordDoor(b material.DoorBake) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doors[b.Material]; !ok {
		s.doors[b.Material] = b
	}
}

// Manifest is the material sidecar of an export.
type Manifest struct {
	Session     string                `yaml:"session"`
	Started     time.Time             `yaml:"started"`
	Materials   []*material.Material  `yaml:"materials"`
	FacadeBakes []material.FacadeBake `yaml:"facade_bakes,omitempty"`
	DoorBakes   []material.DoorBake   `yaml:"door_bakes,omitempty"`
}

// Manifest returns the materials and recorded bakes, sorted by material.
func (s *Session) Manifest(materials []*material.Material) Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Manifest{Session: s.ID, Started: s.Started, Materials: materials}
	for _, b := range s.facades {
		m.FacadeBakes = append(m.FacadeBakes, b)
	}
	for _, b := range s.doors {
		m.DoorBakes = append(m.DoorBakes, b)
	}
	sort.Slice(m.FacadeBakes, func(i, j int) bool { return m.FacadeBakes[i].Material < m.FacadeBakes[j].Material })
	sort.Slice(m.DoorBakes, func(i, j int) bool { return m.DoorBakes[i].Material < m.DoorBakes[j].Material })
	return m
}

// WriteManifest writes the material sidecar and the bake parameter files.
// Files are staged in the work directory and moved to the output directory
// once all of them are written, so a failed export leaves no partial
// sidecar behind. It returns the manifest path.
func (s *Session) WriteManifest(materials []*material.Material) (string, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", ErrClosed
	}

	m := s.Manifest(materials)
	staged := make([]string, 0, 1+len(m.FacadeBakes)+len(m.DoorBakes))
	stage := func(name string, v any) error {
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		path := filepath.Join(s.WorkDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		staged = append(staged, name)
		return nil
	}

	if err := stage(ManifestFile, m); err != nil {
		return "", err
	}
	for _, b := range m.FacadeBakes {
		if err := stage(bakeFile(b.Material), b); err != nil {
			return "", err
		}
	}
	for _, b := range m.DoorBakes {
		if err := stage(bakeFile(b.Material), b); err != nil {
			return "", err
		}
	}

	for _, name := range staged {
		if err := move(filepath.Join(s.WorkDir, name), filepath.Join(s.OutputDir, name)); err != nil {
			return "", fmt.Errorf("publishing %s: %w", name, err)
		}
	}
	s.log.Debug("manifest written",
		zap.String("output_dir", s.OutputDir),
		zap.Int("bakes", len(staged)-1))
	return filepath.Join(s.OutputDir, ManifestFile), nil
}

// bakeFile returns the path of a bake parameter file relative to the
// output directory.
func bakeFile(materialID string) string {
	return filepath.Join(BakeDir, filepath.Base(materialID)+".yaml")
}

// move renames src to dst, copying when they are on different file
// systems.
func move(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

// Close removes the work directory. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := os.RemoveAll(s.WorkDir); err != nil {
		return fmt.Errorf("removing work dir: %w", err)
	}
	s.log.Debug("session closed", zap.Duration("elapsed", time.Since(s.Started)))
	return nil
}
