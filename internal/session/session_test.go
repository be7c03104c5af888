package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/facadegen/internal/material"
)

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func TestNew_WorkDirFromTimestamp(t *testing.T) {
	root := t.TempDir()
	fixedClock(t, time.Unix(1700000000, 0))

	s, err := New(root, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	if want := filepath.Join(root, "1700000000"); s.WorkDir != want {
		t.Errorf("WorkDir = %s, want %s", s.WorkDir, want)
	}
	if s.ID == "" {
		t.Error("expected a session id")
	}
}

func TestNew_Collision(t *testing.T) {
	root := t.TempDir()
	fixedClock(t, time.Unix(1700000000, 0))

	first, err := New(root, "", nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer first.Close()
	second, err := New(root, "", nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer second.Close()

	if want := filepath.Join(root, "1700000001"); second.WorkDir != want {
		t.Errorf("WorkDir = %s, want %s", second.WorkDir, want)
	}
	if first.ID == second.ID {
		t.Error("sessions share an id")
	}
}

func TestClose(t *testing.T) {
	s, err := New(t.TempDir(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.WorkDir, "bake.png"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(s.WorkDir); !os.IsNotExist(err) {
		t.Errorf("work dir still exists: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if _, err := s.WriteManifest(nil); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestWriteManifest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "export")
	s, err := New(t.TempDir(), out, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	s.RecordFacade(material.FacadeBake{Material: "b.png", Scale: 2})
	s.RecordFacade(material.FacadeBake{Material: "a.png", Scale: 1})
	s.RecordFacade(material.FacadeBake{Material: "a.png", Scale: 9})
	s.RecordDoor(material.DoorBake{Material: "door.png", FaceWidthPx: material.DoorFaceWidthPx})

	materials := []*material.Material{{ID: "a.png"}, {ID: "b.png"}}
	path, err := s.WriteManifest(materials)
	if err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}
	if path != filepath.Join(out, ManifestFile) {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if m.Session != s.ID {
		t.Errorf("session = %s, want %s", m.Session, s.ID)
	}
	if len(m.Materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(m.Materials))
	}
	if len(m.FacadeBakes) != 2 {
		t.Fatalf("expected 2 facade bakes, got %d", len(m.FacadeBakes))
	}
	// first record wins, sorted by material
	if m.FacadeBakes[0].Material != "a.png" || m.FacadeBakes[0].Scale != 1 {
		t.Errorf("first facade bake = %+v", m.FacadeBakes[0])
	}
	if len(m.DoorBakes) != 1 || m.DoorBakes[0].FaceWidthPx != material.DoorFaceWidthPx {
		t.Errorf("door bakes = %+v", m.DoorBakes)
	}
}

func TestWriteManifest_BakeFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "export")
	s, err := New(t.TempDir(), out, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	s.RecordFacade(material.FacadeBake{Material: "a.png", Facade: "a.png", Cladding: "bricks.jpg", Scale: 1.5})
	s.RecordDoor(material.DoorBake{Material: "door.png", FaceWidthPx: material.DoorFaceWidthPx})
	if _, err := s.WriteManifest(nil); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, BakeDir, "a.png.yaml"))
	if err != nil {
		t.Fatalf("read facade bake failed: %v", err)
	}
	var facade material.FacadeBake
	if err := yaml.Unmarshal(data, &facade); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if facade.Cladding != "bricks.jpg" || facade.Scale != 1.5 {
		t.Errorf("facade bake = %+v", facade)
	}

	data, err = os.ReadFile(filepath.Join(out, BakeDir, "door.png.yaml"))
	if err != nil {
		t.Fatalf("read door bake failed: %v", err)
	}
	var door material.DoorBake
	if err := yaml.Unmarshal(data, &door); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if door.FaceWidthPx != material.DoorFaceWidthPx {
		t.Errorf("door bake = %+v", door)
	}

	// staged files are moved, not copied
	for _, name := range []string{ManifestFile, filepath.Join(BakeDir, "a.png.yaml")} {
		if _, err := os.Stat(filepath.Join(s.WorkDir, name)); !os.IsNotExist(err) {
			t.Errorf("%s left in the work dir: %v", name, err)
		}
	}
}

func TestMove_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.yaml")
	dst := filepath.Join(dir, "nested", "dst.yaml")
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := move(src, dst); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if data, _ := os.ReadFile(dst); string(data) != "new" {
		t.Errorf("dst = %q, want new", data)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("src still exists: %v", err)
	}
}
