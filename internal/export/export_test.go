package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/facadegen/internal/config"
	"github.com/Faultbox/facadegen/internal/mesh"
	"github.com/Faultbox/facadegen/internal/session"
	"github.com/Faultbox/facadegen/pkg/markup"
	"github.com/Faultbox/facadegen/pkg/math"
)

func newExporter(t *testing.T) (*Exporter, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Export.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Export.WorkDirRoot = t.TempDir()
	cfg.Catalog.FacadePath = filepath.Join("testdata", "catalog.yaml")
	cfg.Catalog.CladdingPath = filepath.Join("testdata", "cladding.toml")
	return New(cfg, nil), cfg
}

func TestExport(t *testing.T) {
	e, cfg := newExporter(t)
	cat, err := e.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	res, err := e.Export(context.Background(), filepath.Join("testdata", "terrace.yaml"), cat)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if res.Buildings != 1 {
		t.Errorf("Buildings = %d, want 1", res.Buildings)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
	// basement, ground and the upper level group
	if res.Faces != 3 {
		t.Errorf("Faces = %d, want 3", res.Faces)
	}
	if res.Materials != 3 {
		t.Errorf("Materials = %d, want 3", res.Materials)
	}
	// 4 + 4 corners and 2 strip boundaries
	if res.Vertices != 12 {
		t.Errorf("Vertices = %d, want 12", res.Vertices)
	}
	// the skipped facade still contributes its corners
	want := mesh.Bounds{Max: math.Vec3{X: 12, Y: 3, Z: 11}}
	if res.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", res.Bounds, want)
	}

	if res.OBJPath != filepath.Join(cfg.Export.OutputDir, "terrace.obj") {
		t.Errorf("OBJPath = %s", res.OBJPath)
	}
	obj, err := os.ReadFile(res.OBJPath)
	if err != nil {
		t.Fatalf("read obj failed: %v", err)
	}
	for _, want := range []string{"mtllib terrace.mtl", "usemtl bricks.jpg", "usemtl brick_ground_shop.png", "usemtl brick_level_3w.png"} {
		if !strings.Contains(string(obj), want) {
			t.Errorf("obj is missing %q", want)
		}
	}

	manifest, err := os.ReadFile(res.Manifest)
	if err != nil {
		t.Fatalf("read manifest failed: %v", err)
	}
	for _, want := range []string{res.Session, "facade_bakes", "brick_ground_shop.png"} {
		if !strings.Contains(string(manifest), want) {
			t.Errorf("manifest is missing %q", want)
		}
	}

	// every recorded bake has its own parameter file next to the manifest
	var m session.Manifest
	if err := yaml.Unmarshal(manifest, &m); err != nil {
		t.Fatalf("decode manifest failed: %v", err)
	}
	for _, b := range m.FacadeBakes {
		path := filepath.Join(cfg.Export.OutputDir, session.BakeDir, b.Material+".yaml")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing bake file for %s: %v", b.Material, err)
		}
	}

	// the session work dir is gone
	entries, err := os.ReadDir(cfg.Export.WorkDirRoot)
	if err != nil {
		t.Fatalf("read work root failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("work root still holds %d entries", len(entries))
	}
}

func TestExport_Canceled(t *testing.T) {
	e, _ := newExporter(t)
	cat, err := e.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Export(ctx, filepath.Join("testdata", "terrace.yaml"), cat); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExport_MissingMarkup(t *testing.T) {
	e, _ := newExporter(t)
	cat, err := e.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if _, err := e.Export(context.Background(), filepath.Join("testdata", "missing.yaml"), cat); err == nil {
		t.Error("expected error for missing markup")
	}
}

func TestFacadeHeight(t *testing.T) {
	buildings, err := markup.LoadFile(filepath.Join("testdata", "terrace.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	b := buildings[0]

	tests := []struct {
		name      string
		facade    int
		minHeight float64
		want      float64
	}{
		{"with basement", 0, 0, 11},
		{"raised part", 0, 5, 10},
		{"no basement markup", 1, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.Footprint.MinHeight = tt.minHeight
			if got := FacadeHeight(b, b.Facades[tt.facade].Node); got != tt.want {
				t.Errorf("FacadeHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}
