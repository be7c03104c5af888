// Package export runs a complete facade export: markup and catalog in,
// OBJ/MTL mesh and material sidecar out.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/facadegen/internal/catalog"
	"github.com/Faultbox/facadegen/internal/config"
	"github.com/Faultbox/facadegen/internal/facade"
	"github.com/Faultbox/facadegen/internal/material"
	"github.com/Faultbox/facadegen/internal/mesh"
	"github.com/Faultbox/facadegen/internal/session"
	"github.com/Faultbox/facadegen/pkg/markup"
)

// Result summarises one export.
type Result struct {
	Session   string
	OBJPath   string
	Manifest  string
	Buildings int
	// Skipped counts facades whose markup could not be laid out.
	Skipped   int
	Vertices  int
	Faces     int
	Materials int
	Bounds    mesh.Bounds
}

// Exporter renders markup documents with the settings of a config.
type Exporter struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates an exporter.
func New(cfg *config.Config, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{cfg: cfg, log: log}
}

// LoadCatalog loads the facade catalog and, if configured, the separate
// cladding catalog.
func (e *Exporter) LoadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.LoadFiles(e.cfg.Catalog.FacadePath, e.cfg.Catalog.CladdingPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

// Export renders every building of the markup document at markupPath.
// Facades that do not fit their markup are skipped and logged; the export
// fails only on I/O errors or cancellation.
func (e *Exporter) Export(ctx context.Context, markupPath string, cat *catalog.Catalog) (*Result, error) {
	buildings, err := markup.LoadFile(markupPath)
	if err != nil {
		return nil, fmt.Errorf("loading markup: %w", err)
	}

	outDir := e.cfg.Export.OutputDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	sess, err := session.New(e.cfg.Export.WorkDirRoot, outDir, e.log.Named("session"))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			e.log.Warn("session cleanup failed", zap.Error(err))
		}
	}()

	m := mesh.New()
	registry := material.NewRegistry()
	resolver := material.NewResolver(cat, registry, e.log.Named("material"))
	engine := facade.New(m, resolver, facade.Options{
		LevelDetail: e.cfg.Export.LevelDetail,
		VertexColor: e.cfg.Export.VertexColor,
		Bakes:       sess,
	}, e.log.Named("engine"))

	res := &Result{Session: sess.ID, Buildings: len(buildings)}
	for _, b := range buildings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.applyDefaults(b)

		_, err := engine.RenderBuilding(b)
		if err != nil {
			res.Skipped += countErrors(err)
			e.log.Warn("building rendered with skipped facades",
				zap.String("building", b.ID),
				zap.Error(err))
		}
	}

	materials := registry.Materials()
	res.OBJPath, err = mesh.WriteFiles(outDir, filepath.Base(markupPath), m, materials)
	if err != nil {
		return nil, err
	}
	res.Manifest, err = sess.WriteManifest(materials)
	if err != nil {
		return nil, err
	}

	res.Vertices = m.NumVertices()
	res.Faces = len(m.Faces)
	res.Materials = registry.Created()
	res.Bounds = m.Bounds()
	e.log.Info("export complete",
		zap.String("obj", res.OBJPath),
		zap.Int("buildings", res.Buildings),
		zap.Int("faces", res.Faces),
		zap.Int("materials", res.Materials),
		zap.Any("bounds", res.Bounds),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

// applyDefaults fills level heights the footprint leaves unset and
// derives facade heights from the footprint.
func (e *Exporter) applyDefaults(b *markup.Building) {
	h := &b.Footprint.Heights
	if h.Basement == 0 {
		h.Basement = e.cfg.Heights.Basement
	}
	if h.Ground == 0 {
		h.Ground = e.cfg.Heights.Ground
	}
	if h.Level == 0 {
		h.Level = e.cfg.Heights.Level
	}

	for i := range b.Facades {
		f := &b.Facades[i]
		if f.Height == 0 {
			f.Height = FacadeHeight(b, f.Node)
		}
	}
}

// FacadeHeight returns the height of the levels of a facade: the basement,
// if it is rendered, plus every level from the footprint's minimum level up.
func FacadeHeight(b *markup.Building, id markup.NodeID) float64 {
	fp := b.Footprint
	if fp.NumLevels == 0 {
		return b.Tree.Node(id).Height
	}
	height := fp.Heights.Height(fp.MinLevel, fp.NumLevels-1)
	if fp.MinHeight == 0 && b.Tree.LevelGroups(id, fp.NumLevels).Basement != nil {
		basement, ok := b.Tree.StyleAttr(id, "basementHeight")
		if !ok {
			basement = fp.Heights.Basement
		}
		height += basement
	}
	return height
}

// countErrors counts the facade errors joined by RenderBuilding.
func countErrors(err error) int {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return len(joined.Unwrap())
	}
	return 1
}
