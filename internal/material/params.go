// Package material creates facade materials from catalog textures and
// resolves which material applies to a markup node.
package material

import (
	"errors"
	"fmt"

	"github.com/Faultbox/facadegen/internal/catalog"
)

// Material errors.
var (
	ErrInvalidTexture = errors.New("texture record cannot drive a material")
)

// Default wall (background) texture used when no cladding is catalogued.
const (
	DefaultWallTextureFile    = "cc0textures_bricks11_col.jpg"
	DefaultWallTexturePath    = "textures/cladding/brick"
	DefaultWallTextureWidthM  = 1.5
	DefaultWallTextureHeightM = 1.5
)

// OverlayParams drive the facade overlay node of a material. Sizes are in
// meters.
type OverlayParams struct {
	TextureWidthM       float64 `yaml:"texture_width_m"`
	NumTilesU           int     `yaml:"num_tiles_u"`
	TileSizeUDefaultM   float64 `yaml:"tile_size_u_default_m"`
	TextureUOffsetM     float64 `yaml:"texture_u_offset_m"`
	NumTilesV           int     `yaml:"num_tiles_v"`
	TextureLevelHeightM float64 `yaml:"texture_level_height_m"`
	TextureHeightM      float64 `yaml:"texture_height_m"`
	TextureVOffsetM     float64 `yaml:"texture_v_offset_m"`
}

// NewOverlayParams derives the overlay parameters of a facade texture. The
// meters-per-pixel factor comes from the reference window of the texture.
func NewOverlayParams(ti *catalog.TextureInfo) (*OverlayParams, error) {
	if ti.NumTilesU <= 0 || ti.NumTilesV <= 0 {
		return nil, fmt.Errorf("%w: %s has %dx%d tiles", ErrInvalidTexture, ti.Name, ti.NumTilesU, ti.NumTilesV)
	}
	windowWidthPx := ti.WindowRpx - ti.WindowLpx
	if windowWidthPx <= 0 || ti.WindowWidthM <= 0 {
		return nil, fmt.Errorf("%w: %s has no reference window", ErrInvalidTexture, ti.Name)
	}

	factor := ti.WindowWidthM / windowWidthPx
	tileWidthPx := ti.TextureWidthPx / float64(ti.NumTilesU)
	return &OverlayParams{
		TextureWidthM:       factor * ti.TextureWidthPx,
		NumTilesU:           ti.NumTilesU,
		TileSizeUDefaultM:   factor * tileWidthPx,
		NumTilesV:           ti.NumTilesV,
		TextureLevelHeightM: factor * ti.TextureHeightPx / float64(ti.NumTilesV),
		TextureHeightM:      factor * ti.TextureHeightPx,
	}, nil
}

// TextureParams describe a texture mapped at its physical size.
type TextureParams struct {
	File    string     `yaml:"file"`
	Path    string     `yaml:"path"`
	WidthM  float64    `yaml:"width_m"`
	HeightM float64    `yaml:"height_m"`
	Scale   [2]float64 `yaml:"mapping_scale"`
}

// NewTextureParams maps a texture with known physical size.
func NewTextureParams(ti *catalog.TextureInfo) (TextureParams, error) {
	if ti.TextureWidthM <= 0 || ti.TextureHeightM <= 0 {
		return TextureParams{}, fmt.Errorf("%w: %s has no physical size", ErrInvalidTexture, ti.Name)
	}
	return textureParams(ti.Name, ti.Path, ti.TextureWidthM, ti.TextureHeightM), nil
}

// DefaultWallParams maps the built-in wall texture.
func DefaultWallParams() TextureParams {
	return textureParams(DefaultWallTextureFile, DefaultWallTexturePath,
		DefaultWallTextureWidthM, DefaultWallTextureHeightM)
}

func textureParams(file, path string, w, h float64) TextureParams {
	return TextureParams{
		File:    file,
		Path:    path,
		WidthM:  w,
		HeightM: h,
		Scale:   [2]float64{1 / w, 1 / h},
	}
}

// Material is a created material and the values it was built from.
type Material struct {
	ID      string              `yaml:"id"`
	Part    string              `yaml:"part,omitempty"`
	Texture catalog.TextureInfo `yaml:"texture"`
	// Overlay is set for facade textures.
	Overlay *OverlayParams `yaml:"overlay,omitempty"`
	// Image is set for door and cladding textures.
	Image *TextureParams `yaml:"image,omitempty"`
	// Wall is the background texture behind the overlay.
	Wall TextureParams `yaml:"wall"`
}

// newMaterial builds a material for the texture. Door and cladding
// textures are mapped at physical size, all others are facade overlays.
func newMaterial(id string, ti, wall *catalog.TextureInfo) (*Material, error) {
	m := &Material{ID: id, Part: ti.Part, Texture: *ti, Wall: DefaultWallParams()}
	if wall != nil {
		if p, err := NewTextureParams(wall); err == nil {
			m.Wall = p
		}
	}

	switch ti.Part {
	case "", "door", "wall":
		p, err := NewTextureParams(ti)
		if err != nil {
			return nil, err
		}
		m.Image = &p
	default:
		o, err := NewOverlayParams(ti)
		if err != nil {
			return nil, err
		}
		m.Overlay = o
	}
	return m, nil
}
