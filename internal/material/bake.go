package material

import (
	"fmt"

	"github.com/Faultbox/facadegen/internal/catalog"
	"github.com/Faultbox/facadegen/pkg/math"
)

// DoorFaceWidthPx is the pixel width door textures are baked at.
const DoorFaceWidthPx = 1028

// FacadeBake holds the compositing values for a facade texture bake.
type FacadeBake struct {
	Material string  `yaml:"material"`
	Facade   string  `yaml:"facade_texture"`
	Cladding string  `yaml:"cladding_texture"`
	Scale    float64 `yaml:"cladding_scale"`
}

// NewFacadeBake scales the cladding so its pixels match the facade
// texture's meters-per-pixel factor.
func NewFacadeBake(materialID string, facade, cladding *catalog.TextureInfo) (FacadeBake, error) {
	if cladding.TextureWidthPx <= 0 || facade.WindowWidthM <= 0 {
		return FacadeBake{}, fmt.Errorf("%w: cannot scale %s onto %s", ErrInvalidTexture, cladding.Name, facade.Name)
	}
	return FacadeBake{
		Material: materialID,
		Facade:   facade.Name,
		Cladding: cladding.Name,
		Scale: cladding.TextureWidthM / cladding.TextureWidthPx *
			(facade.WindowRpx - facade.WindowLpx) / facade.WindowWidthM,
	}, nil
}

// DoorBake holds the compositing values for a door texture bake.
type DoorBake struct {
	Material      string     `yaml:"material"`
	Door          string     `yaml:"door_texture"`
	Cladding      string     `yaml:"cladding_texture"`
	FaceWidthPx   float64    `yaml:"face_width_px"`
	FaceHeightPx  float64    `yaml:"face_height_px"`
	DoorScale     [2]float64 `yaml:"door_scale"`
	DoorTranslate [2]float64 `yaml:"door_translate"`
	CladdingScale float64    `yaml:"cladding_scale"`
}

// NewDoorBake computes the bake of a door texture onto a face with the
// given texture coordinates, in meters.
func NewDoorBake(materialID string, door, cladding *catalog.TextureInfo, uvs [4]math.Vec2) (DoorBake, error) {
	faceWidthM := uvs[1].U - uvs[0].U
	faceHeightM := uvs[2].V - uvs[1].V
	if faceWidthM <= 0 || faceHeightM <= 0 {
		return DoorBake{}, fmt.Errorf("%w: degenerate door face %vx%v", ErrInvalidTexture, faceWidthM, faceHeightM)
	}
	if door.TextureWidthPx <= 0 || door.TextureHeightPx <= 0 || cladding.TextureWidthPx <= 0 {
		return DoorBake{}, fmt.Errorf("%w: %s has no pixel size", ErrInvalidTexture, door.Name)
	}

	faceWidthPx := float64(DoorFaceWidthPx)
	faceHeightPx := faceHeightM / faceWidthM * faceWidthPx
	scaleY := door.TextureHeightM / door.TextureHeightPx * faceHeightPx / faceHeightM
	return DoorBake{
		Material:     materialID,
		Door:         door.Name,
		Cladding:     cladding.Name,
		FaceWidthPx:  faceWidthPx,
		FaceHeightPx: faceHeightPx,
		DoorScale: [2]float64{
			door.TextureWidthM / door.TextureWidthPx * faceWidthPx / faceWidthM,
			scaleY,
		},
		DoorTranslate: [2]float64{0, (scaleY*door.TextureHeightPx - faceHeightPx) / 2},
		CladdingScale: cladding.TextureWidthM / cladding.TextureWidthPx * faceWidthPx / faceWidthM,
	}, nil
}
