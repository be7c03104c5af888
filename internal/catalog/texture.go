// Package catalog holds the texture catalogs facade materials are
// resolved from.
package catalog

import "sync"

// TextureInfo describes one texture of the catalog. Values are never
// modified after loading.
type TextureInfo struct {
	// Material is the architectural style class the texture belongs to.
	Material string `yaml:"material" toml:"material"`
	Name     string `yaml:"name" toml:"name"`
	Path     string `yaml:"path" toml:"path"`
	// Part is the building part the texture is made for, e.g. "level",
	// "groundlevel" or "door". Empty for cladding.
	Part string `yaml:"part" toml:"part"`
	// Pattern is the item histogram a facade texture depicts.
	Pattern map[string]int `yaml:"pattern" toml:"pattern"`

	TextureWidthPx  float64 `yaml:"textureWidthPx" toml:"textureWidthPx"`
	TextureHeightPx float64 `yaml:"textureHeightPx" toml:"textureHeightPx"`
	TextureWidthM   float64 `yaml:"textureWidthM" toml:"textureWidthM"`
	TextureHeightM  float64 `yaml:"textureHeightM" toml:"textureHeightM"`
	NumTilesU       int     `yaml:"numTilesU" toml:"numTilesU"`
	NumTilesV       int     `yaml:"numTilesV" toml:"numTilesV"`
	WindowLpx       float64 `yaml:"windowLpx" toml:"windowLpx"`
	WindowRpx       float64 `yaml:"windowRpx" toml:"windowRpx"`
	WindowWidthM    float64 `yaml:"windowWidthM" toml:"windowWidthM"`
}

// TextureBundle stores textures for buildings that are similar in look and
// feel. Lookups cycle through the textures in insertion order.
type TextureBundle struct {
	mu       sync.Mutex
	index    int
	textures []*TextureInfo
}

// Add appends a texture to the bundle.
func (b *TextureBundle) Add(ti *TextureInfo) {
	b.mu.Lock()
	b.textures = append(b.textures, ti)
	b.mu.Unlock()
}

// Textures returns the textures in insertion order.
func (b *TextureBundle) Textures() []*TextureInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*TextureInfo(nil), b.textures...)
}

// Next returns the current texture and advances the cursor, wrapping at the
// end. A bundle with a single texture keeps its cursor in place.
func (b *TextureBundle) Next() *TextureInfo {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.textures) == 0 {
		return nil
	}
	index := b.index
	if last := len(b.textures) - 1; last > 0 {
		if index == last {
			b.index = 0
		} else {
			b.index++
		}
	}
	return b.textures[index]
}
