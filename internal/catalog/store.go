package catalog

import (
	"sort"

	"github.com/Faultbox/facadegen/pkg/markup"
)

type key struct {
	style     string
	part      string
	signature string
}

// Store indexes facade and door textures by style, building part and item
// pattern.
type Store struct {
	bundles map[key]*TextureBundle
	order   []key
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{bundles: make(map[key]*TextureBundle)}
}

// Add indexes a texture under its material, part and pattern signature.
func (s *Store) Add(ti *TextureInfo) {
	k := key{
		style:     ti.Material,
		part:      ti.Part,
		signature: markup.Pattern(ti.Pattern).Signature(),
	}
	b, ok := s.bundles[k]
	if !ok {
		b = &TextureBundle{}
		s.bundles[k] = b
		s.order = append(s.order, k)
	}
	b.Add(ti)
}

// TextureInfo returns the next texture for the style and part whose
// pattern matches. Textures catalogued without a pattern serve as the
// fallback for any pattern. Returns nil if nothing matches.
func (s *Store) TextureInfo(style, part string, pattern markup.Pattern) *TextureInfo {
	if b, ok := s.bundles[key{style, part, pattern.Signature()}]; ok {
		return b.Next()
	}
	if b, ok := s.bundles[key{style, part, ""}]; ok {
		return b.Next()
	}
	return nil
}

// BundleInfo summarises one bundle of a store.
type BundleInfo struct {
	Style     string
	Part      string
	Signature string
	Textures  []*TextureInfo
}

// Bundles lists the bundles sorted by style, part and signature.
func (s *Store) Bundles() []BundleInfo {
	keys := append([]key(nil), s.order...)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].style != keys[j].style {
			return keys[i].style < keys[j].style
		}
		if keys[i].part != keys[j].part {
			return keys[i].part < keys[j].part
		}
		return keys[i].signature < keys[j].signature
	})

	infos := make([]BundleInfo, 0, len(keys))
	for _, k := range keys {
		infos = append(infos, BundleInfo{
			Style:     k.style,
			Part:      k.part,
			Signature: k.signature,
			Textures:  s.bundles[k].Textures(),
		})
	}
	return infos
}

// CladdingStore indexes cladding textures by material.
type CladdingStore struct {
	byMaterial map[string]*TextureBundle
}

// NewCladdingStore creates an empty cladding store.
func NewCladdingStore() *CladdingStore {
	return &CladdingStore{byMaterial: make(map[string]*TextureBundle)}
}

// Add indexes a cladding texture under its material.
func (s *CladdingStore) Add(ti *TextureInfo) {
	b, ok := s.byMaterial[ti.Material]
	if !ok {
		b = &TextureBundle{}
		s.byMaterial[ti.Material] = b
	}
	b.Add(ti)
}

// TextureInfo returns the next cladding texture for a material, or nil.
func (s *CladdingStore) TextureInfo(material string) *TextureInfo {
	if b, ok := s.byMaterial[material]; ok {
		return b.Next()
	}
	return nil
}

// Materials returns the catalogued cladding materials, sorted.
func (s *CladdingStore) Materials() []string {
	names := make([]string, 0, len(s.byMaterial))
	for name := range s.byMaterial {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
