package material

import (
	"sort"
	"sync"

	"github.com/Faultbox/facadegen/internal/catalog"
)

// Registry holds the materials created during an export. Creation is
// idempotent per id and serialised, so concurrent resolution of the same
// id creates it once.
type Registry struct {
	mu        sync.Mutex
	materials map[string]*Material
	created   int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{materials: make(map[string]*Material)}
}

// Ensure creates the material id from the texture unless it already
// exists. wall is the cladding behind facade overlays and may be nil.
func (r *Registry) Ensure(id string, ti, wall *catalog.TextureInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.materials[id]; ok {
		return nil
	}
	m, err := newMaterial(id, ti, wall)
	if err != nil {
		return err
	}
	r.materials[id] = m
	r.created++
	return nil
}

// Get returns a created material.
func (r *Registry) Get(id string) (*Material, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	return m, ok
}

// Created returns how many materials were built.
func (r *Registry) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

// Materials returns all materials sorted by id.
func (r *Registry) Materials() []*Material {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]*Material, 0, len(r.materials))
	for _, m := range r.materials {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
