// Package world keeps the set of live chunks and their GPU meshes.
package world

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"voxplace/internal/chunk"
	"voxplace/internal/gpu"
	"voxplace/internal/mesh"
)

var (
	ErrExists   = errors.New("world: chunk already exists")
	ErrNotFound = errors.New("world: chunk not found")
)

// MeshFactory returns an empty GPU mesh for a newly created chunk.
type MeshFactory func() gpu.Mesh

// Entry pairs a chunk with the mesh drawn for it.
type Entry struct {
	Chunk *chunk.Chunk
	Mesh  gpu.Mesh
}

// Registry owns every chunk by grid coordinate. It is not safe for
// concurrent use; all calls happen on the render thread.
type Registry struct {
	dims    chunk.Dims
	bedrock uint8
	mesher  *mesh.Mesher
	newMesh MeshFactory
	log     *slog.Logger

	entries map[chunk.Coord]*Entry
	// stale holds chunks whose own cells are unchanged but whose mesh is out
	// of date because a neighbour appeared, vanished or changed on a shared edge.
	stale map[chunk.Coord]bool
}

// New creates an empty registry. Every chunk gets the mesher's dimensions.
func New(m *mesh.Mesher, bedrock uint8, newMesh MeshFactory, log *slog.Logger) *Registry {
	return &Registry{
		dims:    m.Layout().Dims,
		bedrock: bedrock,
		mesher:  m,
		newMesh: newMesh,
		log:     log,
		entries: make(map[chunk.Coord]*Entry),
		stale:   make(map[chunk.Coord]bool),
	}
}

func (r *Registry) Dims() chunk.Dims { return r.dims }

func (r *Registry) Len() int { return len(r.entries) }

// Create adds a new bedrock-seeded chunk at coord.
func (r *Registry) Create(coord chunk.Coord) (*chunk.Chunk, error) {
	if _, ok := r.entries[coord]; ok {
		return nil, fmt.Errorf("%w: %s", ErrExists, coord)
	}

	c, err := chunk.New(coord, r.dims, r.bedrock)
	if err != nil {
		return nil, fmt.Errorf("create chunk %s: %w", coord, err)
	}
	r.entries[coord] = &Entry{Chunk: c, Mesh: r.newMesh()}
	r.touchNeighbors(coord)
	return c, nil
}

// Get returns the entry at coord.
func (r *Registry) Get(coord chunk.Coord) (*Entry, bool) {
	e, ok := r.entries[coord]
	return e, ok
}

// Chunk implements mesh.Source.
func (r *Registry) Chunk(coord chunk.Coord) (*chunk.Chunk, bool) {
	e, ok := r.entries[coord]
	if !ok {
		return nil, false
	}
	return e.Chunk, true
}

// Destroy releases the chunk's GPU mesh and forgets the chunk.
func (r *Registry) Destroy(coord chunk.Coord) bool {
	e, ok := r.entries[coord]
	if !ok {
		return false
	}
	e.Mesh.Release()
	delete(r.entries, coord)
	delete(r.stale, coord)
	r.touchNeighbors(coord)
	return true
}

func (r *Registry) touchNeighbors(coord chunk.Coord) {
	for _, c := range [...]chunk.Coord{
		{X: coord.X, Z: coord.Z + 1},
		{X: coord.X, Z: coord.Z - 1},
		{X: coord.X + 1, Z: coord.Z},
		{X: coord.X - 1, Z: coord.Z},
	} {
		if _, ok := r.entries[c]; ok {
			r.stale[c] = true
		}
	}
}

// Coords returns every chunk coordinate, sorted by X then Z.
func (r *Registry) Coords() []chunk.Coord {
	coords := make([]chunk.Coord, 0, len(r.entries))
	for c := range r.entries {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, func(a, b chunk.Coord) int {
		if n := cmp.Compare(a.X, b.X); n != 0 {
			return n
		}
		return cmp.Compare(a.Z, b.Z)
	})
	return coords
}

// Each calls fn for every entry in Coords order.
func (r *Registry) Each(fn func(*Entry)) {
	for _, c := range r.Coords() {
		fn(r.entries[c])
	}
}

// Remesh regenerates the faces of the chunk at coord and uploads them.
func (r *Registry) Remesh(coord chunk.Coord) error {
	e, ok := r.entries[coord]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, coord)
	}

	faces, err := r.mesher.Generate(e.Chunk, mesh.NeighborsOf(r, coord))
	if err != nil {
		return fmt.Errorf("mesh chunk %s: %w", coord, err)
	}
	if err := e.Mesh.Upload(faces); err != nil {
		// Generate already cleared the dirty flag and the old mesh is gone.
		r.stale[coord] = true
		return fmt.Errorf("upload chunk %s: %w", coord, err)
	}
	delete(r.stale, coord)

	r.log.Debug("chunk meshed", "chunk", coord.String(), "faces", len(faces))
	return nil
}

// MeshAll meshes every chunk. Call it once all chunks of a scene exist so
// that boundary faces are culled against their neighbours.
func (r *Registry) MeshAll() error {
	var errs []error
	faces := 0
	for _, c := range r.Coords() {
		if err := r.Remesh(c); err != nil {
			r.log.Error("mesh chunk", "chunk", c.String(), "error", err)
			errs = append(errs, err)
			continue
		}
		faces += r.entries[c].Mesh.Faces()
	}
	r.log.Info("meshed all chunks", "chunks", len(r.entries), "faces", faces)
	return errors.Join(errs...)
}

// RemeshDirty remeshes every chunk that changed since its last mesh, or
// whose neighbourhood did. It returns how many chunks were remeshed.
// Chunks that fail stay pending and are tried again on the next call.
func (r *Registry) RemeshDirty() (int, error) {
	var errs []error
	n := 0
	for _, c := range r.Coords() {
		if !r.entries[c].Chunk.Dirty() && !r.stale[c] {
			continue
		}
		if err := r.Remesh(c); err != nil {
			r.log.Error("remesh chunk", "chunk", c.String(), "error", err)
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

// Release frees every GPU mesh. The chunks stay registered.
func (r *Registry) Release() {
	for _, e := range r.entries {
		e.Mesh.Release()
	}
}
