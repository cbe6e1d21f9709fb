package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
)

// ElementIndex maps a (kind, team) key to the live entities under it.
// Keys iterate in first-insertion order and entities in insertion order.
type ElementIndex struct {
	keys    []components.TeamElement
	entries map[components.TeamElement][]ecs.Entity
}

// NewElementIndex creates an empty index.
func NewElementIndex() *ElementIndex {
	return &ElementIndex{
		entries: make(map[components.TeamElement][]ecs.Entity),
	}
}

// Insert appends e under key.
func (ix *ElementIndex) Insert(key components.TeamElement, e ecs.Entity) {
	list, ok := ix.entries[key]
	if !ok {
		ix.keys = append(ix.keys, key)
	}
	ix.entries[key] = append(list, e)
}

// Get returns the entities under key. The slice must not be modified.
func (ix *ElementIndex) Get(key components.TeamElement) []ecs.Entity {
	return ix.entries[key]
}

// Len returns the number of entities under key.
func (ix *ElementIndex) Len(key components.TeamElement) int {
	return len(ix.entries[key])
}

// Contains reports whether e is indexed under key.
func (ix *ElementIndex) Contains(key components.TeamElement, e ecs.Entity) bool {
	for _, other := range ix.entries[key] {
		if other == e {
			return true
		}
	}
	return false
}

// Keys returns every key ever inserted, in insertion order. Keys may have no entities.
func (ix *ElementIndex) Keys() []components.TeamElement {
	return ix.keys
}

// Mobile appends every Ant and Hive entity in index order to dst.
func (ix *ElementIndex) Mobile(dst []ecs.Entity) []ecs.Entity {
	for _, key := range ix.keys {
		if key.Kind.Mobile() {
			dst = append(dst, ix.entries[key]...)
		}
	}
	return dst
}

// Retain keeps only the entities for which keep returns true.
func (ix *ElementIndex) Retain(keep func(key components.TeamElement, e ecs.Entity) bool) []ecs.Entity {
	var removed []ecs.Entity
	for _, key := range ix.keys {
		list := ix.entries[key]
		kept := list[:0]
		for _, e := range list {
			if keep(key, e) {
				kept = append(kept, e)
			} else {
				removed = append(removed, e)
			}
		}
		ix.entries[key] = kept
	}
	return removed
}

// Clear drops every key and entity.
func (ix *ElementIndex) Clear() {
	ix.keys = ix.keys[:0]
	clear(ix.entries)
}
