package scenegraph

import "reflect"

// Entity is a bag of components owned by the scene's entity pool. Components are
// stored by type; an entity holds at most one component of each type.
type Entity struct {
	id         uint64
	components map[reflect.Type]any
}

// Pool owns entities and indexes them by component type so systems can iterate
// all entities carrying a given component (e.g. every physics-bound entity).
type Pool struct {
	nextID   uint64
	entities map[uint64]*Entity
	groups   map[reflect.Type][]*Entity
}

// NewPool returns an empty entity pool.
func NewPool() *Pool {
	return &Pool{
		entities: make(map[uint64]*Entity),
		groups:   make(map[reflect.Type][]*Entity),
	}
}

// Create allocates a new entity with no components.
func (p *Pool) Create() *Entity {
	p.nextID++
	e := &Entity{id: p.nextID, components: make(map[reflect.Type]any)}
	p.entities[e.id] = e
	return e
}

// Destroy removes the entity from the pool and from every component group.
// Destroying an entity does not touch the scene hierarchy or the physics world;
// callers tear those down first (see the interaction layer's removal action).
func (p *Pool) Destroy(e *Entity) {
	if e == nil {
		return
	}
	if _, ok := p.entities[e.id]; !ok {
		return
	}
	delete(p.entities, e.id)
	for t := range e.components {
		group := p.groups[t]
		for i, ge := range group {
			if ge == e {
				p.groups[t] = append(group[:i], group[i+1:]...)
				break
			}
		}
	}
	e.components = nil
}

// Contains reports whether e is still alive in the pool.
func (p *Pool) Contains(e *Entity) bool {
	if e == nil {
		return false
	}
	_, ok := p.entities[e.id]
	return ok
}

// Len returns the number of live entities.
func (p *Pool) Len() int {
	return len(p.entities)
}

// Attach stores component c on entity e in pool p, replacing any previous
// component of the same type, and indexes e in that type's group.
func Attach[T any](p *Pool, e *Entity, c *T) {
	t := reflect.TypeOf((*T)(nil))
	if _, had := e.components[t]; !had {
		p.groups[t] = append(p.groups[t], e)
	}
	e.components[t] = c
}

// Component returns entity e's component of type T, or nil if it has none
// (or the entity has been destroyed).
func Component[T any](e *Entity) *T {
	if e == nil || e.components == nil {
		return nil
	}
	c, ok := e.components[reflect.TypeOf((*T)(nil))]
	if !ok {
		return nil
	}
	return c.(*T)
}

// Group returns all live entities carrying a component of type T, in attach
// order. The returned slice is the pool's own; callers must not mutate it.
func Group[T any](p *Pool) []*Entity {
	return p.groups[reflect.TypeOf((*T)(nil))]
}
