package ruleset

import "sort"

// ArchetypeRegistry provides lookup of archetype descriptors by ID.
type ArchetypeRegistry struct {
	archetypes map[string]*Archetype
}

// NewArchetypeRegistry returns an empty ArchetypeRegistry.
//
// Postcondition: Returns a non-nil *ArchetypeRegistry ready to accept registrations.
func NewArchetypeRegistry() *ArchetypeRegistry {
	return &ArchetypeRegistry{archetypes: make(map[string]*Archetype)}
}

// Register adds an Archetype to the registry.
//
// Precondition: a must be non-nil with a non-empty ID.
// Postcondition: a is retrievable via Archetype(a.ID);
// if called multiple times with the same ID, the last call wins.
func (r *ArchetypeRegistry) Register(a *Archetype) {
	if a == nil {
		panic("ArchetypeRegistry.Register: precondition violated: archetype must be non-nil")
	}
	if a.ID == "" {
		panic("ArchetypeRegistry.Register: precondition violated: archetype ID must be non-empty")
	}
	r.archetypes[a.ID] = a
}

// Archetype returns the Archetype for id, if registered.
func (r *ArchetypeRegistry) Archetype(id string) (*Archetype, bool) {
	a, ok := r.archetypes[id]
	return a, ok
}

// StartingSkills returns the starting skill IDs for id.
//
// Postcondition: Returns nil if id is unknown.
func (r *ArchetypeRegistry) StartingSkills(id string) []string {
	if a, ok := r.archetypes[id]; ok {
		return a.StartingSkills
	}
	return nil
}

// IDs returns all registered archetype IDs in sorted order.
func (r *ArchetypeRegistry) IDs() []string {
	ids := make([]string, 0, len(r.archetypes))
	for id := range r.archetypes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
