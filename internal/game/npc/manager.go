package npc

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Manager holds the loaded templates and tracks live instances by ID and by
// encounter. All methods are safe for concurrent use; the instances it hands
// out are not.
type Manager struct {
	mu         sync.RWMutex
	templates  map[string]*Template
	instances  map[string]*Instance       // instanceID → Instance
	encounters map[string]map[string]bool // encounterID → set of instanceIDs
	skills     SkillSource
	roller     Roller
}

// NewManager creates a Manager over templates.
//
// Precondition: skills and roller must be non-nil.
// Postcondition: returns an error if two templates share an ID.
func NewManager(templates []*Template, skills SkillSource, roller Roller) (*Manager, error) {
	m := &Manager{
		templates:  make(map[string]*Template, len(templates)),
		instances:  make(map[string]*Instance),
		encounters: make(map[string]map[string]bool),
		skills:     skills,
		roller:     roller,
	}
	for _, t := range templates {
		if _, dup := m.templates[t.ID]; dup {
			return nil, fmt.Errorf("npc.NewManager: template %q defined twice", t.ID)
		}
		m.templates[t.ID] = t
	}
	return m, nil
}

// Template returns the template for id.
func (m *Manager) Template(id string) (*Template, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	return t, ok
}

// TemplateIDs returns all template IDs in sorted order.
func (m *Manager) TemplateIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.templates))
	for id := range m.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Spawn creates a new Instance from the template templateID and adds it to
// encounterID.
//
// Precondition: encounterID must be non-empty.
// Postcondition: Returns a new Instance registered in encounterID.
func (m *Manager) Spawn(templateID, encounterID string) (*Instance, error) {
	if encounterID == "" {
		return nil, fmt.Errorf("npc.Manager.Spawn: encounterID must not be empty")
	}
	tmpl, ok := m.Template(templateID)
	if !ok {
		return nil, fmt.Errorf("npc.Manager.Spawn: unknown template %q", templateID)
	}
	inst, err := NewInstance(tmpl, m.skills, m.roller)
	if err != nil {
		return nil, fmt.Errorf("npc.Manager.Spawn: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.instances[inst.ID] = inst
	if m.encounters[encounterID] == nil {
		m.encounters[encounterID] = make(map[string]bool)
	}
	m.encounters[encounterID][inst.ID] = true

	return inst, nil
}

// Remove deletes an instance by ID from the manager and its encounter.
//
// Postcondition: Returns an error if the instance is not found.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.instances[id]; !ok {
		return fmt.Errorf("npc instance %q not found", id)
	}
	for encID, set := range m.encounters {
		if set[id] {
			delete(set, id)
			if len(set) == 0 {
				delete(m.encounters, encID)
			}
		}
	}
	delete(m.instances, id)
	return nil
}

// Get returns the instance with the given ID.
func (m *Manager) Get(id string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[id]
	return inst, ok
}

// InEncounter returns a snapshot of every instance in encounterID, sorted by
// name and then ID.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (m *Manager) InEncounter(encounterID string) []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.encounters[encounterID]
	out := make([]*Instance, 0, len(ids))
	for id := range ids {
		if inst, ok := m.instances[id]; ok {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FindInEncounter returns the first living instance in encounterID whose Name
// has target as a case-insensitive prefix. Returns nil if no match is found.
func (m *Manager) FindInEncounter(encounterID, target string) *Instance {
	lower := strings.ToLower(target)
	for _, inst := range m.InEncounter(encounterID) {
		if inst.IsAlive() && strings.HasPrefix(strings.ToLower(inst.Name), lower) {
			return inst
		}
	}
	return nil
}
