package operations

import (
	"fmt"
	"strings"
)

// Registry keeps sections in registration order
type Registry struct {
	sections map[string]Section
	order    []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sections: make(map[string]Section),
		order:    make([]string, 0),
	}
}

// Register adds a section to the registry
func (r *Registry) Register(section Section) error {
	if section == nil {
		return fmt.Errorf("cannot register nil section")
	}

	id := section.ID()
	if id == "" {
		return fmt.Errorf("section ID cannot be empty")
	}
	if _, exists := r.sections[id]; exists {
		return fmt.Errorf("section with ID %s already registered", id)
	}

	r.sections[id] = section
	r.order = append(r.order, id)
	return nil
}

// Get retrieves a section by ID
func (r *Registry) Get(id string) (Section, error) {
	section, exists := r.sections[id]
	if !exists {
		return nil, NewNotFoundError(id)
	}
	return section, nil
}

// Has checks if a section is registered
func (r *Registry) Has(id string) bool {
	_, exists := r.sections[id]
	return exists
}

// List returns all sections in registration order
func (r *Registry) List() []Section {
	sections := make([]Section, 0, len(r.order))
	for _, id := range r.order {
		sections = append(sections, r.sections[id])
	}
	return sections
}

// ListIDs returns all section IDs in registration order
func (r *Registry) ListIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Count returns the number of registered sections
func (r *Registry) Count() int {
	return len(r.sections)
}

// Select returns the sections named by ids in registration order, or every
// section when ids is empty. Unknown IDs are reported together.
func (r *Registry) Select(ids ...string) ([]Section, error) {
	if len(ids) == 0 {
		return r.List(), nil
	}

	wanted := make(map[string]bool, len(ids))
	var unknown []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !r.Has(id) {
			unknown = append(unknown, id)
			continue
		}
		wanted[id] = true
	}
	if len(unknown) > 0 {
		return nil, NewNotFoundError(strings.Join(unknown, ","))
	}
	if len(wanted) == 0 {
		return r.List(), nil
	}

	sections := make([]Section, 0, len(wanted))
	for _, id := range r.order {
		if wanted[id] {
			sections = append(sections, r.sections[id])
		}
	}
	return sections, nil
}

// ParseSectionList splits a comma separated list of IDs
func ParseSectionList(list string) []string {
	var ids []string
	for _, part := range strings.Split(list, ",") {
		if id := strings.TrimSpace(part); id != "" && id != "all" {
			ids = append(ids, id)
		}
	}
	return ids
}
