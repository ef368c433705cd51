package template

import (
	"errors"

	"github.com/charmbracelet/log"
)

// Registry is an ordered, read-only collection of templates. Order is
// matching priority: when several templates are consistent with the input,
// the one registered first wins. A Registry is safe for concurrent use.
type Registry struct {
	templates []*Template
	byID      map[string]*Template
}

// Builder collects templates before they are frozen into a Registry.
type Builder struct {
	templates []*Template
	byID      map[string]*Template
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{byID: make(map[string]*Template)}
}

// Add checks t and appends it. A template with a definition error is rejected
// and the builder is left unchanged.
func (b *Builder) Add(t *Template) error {
	if err := t.Check(); err != nil {
		return err
	}
	if _, exists := b.byID[t.ID]; exists {
		return &DefinitionError{TemplateID: t.ID, Part: -1, Err: ErrDuplicateID}
	}
	b.templates = append(b.templates, t)
	b.byID[t.ID] = t
	return nil
}

// AddAll adds each template in order, skipping rejected ones. The returned
// error joins every rejection.
func (b *Builder) AddAll(templates ...*Template) error {
	var errs []error
	for _, t := range templates {
		if err := b.Add(t); err != nil {
			log.Warnf("Skipping template: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build freezes the collected templates.
func (b *Builder) Build() *Registry {
	reg := &Registry{
		templates: make([]*Template, len(b.templates)),
		byID:      make(map[string]*Template, len(b.byID)),
	}
	copy(reg.templates, b.templates)
	for id, t := range b.byID {
		reg.byID[id] = t
	}
	log.Debugf("Registry built with %d templates", len(reg.templates))
	return reg
}

// NewRegistry builds a Registry from templates, failing on the first
// definition error.
func NewRegistry(templates ...*Template) (*Registry, error) {
	b := NewBuilder()
	for _, t := range templates {
		if err := b.Add(t); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// MustRegistry is like NewRegistry but panics on a definition error.
// It is meant for templates compiled into the binary.
func MustRegistry(templates ...*Template) *Registry {
	reg, err := NewRegistry(templates...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Templates returns the templates in priority order.
func (r *Registry) Templates() []*Template {
	if r == nil {
		return nil
	}
	out := make([]*Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// Get returns the template with the given id.
func (r *Registry) Get(id string) (*Template, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.byID[id]
	return t, ok
}

// Len returns the number of templates.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.templates)
}

// Stats returns template and part counts.
func (r *Registry) Stats() map[string]int {
	stats := map[string]int{
		"templates":  r.Len(),
		"parts":      0,
		"parameters": 0,
	}
	for _, t := range r.Templates() {
		stats["parts"] += len(t.Parts)
		stats["parameters"] += len(t.Parameters())
	}
	return stats
}
