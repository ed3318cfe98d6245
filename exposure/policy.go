package exposure

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// Scope distinguishes single-resource endpoints from list endpoints.
type Scope int

const (
	Item Scope = iota
	Collection
)

func (s Scope) String() string {
	switch s {
	case Item:
		return "item"
	case Collection:
		return "collection"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

type rule struct {
	entity reflect.Type
	scope  Scope
	method string
}

// Policy decides which verbs are callable on each entity's endpoints and
// whether primary keys are serialized. It is read-only once built.
type Policy struct {
	entities map[reflect.Type]Entity
	disabled map[rule]struct{}
	exposed  map[reflect.Type]bool
}

// Allows reports whether method may be served for the entity in scope.
// Verbs not explicitly disabled are allowed.
func (p *Policy) Allows(entity reflect.Type, scope Scope, method string) bool {
	_, denied := p.disabled[rule{entity: entity, scope: scope, method: strings.ToUpper(method)}]
	return !denied
}

// AllowedMethods filters candidates down to the verbs the policy allows.
func (p *Policy) AllowedMethods(entity reflect.Type, scope Scope, candidates ...string) []string {
	allowed := make([]string, 0, len(candidates))
	for _, m := range candidates {
		if p.Allows(entity, scope, m) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}

func (p *Policy) ExposesID(entity reflect.Type) bool {
	return p.exposed[entity]
}

func (p *Policy) Entity(entity reflect.Type) (Entity, bool) {
	e, ok := p.entities[entity]
	return e, ok
}

// Builder collects exposure rules during startup.
type Builder struct {
	entities map[reflect.Type]Entity
	order    []reflect.Type
	disabled map[rule]struct{}
	exposed  map[reflect.Type]bool
	errs     []error
}

func NewBuilder(entities []Entity) *Builder {
	b := &Builder{
		entities: make(map[reflect.Type]Entity, len(entities)),
		disabled: make(map[rule]struct{}),
		exposed:  make(map[reflect.Type]bool),
	}
	for _, e := range entities {
		if _, ok := b.entities[e.Type]; !ok {
			b.order = append(b.order, e.Type)
		}
		b.entities[e.Type] = e
	}
	return b
}

func (b *Builder) lookup(model any) (reflect.Type, bool) {
	t := TypeOf(model)
	if _, ok := b.entities[t]; !ok {
		b.errs = append(b.errs, fmt.Errorf("%v is not a mapped entity", t))
		return nil, false
	}
	return t, true
}

// Disable refuses methods on the model's endpoints of the given scope.
func (b *Builder) Disable(model any, scope Scope, methods ...string) *Builder {
	t, ok := b.lookup(model)
	if !ok {
		return b
	}
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if !knownMethods[m] {
			b.errs = append(b.errs, fmt.Errorf("cannot disable unknown HTTP method %q on %v", m, t))
			continue
		}
		b.disabled[rule{entity: t, scope: scope, method: m}] = struct{}{}
	}
	return b
}

// DisableAll refuses methods on both the item and the collection endpoints.
func (b *Builder) DisableAll(model any, methods ...string) *Builder {
	return b.Disable(model, Item, methods...).Disable(model, Collection, methods...)
}

func (b *Builder) ExposeIDs(models ...any) *Builder {
	for _, model := range models {
		if t, ok := b.lookup(model); ok {
			b.exposed[t] = true
		}
	}
	return b
}

// ExposeAllIDs exposes the primary key of every discovered entity.
func (b *Builder) ExposeAllIDs() *Builder {
	for _, t := range b.order {
		b.exposed[t] = true
	}
	return b
}

// Build freezes the collected rules. Any rule that named an unknown
// entity or method fails the build.
func (b *Builder) Build() (*Policy, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	p := &Policy{
		entities: make(map[reflect.Type]Entity, len(b.entities)),
		disabled: make(map[rule]struct{}, len(b.disabled)),
		exposed:  make(map[reflect.Type]bool, len(b.exposed)),
	}
	for t, e := range b.entities {
		p.entities[t] = e
	}
	for r := range b.disabled {
		p.disabled[r] = struct{}{}
	}
	for t, v := range b.exposed {
		p.exposed[t] = v
	}
	return p, nil
}
