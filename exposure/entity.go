package exposure

import (
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm/schema"

	"github.com/lucas/ecommerce/models"
)

// Entity describes a mapped type as found by the schema parser.
type Entity struct {
	Type  reflect.Type
	Name  string
	Table string
	// IDField is the JSON name of the primary key.
	IDField string
}

// Discover parses every model with the gorm schema parser. Any model that
// cannot be parsed, or whose primary key is missing or not serialized,
// fails the whole discovery.
func Discover(namer schema.Namer, mapped ...any) ([]Entity, error) {
	cache := &sync.Map{}
	entities := make([]Entity, 0, len(mapped))
	seen := make(map[reflect.Type]bool, len(mapped))

	for _, model := range mapped {
		s, err := schema.Parse(model, cache, namer)
		if err != nil {
			return nil, fmt.Errorf("inspect %T: %w", model, err)
		}
		pk := s.PrioritizedPrimaryField
		if pk == nil {
			return nil, fmt.Errorf("inspect %T: entity %s has no primary key", model, s.Name)
		}
		idField, ok := models.JSONName(pk)
		if !ok {
			return nil, fmt.Errorf("inspect %T: primary key of %s is not serialized", model, s.Name)
		}
		if seen[s.ModelType] {
			continue
		}
		seen[s.ModelType] = true

		entities = append(entities, Entity{
			Type:    s.ModelType,
			Name:    s.Name,
			Table:   s.Table,
			IDField: idField,
		})
	}
	return entities, nil
}

// TypeOf returns the struct type behind a model value or pointer.
func TypeOf(model any) reflect.Type {
	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
