package models

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Repository provides paged CRUD access to one entity type.
type Repository[T any] struct {
	db      *gorm.DB
	schema  *schema.Schema
	columns map[string]string
}

// NewRepository inspects T with the gorm schema parser so that sort
// properties can be mapped from their JSON names to columns.
func NewRepository[T any](db *gorm.DB) (*Repository[T], error) {
	s, err := schema.Parse(new(T), &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("parse schema of %T: %w", *new(T), err)
	}
	if s.PrioritizedPrimaryField == nil {
		return nil, fmt.Errorf("entity %s has no primary key", s.Name)
	}

	columns := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		name, ok := JSONName(f)
		if !ok {
			continue
		}
		columns[name] = f.DBName
	}

	return &Repository[T]{
		db:      db,
		schema:  s,
		columns: columns,
	}, nil
}

func (r *Repository[T]) FindAll(ctx context.Context, p Pageable) (Page[T], error) {
	return r.findPage(ctx, p, nil)
}

func (r *Repository[T]) findPage(ctx context.Context, p Pageable, scope func(*gorm.DB) *gorm.DB) (Page[T], error) {
	page := Page[T]{Number: p.Page, Size: p.Size}

	orders, err := r.orderBy(p.Sort)
	if err != nil {
		return page, err
	}

	query := r.db.WithContext(ctx).Model(new(T))
	if scope != nil {
		query = scope(query)
	}
	query = query.Session(&gorm.Session{})

	// Count total after filtering
	if err := query.Count(&page.TotalElements).Error; err != nil {
		return page, fmt.Errorf("count %s: %w", r.schema.Table, err)
	}

	content := make([]T, 0, p.Size)
	if int64(p.Offset()) >= page.TotalElements {
		page.Content = content
		return page, nil
	}

	for _, o := range orders {
		query = query.Order(o)
	}
	if err := query.Offset(p.Offset()).Limit(p.Size).Find(&content).Error; err != nil {
		return page, fmt.Errorf("list %s: %w", r.schema.Table, err)
	}
	page.Content = content

	return page, nil
}

func (r *Repository[T]) orderBy(sorts []Sort) ([]clause.OrderByColumn, error) {
	pk := r.schema.PrioritizedPrimaryField.DBName
	orders := make([]clause.OrderByColumn, 0, len(sorts)+1)
	sortedByPK := false
	for _, s := range sorts {
		column, ok := r.columns[s.Property]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSortProperty, s.Property)
		}
		sortedByPK = sortedByPK || column == pk
		orders = append(orders, clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: column},
			Desc:   s.Descending,
		})
	}
	// Keep pages stable across requests.
	if !sortedByPK {
		orders = append(orders, clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: pk},
		})
	}
	return orders, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s %d: %w", r.schema.Table, id, err)
	}
	return &entity, nil
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.schema.Table, translateError(err))
	}
	return nil
}

// Replace overwrites the row with the given id, inserting it when absent.
// The id argument wins over any id carried by entity. On return entity
// holds the row as stored.
func (r *Repository[T]) Replace(ctx context.Context, id uint, entity *T) error {
	if err := r.schema.PrioritizedPrimaryField.Set(ctx, reflect.ValueOf(entity), id); err != nil {
		return fmt.Errorf("assign id to %s: %w", r.schema.Name, err)
	}
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(entity).Error; err != nil {
		return fmt.Errorf("save %s %d: %w", r.schema.Table, id, translateError(err))
	}

	var stored T
	if err := db.First(&stored, id).Error; err != nil {
		return fmt.Errorf("reload %s %d: %w", r.schema.Table, id, translateError(err))
	}
	*entity = stored
	return nil
}

func (r *Repository[T]) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %d: %w", r.schema.Table, id, translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
