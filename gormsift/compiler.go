package gormsift

import (
	"net/url"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormschema "gorm.io/gorm/schema"

	"github.com/theplant/sift"
)

// Compiler turns one request's flat key/value parameters into a gorm query
// for T: typed predicates, similarity-ranked search, ordering, and offset or
// limit pagination, in that fixed order. One instance serves exactly one
// request and owns its query for that request's duration; the compiler never
// executes the query itself.
type Compiler[T any] struct {
	db         *gorm.DB
	schema     *sift.Schema
	params     url.Values
	opts       Options
	model      *gormschema.Schema
	pagination sift.Pagination

	query *gorm.DB
	err   error
}

// New validates declarations once, at construction: db and schema must be
// present and every schema field must resolve to a column of T's parsed gorm
// model, else a *sift.SchemaError. Pagination bounds are checked here too, so
// a bad page/per_page fails before any stage runs.
func New[T any](db *gorm.DB, s *sift.Schema, params url.Values, opts ...Option) (*Compiler[T], error) {
	if db == nil {
		return nil, sift.NewSchemaError("db is required")
	}
	if s == nil {
		return nil, sift.NewSchemaError("filter schema is required")
	}

	o := Options{
		OrderingParam:   DefaultOrderingParam,
		SearchParam:     DefaultSearchParam,
		DefaultOrdering: DefaultOrdering,
	}
	for _, opt := range opts {
		opt(&o)
	}

	model, err := parseSchema(db, modelFor[T]())
	if err != nil {
		return nil, err
	}
	for _, f := range s.Fields() {
		if _, ok := model.FieldsByDBName[f.Name]; !ok {
			return nil, sift.NewSchemaError("field %q has no column on model %s", f.Name, model.Name)
		}
	}

	pagination, err := sift.NewPagination(params)
	if err != nil {
		return nil, err
	}

	return &Compiler[T]{
		db:         db,
		schema:     s,
		params:     params,
		opts:       o,
		model:      model,
		pagination: pagination,
		query:      db.Model(modelFor[T]()),
	}, nil
}

// UseQuery swaps in a caller-prepared query as the base the stages amend.
func (c *Compiler[T]) UseQuery(query *gorm.DB) *Compiler[T] {
	c.query = query
	return c
}

// Filter parses every non-reserved key into a lookup, coerces values against
// the schema, and conjoins the resulting predicates. Parsing fails fast on the
// first bad key; coercion failures are batched across fields.
func (c *Compiler[T]) Filter() *Compiler[T] {
	if c.err != nil {
		return c
	}

	lookups, err := c.parseLookups()
	if err != nil {
		c.err = err
		return c
	}

	values, err := c.schema.Validate(lookups)
	if err != nil {
		c.err = err
		return c
	}

	exprs := make([]clause.Expression, 0, len(lookups))
	for i, l := range lookups {
		expr, err := buildPredicate(l.Op, c.column(l.Field), values[i])
		if err != nil {
			c.err = err
			return c
		}
		exprs = append(exprs, expr)
	}
	if expr := combineExprs(exprs...); expr != nil {
		c.query = c.query.Where(expr)
	}
	return c
}

// Order applies the ordering parameter, or the configured default when it is
// absent. A leading "-" orders descending, a leading "+" ascending, no sign
// ascending. The field must be declared and orderable. When Search ran, the
// ranking score stays the primary sort key and this ordering breaks ties.
func (c *Compiler[T]) Order() *Compiler[T] {
	if c.err != nil {
		return c
	}

	raw := sift.LastValue(c.params, c.opts.OrderingParam)
	if raw == "" {
		raw = c.opts.DefaultOrdering
	}

	name, desc := raw, false
	switch {
	case strings.HasPrefix(raw, "-"):
		name, desc = raw[1:], true
	case strings.HasPrefix(raw, "+"):
		name = raw[1:]
	}

	f, ok := c.schema.Field(name)
	if !ok {
		c.err = sift.NewUnknownOrderingFieldError(name)
		return c
	}
	if !f.Orderable {
		c.err = sift.NewOrderingNotPermittedError(name)
		return c
	}

	c.query = c.query.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{
		Column: c.column(name),
		Desc:   desc,
	}}})
	return c
}

// Paginate applies offset = page * per_page and limit = per_page.
func (c *Compiler[T]) Paginate() *Compiler[T] {
	if c.err != nil {
		return c
	}
	c.query = c.query.Offset(c.pagination.Offset()).Limit(c.pagination.Limit())
	return c
}

// Full runs the whole pipeline: Filter, Search, Order, Paginate.
func (c *Compiler[T]) Full() *Compiler[T] {
	return c.Filter().Search().Order().Paginate()
}

// Query returns the accumulated query for external execution, or the first
// error any stage hit.
func (c *Compiler[T]) Query() (*gorm.DB, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.query, nil
}

// Pagination returns the request's validated pagination state.
func (c *Compiler[T]) Pagination() sift.Pagination {
	return c.pagination
}

// Response wraps externally executed results into the response envelope.
func (c *Compiler[T]) Response(results []T) *sift.Page[T] {
	return sift.NewPage(c.pagination, results)
}

func (c *Compiler[T]) parseLookups() ([]sift.Lookup, error) {
	reserved := map[string]bool{
		c.opts.OrderingParam: true,
		c.opts.SearchParam:   true,
		sift.PageParam:       true,
		sift.PerPageParam:    true,
	}

	// Sorted iteration keeps compilation deterministic for identical params.
	keys := lo.Keys(c.params)
	sort.Strings(keys)

	lookups := make([]sift.Lookup, 0, len(keys))
	for _, key := range keys {
		if reserved[key] {
			continue
		}
		l, err := sift.ParseLookup(c.schema, key, sift.LastValue(c.params, key))
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, nil
}

func (c *Compiler[T]) column(name string) clause.Column {
	// Presence in FieldsByDBName is checked at construction.
	return clause.Column{Table: clause.CurrentTable, Name: c.model.FieldsByDBName[name].DBName}
}
