// Package sift turns flat, untyped key/value request parameters into
// validated building blocks for a read query: typed field filters with
// per-field operators, ordering, free-text search eligibility, and
// offset/limit pagination. Store-specific compilation lives in gormsift.
package sift

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Schema is the declarative, per-resource definition of filterable fields.
// It is immutable after construction and safe to share across requests.
type Schema struct {
	fields []Field
	byName map[string]Field
}

// NewSchema builds a schema from field declarations, rejecting empty or
// duplicate names and unregistered types.
func NewSchema(fields ...Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, NewSchemaError("schema requires at least one field")
	}
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		byName: make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, NewSchemaError("field name must not be empty")
		}
		if _, ok := parsers[f.Type]; !ok {
			return nil, NewSchemaError("field %q has unregistered type %q", f.Name, f.Type)
		}
		if _, ok := s.byName[f.Name]; ok {
			return nil, NewSchemaError("duplicate field %q", f.Name)
		}
		s.fields = append(s.fields, f)
		s.byName[f.Name] = f
	}
	return s, nil
}

// MustSchema is NewSchema for schemas declared at startup.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Fields returns the declarations in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// SearchableFields returns the fields participating in free-text ranking.
func (s *Schema) SearchableFields() []Field {
	return lo.Filter(s.fields, func(f Field, _ int) bool {
		return f.Searchable
	})
}

// Validate coerces each lookup's raw value into its field's declared type.
// Membership operators comma-split the raw value and coerce every token,
// yielding a []any. The returned slice is index-aligned with lookups.
//
// Coercion failures across lookups are batched into one InputErrors value,
// unlike lookup parsing which fails fast. A lookup naming a field outside the
// schema or carrying no operator is a defect in the caller, not request input.
func (s *Schema) Validate(lookups []Lookup) ([]any, error) {
	values := make([]any, len(lookups))
	var inputErrs InputErrors
	for i, l := range lookups {
		f, ok := s.byName[l.Field]
		if !ok {
			return nil, NewSchemaError("validation requested for undeclared field %q", l.Field)
		}
		if l.Op == "" {
			return nil, NewSchemaError("lookup on field %q has no operator context", l.Field)
		}
		v, err := coerce(f, l)
		if err != nil {
			if IsSchemaError(err) {
				return nil, err
			}
			inputErrs = append(inputErrs, NewInvalidValueError(f.Name, err.Error()))
			continue
		}
		values[i] = v
	}
	if len(inputErrs) > 0 {
		return nil, inputErrs
	}
	return values, nil
}

func coerce(f Field, l Lookup) (any, error) {
	if l.Op == OpIn || l.Op == OpNotIn {
		tokens := strings.Split(l.RawValue, ",")
		vals := make([]any, len(tokens))
		for i, token := range tokens {
			v, err := f.parse(token)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return vals, nil
	}
	return f.parse(l.RawValue)
}
