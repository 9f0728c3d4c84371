package sift

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// FieldType is the declared type of a filterable field. Each type is bound to
// a parse function coercing one raw string token into the typed value.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeBool   FieldType = "bool"
	TypeTime   FieldType = "time"
)

// TimeLayout is the accepted wire format for TypeTime values.
const TimeLayout = time.RFC3339

var parsers = map[FieldType]func(string) (any, error){
	TypeString: func(raw string) (any, error) {
		return raw, nil
	},
	TypeInt: func(raw string) (any, error) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Errorf("invalid integer %q", raw)
		}
		return v, nil
	},
	TypeFloat: func(raw string) (any, error) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Errorf("invalid number %q", raw)
		}
		return v, nil
	},
	TypeBool: func(raw string) (any, error) {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Errorf("invalid boolean %q", raw)
		}
		return v, nil
	},
	TypeTime: func(raw string) (any, error) {
		v, err := time.Parse(TimeLayout, raw)
		if err != nil {
			return nil, errors.Errorf("invalid timestamp %q, expected RFC 3339", raw)
		}
		return v, nil
	},
}

// Field declares one filterable field: its external name, its declared type,
// and whether it may participate in ordering and free-text search.
type Field struct {
	Name       string
	Type       FieldType
	Orderable  bool
	Searchable bool
}

type FieldOption func(*Field)

func NotOrderable() FieldOption {
	return func(f *Field) { f.Orderable = false }
}

func NotSearchable() FieldOption {
	return func(f *Field) { f.Searchable = false }
}

// NewField declares a field. Both capability flags default to true.
func NewField(name string, typ FieldType, opts ...FieldOption) Field {
	f := Field{Name: name, Type: typ, Orderable: true, Searchable: true}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f Field) parse(raw string) (any, error) {
	parse, ok := parsers[f.Type]
	if !ok {
		return nil, NewSchemaError("field %q has unregistered type %q", f.Name, f.Type)
	}
	return parse(raw)
}
