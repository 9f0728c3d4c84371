package gormsift

import (
	"reflect"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func parseSchema(db *gorm.DB, model any) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrap(err, "parse schema for model")
	}
	return stmt.Schema, nil
}

// modelFor returns a parseable value of T, allocating when T is a pointer type.
func modelFor[T any]() any {
	var t T
	rt := reflect.TypeOf(t)
	if rt != nil && rt.Kind() == reflect.Ptr {
		return reflect.New(rt.Elem()).Interface()
	}
	return t
}
