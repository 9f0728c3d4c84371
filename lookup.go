package sift

import (
	"net/url"
	"strings"
)

// Op is one of the fixed comparison, membership, and pattern-match operators
// a lookup key may carry as its suffix.
type Op string

const (
	OpEq     Op = "eq"
	OpNeq    Op = "neq"
	OpGt     Op = "gt"
	OpGte    Op = "gte"
	OpLt     Op = "lt"
	OpLte    Op = "lte"
	OpIn     Op = "in"
	OpNotIn  Op = "not_in"
	OpRegexp Op = "regexp"
)

// LookupDelimiter separates the field name from the operator suffix in an
// external parameter key, e.g. "age__gte".
const LookupDelimiter = "__"

var ops = map[string]Op{
	"eq":     OpEq,
	"neq":    OpNeq,
	"gt":     OpGt,
	"gte":    OpGte,
	"lt":     OpLt,
	"lte":    OpLte,
	"in":     OpIn,
	"not_in": OpNotIn,
	"regexp": OpRegexp,
}

// Lookup is one parsed (field, operator, raw value) triple derived from one
// external parameter key. It lives only until it is compiled into a predicate.
type Lookup struct {
	Field    string
	Op       Op
	RawValue string
}

// ParseLookup splits an external parameter key into a field name and an
// operator. A key with exactly one delimiter resolves its suffix against the
// operator table before the field is checked against the schema; any other
// shape is an equality lookup on the whole key. Parse failures are meant to
// fail fast: the caller stops at the first bad key.
func ParseLookup(s *Schema, key string, value string) (Lookup, error) {
	field, op := key, OpEq
	if parts := strings.Split(key, LookupDelimiter); len(parts) == 2 {
		resolved, ok := ops[parts[1]]
		if !ok {
			return Lookup{}, NewUnknownOperatorError(parts[1])
		}
		field, op = parts[0], resolved
	}
	if _, ok := s.Field(field); !ok {
		return Lookup{}, NewUnknownFieldError(field)
	}
	return Lookup{Field: field, Op: op, RawValue: value}, nil
}

// LastValue returns the last value observed for key. Repeated occurrences of
// the same key are resolved here: the last one wins.
func LastValue(params url.Values, key string) string {
	vs := params[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}
