package sift_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theplant/sift"
)

var testSchema = sift.MustSchema(
	sift.NewField("id", sift.TypeInt, sift.NotSearchable()),
	sift.NewField("name", sift.TypeString),
	sift.NewField("age", sift.TypeInt, sift.NotSearchable()),
)

func requireInputError(t *testing.T, err error, kind sift.ErrorKind, location string) {
	t.Helper()
	require.Error(t, err)
	inputErrs, ok := sift.AsInputErrors(err)
	require.True(t, ok, "expected input errors, got %v", err)
	require.Len(t, inputErrs, 1)
	require.Equal(t, kind, inputErrs[0].Kind)
	require.Equal(t, location, inputErrs[0].Location)
}

func TestParseLookup(t *testing.T) {
	tests := []struct {
		key  string
		want sift.Lookup
	}{
		{"age", sift.Lookup{Field: "age", Op: sift.OpEq, RawValue: "18"}},
		{"age__neq", sift.Lookup{Field: "age", Op: sift.OpNeq, RawValue: "18"}},
		{"age__gt", sift.Lookup{Field: "age", Op: sift.OpGt, RawValue: "18"}},
		{"age__gte", sift.Lookup{Field: "age", Op: sift.OpGte, RawValue: "18"}},
		{"age__lt", sift.Lookup{Field: "age", Op: sift.OpLt, RawValue: "18"}},
		{"age__lte", sift.Lookup{Field: "age", Op: sift.OpLte, RawValue: "18"}},
		{"age__in", sift.Lookup{Field: "age", Op: sift.OpIn, RawValue: "18"}},
		{"age__not_in", sift.Lookup{Field: "age", Op: sift.OpNotIn, RawValue: "18"}},
		{"name__regexp", sift.Lookup{Field: "name", Op: sift.OpRegexp, RawValue: "18"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			l, err := sift.ParseLookup(testSchema, tt.key, "18")
			require.NoError(t, err)
			require.Equal(t, tt.want, l)
		})
	}
}

func TestParseLookupUnknownOperator(t *testing.T) {
	_, err := sift.ParseLookup(testSchema, "age__bogus", "1")
	requireInputError(t, err, sift.KindUnknownOperator, "bogus")
}

func TestParseLookupOperatorCheckedBeforeField(t *testing.T) {
	// Both the operator and the field are unknown; the operator is reported.
	_, err := sift.ParseLookup(testSchema, "nosuchfield__bogus", "1")
	requireInputError(t, err, sift.KindUnknownOperator, "bogus")
}

func TestParseLookupUnknownField(t *testing.T) {
	_, err := sift.ParseLookup(testSchema, "unknown_field__eq", "1")
	requireInputError(t, err, sift.KindUnknownField, "unknown_field")

	_, err = sift.ParseLookup(testSchema, "unknown_field", "1")
	requireInputError(t, err, sift.KindUnknownField, "unknown_field")
}

func TestParseLookupExtraDelimiterIsEqualityKey(t *testing.T) {
	// More than one delimiter does not parse as (field, operator); the whole
	// key is treated as an equality lookup and fails field resolution.
	_, err := sift.ParseLookup(testSchema, "age__gt__lt", "1")
	requireInputError(t, err, sift.KindUnknownField, "age__gt__lt")
}

func TestLastValue(t *testing.T) {
	params := url.Values{"age": {"18", "21"}}
	require.Equal(t, "21", sift.LastValue(params, "age"))
	require.Equal(t, "", sift.LastValue(params, "name"))
}
