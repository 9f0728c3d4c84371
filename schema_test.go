package sift_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/theplant/sift"
)

func TestNewSchemaDeclarationErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []sift.Field
	}{
		{"no fields", nil},
		{"empty name", []sift.Field{sift.NewField("", sift.TypeInt)}},
		{"duplicate name", []sift.Field{
			sift.NewField("age", sift.TypeInt),
			sift.NewField("age", sift.TypeString),
		}},
		{"unregistered type", []sift.Field{sift.NewField("age", sift.FieldType("decimal"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sift.NewSchema(tt.fields...)
			require.Error(t, err)
			require.True(t, sift.IsSchemaError(err))
		})
	}
}

func TestMustSchemaPanics(t *testing.T) {
	require.Panics(t, func() {
		sift.MustSchema()
	})
}

func TestFieldDefaults(t *testing.T) {
	f := sift.NewField("age", sift.TypeInt)
	require.True(t, f.Orderable)
	require.True(t, f.Searchable)

	f = sift.NewField("age", sift.TypeInt, sift.NotOrderable(), sift.NotSearchable())
	require.False(t, f.Orderable)
	require.False(t, f.Searchable)
}

func TestSchemaFieldsOrderAndCapabilities(t *testing.T) {
	s := sift.MustSchema(
		sift.NewField("id", sift.TypeInt, sift.NotSearchable()),
		sift.NewField("name", sift.TypeString),
		sift.NewField("bio", sift.TypeString, sift.NotOrderable()),
	)

	names := make([]string, 0, 3)
	for _, f := range s.Fields() {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"id", "name", "bio"}, names)

	searchable := s.SearchableFields()
	require.Len(t, searchable, 2)
	require.Equal(t, "name", searchable[0].Name)
	require.Equal(t, "bio", searchable[1].Name)
}

func TestValidateScalars(t *testing.T) {
	s := sift.MustSchema(
		sift.NewField("age", sift.TypeInt),
		sift.NewField("name", sift.TypeString),
		sift.NewField("score", sift.TypeFloat),
		sift.NewField("active", sift.TypeBool),
		sift.NewField("created_at", sift.TypeTime),
	)

	values, err := s.Validate([]sift.Lookup{
		{Field: "age", Op: sift.OpGt, RawValue: "18"},
		{Field: "name", Op: sift.OpEq, RawValue: "Alice"},
		{Field: "score", Op: sift.OpLte, RawValue: "4.5"},
		{Field: "active", Op: sift.OpEq, RawValue: "true"},
		{Field: "created_at", Op: sift.OpGte, RawValue: "2024-01-02T15:04:05Z"},
	})
	require.NoError(t, err)
	require.Equal(t, 18, values[0])
	require.Equal(t, "Alice", values[1])
	require.Equal(t, 4.5, values[2])
	require.Equal(t, true, values[3])
	require.Equal(t, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), values[4])
}

func TestValidateMembershipSplitsList(t *testing.T) {
	s := sift.MustSchema(sift.NewField("age", sift.TypeInt))

	values, err := s.Validate([]sift.Lookup{
		{Field: "age", Op: sift.OpIn, RawValue: "1,2,3"},
	})
	require.NoError(t, err)
	require.Equal(t, []any{1, 2, 3}, values[0])

	values, err = s.Validate([]sift.Lookup{
		{Field: "age", Op: sift.OpNotIn, RawValue: "7"},
	})
	require.NoError(t, err)
	require.Equal(t, []any{7}, values[0])
}

func TestValidateMembershipBadToken(t *testing.T) {
	s := sift.MustSchema(sift.NewField("age", sift.TypeInt))

	_, err := s.Validate([]sift.Lookup{
		{Field: "age", Op: sift.OpIn, RawValue: "1,2,x"},
	})
	requireInputError(t, err, sift.KindInvalidValue, "age")
}

func TestValidateBatchesCoercionFailures(t *testing.T) {
	s := sift.MustSchema(
		sift.NewField("age", sift.TypeInt),
		sift.NewField("created_at", sift.TypeTime),
		sift.NewField("name", sift.TypeString),
	)

	_, err := s.Validate([]sift.Lookup{
		{Field: "age", Op: sift.OpEq, RawValue: "abc"},
		{Field: "created_at", Op: sift.OpGt, RawValue: "not-a-time"},
		{Field: "name", Op: sift.OpEq, RawValue: "fine"},
	})
	require.Error(t, err)
	inputErrs, ok := sift.AsInputErrors(err)
	require.True(t, ok)
	require.Len(t, inputErrs, 2)
	require.Equal(t, "age", inputErrs[0].Location)
	require.Equal(t, sift.KindInvalidValue, inputErrs[0].Kind)
	require.Equal(t, "created_at", inputErrs[1].Location)
	require.Equal(t, sift.KindInvalidValue, inputErrs[1].Kind)
}

func TestValidateDefects(t *testing.T) {
	s := sift.MustSchema(sift.NewField("age", sift.TypeInt))

	_, err := s.Validate([]sift.Lookup{{Field: "salary", Op: sift.OpEq, RawValue: "1"}})
	require.True(t, sift.IsSchemaError(err))

	_, err = s.Validate([]sift.Lookup{{Field: "age", RawValue: "1"}})
	require.True(t, sift.IsSchemaError(err))
}
