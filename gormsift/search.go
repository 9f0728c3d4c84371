package gormsift

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/theplant/sift"
)

// searchAlias names the ranking subquery joined onto the primary query.
const searchAlias = "search_rank"

// Search ranks rows by similarity(concat(searchable columns), query) and
// appends that score as the first ordering term. similarity() is a capability
// of the store (postgres pg_trgm); the compiler only references it. An absent
// or empty search parameter is a no-op, as is a schema with nothing
// searchable.
func (c *Compiler[T]) Search() *Compiler[T] {
	if c.err != nil {
		return c
	}

	query := sift.LastValue(c.params, c.opts.SearchParam)
	if query == "" {
		return c
	}

	searchable := c.schema.SearchableFields()
	if len(searchable) == 0 {
		return c
	}

	pk := c.model.PrioritizedPrimaryField
	if pk == nil {
		c.err = sift.NewSchemaError("model %s has no primary key for search ranking", c.model.Name)
		return c
	}

	columns := lo.Map(searchable, func(f sift.Field, _ int) string {
		return fmt.Sprintf("%q", c.model.FieldsByDBName[f.Name].DBName)
	})

	ranked := c.db.Session(&gorm.Session{NewDB: true}).
		Model(modelFor[T]()).
		Select(fmt.Sprintf("%q AS pk, similarity(concat(%s), ?) AS score", pk.DBName, strings.Join(columns, ", ")), query)

	c.query = c.query.
		Joins(fmt.Sprintf("JOIN (?) AS %s ON %s.pk = %q.%q", searchAlias, searchAlias, c.model.Table, pk.DBName), ranked).
		Order(fmt.Sprintf("%s.score DESC", searchAlias))
	return c
}
