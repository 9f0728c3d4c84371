package gormsift

import (
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/theplant/sift"
)

// predicateBuilders dispatches an operator to the clause expression it
// compiles to. Membership operators receive the []any produced by coercion;
// everything else receives a scalar of the field's declared type.
var predicateBuilders = map[sift.Op]func(column clause.Column, value any) clause.Expression{
	sift.OpEq: func(column clause.Column, value any) clause.Expression {
		return clause.Eq{Column: column, Value: value}
	},
	sift.OpNeq: func(column clause.Column, value any) clause.Expression {
		return clause.Neq{Column: column, Value: value}
	},
	sift.OpGt: func(column clause.Column, value any) clause.Expression {
		return clause.Gt{Column: column, Value: value}
	},
	sift.OpGte: func(column clause.Column, value any) clause.Expression {
		return clause.Gte{Column: column, Value: value}
	},
	sift.OpLt: func(column clause.Column, value any) clause.Expression {
		return clause.Lt{Column: column, Value: value}
	},
	sift.OpLte: func(column clause.Column, value any) clause.Expression {
		return clause.Lte{Column: column, Value: value}
	},
	sift.OpIn: func(column clause.Column, value any) clause.Expression {
		values, _ := value.([]any)
		return clause.IN{Column: column, Values: values}
	},
	sift.OpNotIn: func(column clause.Column, value any) clause.Expression {
		values, _ := value.([]any)
		return clause.Not(clause.IN{Column: column, Values: values})
	},
	sift.OpRegexp: func(column clause.Column, value any) clause.Expression {
		return clause.Expr{SQL: "? ~ ?", Vars: []any{column, value}}
	},
}

func buildPredicate(op sift.Op, column clause.Column, value any) (clause.Expression, error) {
	build, ok := predicateBuilders[op]
	if !ok {
		return nil, errors.Errorf("no predicate builder for operator %q", op)
	}
	return build(column, value), nil
}

// combineExprs conjoins predicates; there is no disjunction or grouping.
func combineExprs(exprs ...clause.Expression) clause.Expression {
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return clause.And(exprs...)
	}
}
