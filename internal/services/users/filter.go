package usersvc

import (
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/rzbill/rolo/internal/store"
)

// listFilter evaluates a CEL expression against cached records.
type listFilter struct {
	prog    cel.Program
	enabled bool
}

// newListFilter compiles a CEL expression over the record fields id,
// display_name, region, and created_ms. Empty expression means no filter.
func newListFilter(expr string) (*listFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &listFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("display_name", cel.StringType),
		cel.Variable("region", cel.StringType),
		cel.Variable("created_ms", cel.IntType),
	)
	if err != nil {
		return nil, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return nil, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return nil, err
	}
	return &listFilter{prog: prog, enabled: true}, nil
}

// Eval returns true if the record matches. Evaluation errors count as
// no-match.
func (f *listFilter) Eval(rec store.Record) bool {
	if f == nil || !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"id":           rec.ID,
		"display_name": rec.DisplayName,
		"region":       rec.Region,
		"created_ms":   rec.CreatedAt.UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
