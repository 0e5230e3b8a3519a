package phone

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"phonefixtures/internal/core/apperror"
)

// Filter is a compiled CEL predicate over a record. The expression sees
// id, country, provider, prefix, number (int) and display (string).
type Filter struct {
	expr string
	prg  cel.Program
}

var filterEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("country", cel.IntType),
		cel.Variable("provider", cel.IntType),
		cel.Variable("prefix", cel.IntType),
		cel.Variable("number", cel.IntType),
		cel.Variable("display", cel.StringType),
	)
})

// CompileFilter compiles expr. An empty expression matches every record.
func CompileFilter(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &Filter{}, nil
	}

	env, err := filterEnv()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("create filter env: %w", err))
	}

	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, apperror.NewValidation("invalid filter expression").
			WithDetail("expr", expr).
			WithDetail("error", iss.Err().Error()).
			WithCause(iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, apperror.NewValidation("filter expression must evaluate to bool").
			WithDetail("expr", expr).
			WithDetail("type", ast.OutputType().String())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, apperror.NewValidation("invalid filter expression").
			WithDetail("expr", expr).
			WithCause(err)
	}

	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Match evaluates the filter against rec.
func (f *Filter) Match(rec *PhoneRecord) (bool, error) {
	if f == nil || f.prg == nil {
		return true, nil
	}

	out, _, err := f.prg.Eval(map[string]any{
		"id":       rec.ID,
		"country":  rec.Components.Country,
		"provider": rec.Components.Provider,
		"prefix":   rec.Components.Prefix,
		"number":   rec.Components.Number,
		"display":  rec.Display,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q on id %d: %w", f.expr, rec.ID, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T", f.expr, out.Value())
	}
	return matched, nil
}

// Apply returns the records of recs matching f, in order.
func (f *Filter) Apply(recs []*PhoneRecord) ([]*PhoneRecord, error) {
	if f == nil || f.prg == nil {
		return recs, nil
	}
	out := make([]*PhoneRecord, 0, len(recs))
	for _, rec := range recs {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
