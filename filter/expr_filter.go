package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprFilter represents a compiled expr filter.
type ExprFilter struct {
	program *vm.Program
	expr    string
}

// staticEnv holds the helper functions available at compile time. The
// entry-specific values are bound per evaluation.
func staticEnv() map[string]interface{} {
	return map[string]interface{}{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// CompileExprFilter compiles an expr filter expression.
func CompileExprFilter(expression string) (*ExprFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty filter expression",
			Position:   -1,
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(staticEnv()),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Position:   -1,
			Err:        err,
		}
	}

	return &ExprFilter{
		program: program,
		expr:    expression,
	}, nil
}

// Evaluate evaluates the filter against an entry.
func (f *ExprFilter) Evaluate(entry EntryInfo) bool {
	env := map[string]interface{}{
		"Entry": entry,

		// Entry list helpers
		"hasDrop": func(drop string) bool {
			for _, d := range entry.Drops {
				if strings.EqualFold(d, drop) {
					return true
				}
			}
			return false
		},
		"foundIn": func(location string) bool {
			for _, loc := range entry.CommonLocations {
				if strings.Contains(strings.ToLower(loc), strings.ToLower(location)) {
					return true
				}
			}
			return false
		},
		"isCategory": func(category string) bool {
			return strings.EqualFold(entry.Category, category)
		},

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,

		// Direct entry properties for convenience
		"ID":              entry.ID,
		"Name":            entry.Name,
		"Category":        entry.Category,
		"Description":     entry.Description,
		"CommonLocations": entry.CommonLocations,
		"Drops":           entry.Drops,
		"HeartsRecovered": entry.HeartsRecovered,
		"CookingEffect":   entry.CookingEffect,
		"Attack":          entry.Attack,
		"Defense":         entry.Defense,
		"Food":            entry.Food,
		"MasterMode":      entry.MasterMode,
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		// Skip entries the expression cannot be evaluated against.
		return false
	}

	if boolResult, ok := result.(bool); ok {
		return boolResult
	}
	return false
}

// String returns the original expression.
func (f *ExprFilter) String() string {
	return f.expr
}

// CreateExprFilter creates a filter function from an expression.
func CreateExprFilter(expression string) (func(EntryInfo) bool, error) {
	filter, err := CompileExprFilter(expression)
	if err != nil {
		return nil, err
	}

	return func(entry EntryInfo) bool {
		return filter.Evaluate(entry)
	}, nil
}
