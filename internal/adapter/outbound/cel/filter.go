// Package cel provides a CEL-based filter for fetched course collections.
// Filter expressions run client-side after a fetch; they never reach the
// backend.
package cel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/unideck/unideck/internal/domain/course"
)

// maxExpressionLength is the maximum allowed length for filter expressions.
const maxExpressionLength = 1024

// maxEvalCost caps CEL runtime cost per course evaluation.
const maxEvalCost = 100_000

// evalTimeout bounds the evaluation of one expression over one collection.
const evalTimeout = 5 * time.Second

// Filter compiles and evaluates CEL expressions over courses.
type Filter struct {
	env *cel.Env
}

// NewFilter creates a Filter whose environment exposes one variable per
// course field: id (int), title, description, category, instructor, status,
// duration (string), rating, price (double), and priced (bool, false when
// the course has no price).
func NewFilter() (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("title", cel.StringType),
		cel.Variable("description", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("instructor", cel.StringType),
		cel.Variable("status", cel.StringType),
		cel.Variable("duration", cel.StringType),
		cel.Variable("rating", cel.DoubleType),
		cel.Variable("price", cel.DoubleType),
		cel.Variable("priced", cel.BoolType),
	)
	if err != nil {
		return nil, fmt.Errorf("create filter environment: %w", err)
	}
	return &Filter{env: env}, nil
}

// Compile parses and type-checks a filter expression.
// The expression must produce a boolean.
func (f *Filter) Compile(expression string) (cel.Program, error) {
	if expression == "" {
		return nil, errors.New("filter expression is empty")
	}
	if len(expression) > maxExpressionLength {
		return nil, fmt.Errorf("filter expression too long: %d characters (max %d)",
			len(expression), maxExpressionLength)
	}

	ast, issues := f.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter expression must produce a boolean, got %s", ast.OutputType())
	}

	prg, err := f.env.Program(ast,
		cel.EvalOptions(cel.OptOptimize),
		cel.CostLimit(maxEvalCost),
	)
	if err != nil {
		return nil, fmt.Errorf("program creation failed: %w", err)
	}
	return prg, nil
}

// Apply returns the courses for which the expression evaluates to true,
// preserving input order.
func (f *Filter) Apply(ctx context.Context, expression string, courses []course.Course) ([]course.Course, error) {
	prg, err := f.Compile(expression)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, evalTimeout)
	defer cancel()

	kept := make([]course.Course, 0, len(courses))
	for _, crs := range courses {
		result, _, err := prg.ContextEval(ctx, activation(crs))
		if err != nil {
			return nil, fmt.Errorf("evaluate filter for course %d: %w", crs.ID, err)
		}
		match, ok := result.Value().(bool)
		if !ok {
			return nil, fmt.Errorf("filter did not return a boolean, got %T", result.Value())
		}
		if match {
			kept = append(kept, crs)
		}
	}
	return kept, nil
}

// activation maps one course onto the filter variables.
func activation(crs course.Course) map[string]any {
	price := 0.0
	priced := false
	if crs.Price != nil {
		price = *crs.Price
		priced = true
	}
	return map[string]any{
		"id":          int64(crs.ID),
		"title":       crs.Title,
		"description": crs.Description,
		"category":    crs.Category,
		"instructor":  crs.Instructor,
		"status":      string(crs.Status),
		"duration":    crs.Duration,
		"rating":      crs.Rating,
		"price":       price,
		"priced":      priced,
	}
}
