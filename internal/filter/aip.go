package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/mcoot/playerroster/internal/model"
)

// Expression errors
var (
	ErrInvalidExpression     = errors.New("invalid filter expression")
	ErrUnsupportedExpression = errors.New("unsupported filter expression")
)

// declarations returns the identifiers accepted in filter expressions
func declarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent(string(FieldName), filtering.TypeString),
		filtering.DeclareIdent(string(FieldTitle), filtering.TypeString),
		filtering.DeclareIdent(string(FieldRace), filtering.TypeString),
		filtering.DeclareIdent(string(FieldProfession), filtering.TypeString),
		filtering.DeclareIdent(string(FieldExperience), filtering.TypeInt),
		filtering.DeclareIdent(string(FieldLevel), filtering.TypeInt),
		filtering.DeclareIdent(string(FieldBirthday), filtering.TypeTimestamp),
		filtering.DeclareIdent(string(FieldBanned), filtering.TypeBool),
		// bare true and false are parsed as identifiers
		filtering.DeclareIdent("true", filtering.TypeBool),
		filtering.DeclareIdent("false", filtering.TypeBool),
	)
}

// ParseExpression parses an AIP-160 filter into a Predicate.
//
// Only conjunctions of "=", ">=" and "<=" comparisons are accepted, which is
// the subset the Predicate vocabulary can express. On name and title a value
// wrapped in asterisks ("*ar*") becomes a contains match.
func ParseExpression(s string) (Predicate, error) {
	if strings.TrimSpace(s) == "" {
		return None(), nil
	}

	decls, err := declarations()
	if err != nil {
		return Predicate{}, fmt.Errorf("create declarations: %w", err)
	}

	parsed, err := filtering.ParseFilterString(s, decls)
	if err != nil {
		return Predicate{}, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return translateExpr(parsed.CheckedExpr.GetExpr())
}

func translateExpr(e *expr.Expr) (Predicate, error) {
	if e == nil {
		return None(), nil
	}

	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return Predicate{}, fmt.Errorf("%w: %T at top level", ErrUnsupportedExpression, e.ExprKind)
	}

	args := call.CallExpr.Args
	switch call.CallExpr.Function {
	case filtering.FunctionAnd:
		terms := make([]Predicate, 0, len(args))
		for _, arg := range args {
			t, err := translateExpr(arg)
			if err != nil {
				return Predicate{}, err
			}
			terms = append(terms, t)
		}
		return And(terms...), nil
	case filtering.FunctionEquals:
		return translateComparison(args, "=")
	case filtering.FunctionGreaterEquals:
		return translateComparison(args, ">=")
	case filtering.FunctionLessEquals:
		return translateComparison(args, "<=")
	}
	return Predicate{}, fmt.Errorf("%w: function %s", ErrUnsupportedExpression, call.CallExpr.Function)
}

func translateComparison(args []*expr.Expr, op string) (Predicate, error) {
	if len(args) != 2 {
		return Predicate{}, fmt.Errorf("%w: comparison requires 2 arguments", ErrInvalidExpression)
	}

	ident, ok := args[0].ExprKind.(*expr.Expr_IdentExpr)
	if !ok {
		return Predicate{}, fmt.Errorf("%w: expected identifier on the left", ErrUnsupportedExpression)
	}
	field := Field(ident.IdentExpr.Name)

	value, err := extractValue(field, args[1])
	if err != nil {
		return Predicate{}, err
	}

	switch op {
	case ">=":
		if !isOrdered(field) {
			return Predicate{}, fmt.Errorf("%w: %s is not ordered", ErrUnsupportedExpression, field)
		}
		return Range(field, value, nil), nil
	case "<=":
		if !isOrdered(field) {
			return Predicate{}, fmt.Errorf("%w: %s is not ordered", ErrUnsupportedExpression, field)
		}
		return Range(field, nil, value), nil
	}

	if s, ok := value.(string); ok && (field == FieldName || field == FieldTitle) {
		if len(s) >= 2 && strings.HasPrefix(s, "*") && strings.HasSuffix(s, "*") {
			return Contains(field, s[1:len(s)-1]), nil
		}
	}
	return Eq(field, value), nil
}

func isOrdered(f Field) bool {
	return f == FieldExperience || f == FieldLevel || f == FieldBirthday
}

// extractValue converts a literal into the Go type Match and the stores expect
func extractValue(field Field, e *expr.Expr) (any, error) {
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		switch c := kind.ConstExpr.ConstantKind.(type) {
		case *expr.Constant_StringValue:
			return stringValue(field, c.StringValue)
		case *expr.Constant_Int64Value:
			return int(c.Int64Value), nil
		case *expr.Constant_BoolValue:
			return c.BoolValue, nil
		}
		return nil, fmt.Errorf("%w: constant %T", ErrUnsupportedExpression, kind.ConstExpr.ConstantKind)
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == filtering.FunctionTimestamp && len(kind.CallExpr.Args) == 1 {
			return timestampValue(kind.CallExpr.Args[0])
		}
		return nil, fmt.Errorf("%w: function %s in value position", ErrUnsupportedExpression, kind.CallExpr.Function)
	case *expr.Expr_IdentExpr:
		switch kind.IdentExpr.Name {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%w: identifier %s in value position", ErrUnsupportedExpression, kind.IdentExpr.Name)
	}
	return nil, fmt.Errorf("%w: expected a literal value", ErrUnsupportedExpression)
}

func stringValue(field Field, s string) (any, error) {
	switch field {
	case FieldRace:
		r, err := model.ParseRace(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		return r, nil
	case FieldProfession:
		p, err := model.ParseProfession(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		return p, nil
	}
	return s, nil
}

func timestampValue(e *expr.Expr) (time.Time, error) {
	c, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: timestamp argument must be a constant", ErrInvalidExpression)
	}
	s, ok := c.ConstExpr.ConstantKind.(*expr.Constant_StringValue)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: timestamp argument must be a string", ErrInvalidExpression)
	}
	t, err := time.Parse(time.RFC3339Nano, s.StringValue)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrInvalidExpression, s.StringValue)
	}
	return t.UTC(), nil
}
