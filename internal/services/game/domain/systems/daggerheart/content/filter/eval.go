package filter

import (
	"fmt"
	"strings"

	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

func evaluate(e *expr.Expr, resolve Resolver) (bool, error) {
	call, ok := e.GetExprKind().(*expr.Expr_CallExpr)
	if !ok {
		return false, fmt.Errorf("unsupported expression type: %T", e.GetExprKind())
	}
	args := call.CallExpr.GetArgs()
	switch fn := call.CallExpr.GetFunction(); fn {
	case "AND", "_&&_":
		if len(args) != 2 {
			return false, fmt.Errorf("AND requires 2 arguments")
		}
		left, err := evaluate(args[0], resolve)
		if err != nil || !left {
			return false, err
		}
		return evaluate(args[1], resolve)
	case "OR", "_||_":
		if len(args) != 2 {
			return false, fmt.Errorf("OR requires 2 arguments")
		}
		left, err := evaluate(args[0], resolve)
		if err != nil || left {
			return left, err
		}
		return evaluate(args[1], resolve)
	case "NOT", "!_":
		if len(args) != 1 {
			return false, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := evaluate(args[0], resolve)
		return !inner, err
	case "=", "!=", "<", "<=", ">", ">=":
		return compare(fn, args, resolve)
	default:
		return false, fmt.Errorf("unsupported function: %s", fn)
	}
}

func compare(op string, args []*expr.Expr, resolve Resolver) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("comparison requires 2 arguments")
	}
	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return false, fmt.Errorf("expected identifier, got %T", args[0].GetExprKind())
	}
	name := ident.IdentExpr.GetName()
	left, ok := resolve(name)
	if !ok {
		return false, fmt.Errorf("unknown field: %s", name)
	}
	constant, ok := args[1].GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return false, fmt.Errorf("expected constant, got %T", args[1].GetExprKind())
	}

	cmp, err := order(left, constant.ConstExpr)
	if err != nil {
		return false, fmt.Errorf("field %s: %w", name, err)
	}
	switch op {
	case "=":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	default:
		return cmp >= 0, nil
	}
}

// order returns -1, 0 or 1 comparing a resolved value with a constant.
func order(left any, right *expr.Constant) (int, error) {
	if l, ok := left.(string); ok {
		r, ok := right.GetConstantKind().(*expr.Constant_StringValue)
		if !ok {
			return 0, fmt.Errorf("type mismatch: string vs %T", right.GetConstantKind())
		}
		return strings.Compare(fold(l), fold(r.StringValue)), nil
	}

	l, ok := number(left)
	if !ok {
		return 0, fmt.Errorf("unsupported value type: %T", left)
	}
	var r float64
	switch kind := right.GetConstantKind().(type) {
	case *expr.Constant_Int64Value:
		r = float64(kind.Int64Value)
	case *expr.Constant_Uint64Value:
		r = float64(kind.Uint64Value)
	case *expr.Constant_DoubleValue:
		r = kind.DoubleValue
	default:
		return 0, fmt.Errorf("type mismatch: number vs %T", kind)
	}
	switch {
	case l < r:
		return -1, nil
	case l > r:
		return 1, nil
	}
	return 0, nil
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
