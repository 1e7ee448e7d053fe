package tphcl

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/gocty"
)

// EvalString evaluates an expression to a Go string. The second return value
// reports whether the attribute was present at all: a nil expression or an
// explicit null both count as absent.
func EvalString(expr hcl.Expression, ctx *hcl.EvalContext) (string, bool, error) {
	if expr == nil {
		return "", false, nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return "", true, diags
	}
	if val.IsNull() {
		return "", false, nil
	}
	var out string
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return "", true, fmt.Errorf("expected a string: %w", err)
	}
	return out, true, nil
}

// EvalInt evaluates an expression to a Go int, rejecting fractional numbers.
func EvalInt(expr hcl.Expression, ctx *hcl.EvalContext) (int, bool, error) {
	if expr == nil {
		return 0, false, nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return 0, true, diags
	}
	if val.IsNull() {
		return 0, false, nil
	}
	var out int
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return 0, true, fmt.Errorf("expected a whole number: %w", err)
	}
	return out, true, nil
}

// EvalBool evaluates an expression to a Go bool.
func EvalBool(expr hcl.Expression, ctx *hcl.EvalContext) (bool, bool, error) {
	if expr == nil {
		return false, false, nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return false, true, diags
	}
	if val.IsNull() {
		return false, false, nil
	}
	var out bool
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return false, true, fmt.Errorf("expected a boolean: %w", err)
	}
	return out, true, nil
}

// EvalDuration evaluates an expression holding a Go duration string such as
// "250ms" or "1m30s".
func EvalDuration(expr hcl.Expression, ctx *hcl.EvalContext) (time.Duration, bool, error) {
	raw, ok, err := EvalString(expr, ctx)
	if err != nil || !ok {
		return 0, ok, err
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, true, fmt.Errorf("invalid duration '%s': %w", raw, err)
	}
	return d, true, nil
}
