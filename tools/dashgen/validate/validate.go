// Package validate checks generated PromQL against the metrics cardmarket
// exports.
package validate

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors fail generation; warnings do
// not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there were no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// rateFuncs turn a counter into something worth plotting.
var rateFuncs = []string{"rate", "irate", "increase", "resets"}

// Expr parses one expression and checks every selector names a known metric.
// A counter selected without a rate function is a warning.
func Expr(expr string, known map[string]bool) Result {
	var res Result
	if strings.TrimSpace(expr) == "" {
		res.Warnings = append(res.Warnings, "empty expression")
		return res
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("parsing %q: %v", expr, err))
		return res
	}

	parser.Inspect(node, func(n parser.Node, path []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if !known[vs.Name] {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown metric %q in %q", vs.Name, expr))
		}
		if strings.HasSuffix(vs.Name, "_total") && !underRate(path) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("counter %q used without a rate function in %q", vs.Name, expr))
		}
		return nil
	})
	return res
}

func underRate(path []parser.Node) bool {
	for _, n := range path {
		if call, ok := n.(*parser.Call); ok && slices.Contains(rateFuncs, call.Func.Name) {
			return true
		}
	}
	return false
}

// Exprs validates every expression.
func Exprs(exprs []string, known map[string]bool) Result {
	var res Result
	for _, e := range exprs {
		res.merge(Expr(e, known))
	}
	return res
}

// Dashboard validates the query expression of every panel target.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	data, err := json.Marshal(dash)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("encoding dashboard: %v", err)}}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{Errors: []string{fmt.Sprintf("decoding dashboard: %v", err)}}
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		return Result{Warnings: []string{"dashboard has no query expressions"}}
	}
	return Exprs(exprs, known)
}

// collectExprs walks decoded JSON and returns every string stored under an
// "expr" key.
func collectExprs(v any, out []string) []string {
	switch t := v.(type) {
	case map[string]any:
		if s, ok := t["expr"].(string); ok {
			out = append(out, s)
		}
		for k, child := range t {
			if k == "expr" {
				continue
			}
			out = collectExprs(child, out)
		}
	case []any:
		for _, child := range t {
			out = collectExprs(child, out)
		}
	}
	return out
}
