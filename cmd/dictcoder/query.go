package main

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/wippyai/dictcoder/tree"
)

// evaluate runs an expr-lang expression with the container's keys as
// variables. at(path) resolves a dotted path such as "meta.lines[2]"
// against the decoded tree.
func evaluate(src string, env map[string]any, root *tree.Node) (any, error) {
	at := expr.Function("at", func(params ...any) (any, error) {
		path, ok := params[0].(string)
		if !ok {
			return nil, fmt.Errorf("at: path must be a string, got %T", params[0])
		}
		n, ok := root.Lookup(path)
		if !ok {
			return nil, nil
		}
		return n.Interface(), nil
	}, new(func(string) any))

	prg, err := expr.Compile(src, expr.Env(env), at)
	if err != nil {
		return nil, err
	}
	return expr.Run(prg, env)
}
