// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// environFromOS turns os.Environ into a map. Later duplicates win.
func environFromOS() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = value
	}
	return env
}

// newEvalContext builds the evaluation scope shared by every file of a load.
func newEvalContext(env map[string]string) *hcl.EvalContext {
	envVal := cty.EmptyObjectVal
	if len(env) > 0 {
		attrs := make(map[string]cty.Value, len(env))
		for k, v := range env {
			attrs[k] = cty.StringVal(v)
		}
		envVal = cty.ObjectVal(attrs)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envVal,
		},
		Functions: map[string]function.Function{
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"join":      stdlib.JoinFunc,
			"format":    stdlib.FormatFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"replace":   stdlib.ReplaceFunc,
		},
	}
}
