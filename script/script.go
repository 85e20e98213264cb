// Copyright 2026 The tabkit authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package script runs user-supplied Go transforms over tables with the
// yaegi interpreter.
package script

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"tabkit/data"
)

// Runner evaluates Go source that defines
//
//	func Transform(t *data.Table) (*data.Table, error)
//
// with the standard library and the tabkit/data package available to the
// interpreted code. Anything the script prints is captured and available
// through Output.
type Runner struct {
	out bytes.Buffer
}

// NewRunner creates a script runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Transform evaluates src and applies its Transform function to the table.
// Source without a package clause is wrapped into one with the data
// package imported.
func (r *Runner) Transform(t *data.Table, src string) (*data.Table, error) {
	if src == "" {
		return nil, fmt.Errorf("no script to execute")
	}
	if !strings.HasPrefix(strings.TrimSpace(src), "package ") {
		src = fmt.Sprintf("package main\n\nimport \"tabkit/data\"\n\n%s\n", src)
	}

	i := interp.New(interp.Options{
		Stdout: &r.out,
		Stderr: &r.out,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib symbols: %w", err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, fmt.Errorf("failed to load data symbols: %w", err)
	}

	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("script failed to compile: %w", err)
	}

	v, err := i.Eval("Transform")
	if err != nil {
		return nil, fmt.Errorf("script does not define Transform: %w", err)
	}
	fn, ok := v.Interface().(func(*data.Table) (*data.Table, error))
	if !ok {
		return nil, fmt.Errorf("Transform has the wrong signature: %T", v.Interface())
	}

	out, err := fn(t)
	if err != nil {
		return nil, fmt.Errorf("transform failed: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("transform returned a nil table")
	}
	return out, nil
}

// Output returns everything the interpreted code has printed so far.
func (r *Runner) Output() string {
	return r.out.String()
}
