// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Pipeline structure, an ordered list of steps that
// execute sequentially, sharing one plugin selection.
package model

import (
	"github.com/hashicorp/hcl/v2"
)

// Pipeline is the format-agnostic representation of a `pipeline` block.
type Pipeline struct {
	Name          string
	Description   *hcl.Expression
	Plugins       *Plugins
	Steps         []*Step
	FSInformation *FSInfo
}

// Expressions returns all HCL expressions defined across the pipeline and
// its steps.
func (p *Pipeline) Expressions() []hcl.Expression {
	if p == nil {
		return nil
	}
	var exprs []hcl.Expression
	if p.Description != nil {
		exprs = append(exprs, *p.Description)
	}
	for _, step := range p.Steps {
		exprs = append(exprs, step.Expressions()...)
	}
	return exprs
}
