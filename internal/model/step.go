// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Step structure, which is the atomic unit of work
// within a Pipeline. It represents a single, configured invocation of a
// registered step kind.
//
// Why store raw hcl.Expression fields?
//
// Most fields are of type `hcl.Expression` rather than a primitive Go type.
// This defers the evaluation of configuration values until the step is about
// to run. The model captures the user's intent as an expression, and the
// execution layer is responsible for resolving it into a concrete value. The
// `arguments` block goes one step further and stays an opaque hcl.Body,
// because only the registered handler for the step's kind knows its shape.
package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/specialistvlad/taskpipe/internal/tphcl"
)

// Step is the format-agnostic representation of a `step` block.
type Step struct {
	Kind          string
	Name          string
	FSInformation *FSInfo

	// Core attributes
	Enabled     *hcl.Expression
	Description *hcl.Expression

	// Kind-specific configuration, decoded by the step's handler.
	Arguments hcl.Body

	// Execution policy
	Retry        *Retry
	Cancellation *Cancellation
}

// ID returns the canonical "kind.name" identity of the step within its
// pipeline.
func (s *Step) ID() string {
	return s.Kind + "." + s.Name
}

// Expressions returns all HCL expressions defined directly on the step or in
// its policy blocks. Argument expressions are not included; they belong to
// the step's handler.
func (s *Step) Expressions() []hcl.Expression {
	if s == nil {
		return nil
	}
	var exprs []hcl.Expression
	if s.Enabled != nil {
		exprs = append(exprs, *s.Enabled)
	}
	if s.Description != nil {
		exprs = append(exprs, *s.Description)
	}
	exprs = append(exprs, s.Retry.Expressions()...)
	exprs = append(exprs, s.Cancellation.Expressions()...)
	return exprs
}

// stepBodySchema defines the expected structure of a `step` block's body.
var stepBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "enabled"}, {Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "arguments"}, {Type: "retry"}, {Type: "cancellation"},
	},
}

// NewStepFromHCL creates a new Step from the labels and raw body of a parsed
// HCL step block. The body is checked against the closed step schema, so an
// unknown attribute or block is reported against its source range.
func NewStepFromHCL(kind, name string, body hcl.Body, filePath string) (*Step, hcl.Diagnostics) {
	step := &Step{
		Kind:          kind,
		Name:          name,
		FSInformation: NewFSInfo(filePath),
	}

	var allDiags hcl.Diagnostics

	bodyContent, contentDiags := body.Content(stepBodySchema)
	allDiags = append(allDiags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, allDiags
	}

	if attr, exists := bodyContent.Attributes["enabled"]; exists {
		expr := attr.Expr
		step.Enabled = &expr
	}
	if attr, exists := bodyContent.Attributes["description"]; exists {
		expr := attr.Expr
		step.Description = &expr
	}

	if argBlock, diags := tphcl.FindUniqueBlock(bodyContent.Blocks, "arguments"); diags.HasErrors() {
		allDiags = append(allDiags, diags...)
	} else if argBlock != nil {
		step.Arguments = argBlock.Body
	}

	if retryBlock, diags := tphcl.FindUniqueBlock(bodyContent.Blocks, "retry"); diags.HasErrors() {
		allDiags = append(allDiags, diags...)
	} else if retryBlock != nil {
		retry := &Retry{}
		allDiags = append(allDiags, gohcl.DecodeBody(retryBlock.Body, nil, retry)...)
		step.Retry = retry
	}

	if cancelBlock, diags := tphcl.FindUniqueBlock(bodyContent.Blocks, "cancellation"); diags.HasErrors() {
		allDiags = append(allDiags, diags...)
	} else if cancelBlock != nil {
		cancellation := &Cancellation{}
		allDiags = append(allDiags, gohcl.DecodeBody(cancelBlock.Body, nil, cancellation)...)
		step.Cancellation = cancellation
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	return step, allDiags
}
