// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the model for the cancellation limits of a step.
//
// A step may be bounded by a relative timeout, an absolute deadline, or both.
// Each limit becomes its own context at execution time, and the step observes
// whichever one fires first alongside the interrupt signal of the run itself.
package model

import (
	"github.com/hashicorp/hcl/v2"
)

// Cancellation defines the time limits for a single step execution.
type Cancellation struct {
	Timeout  hcl.Expression `hcl:"timeout,optional"`
	Deadline hcl.Expression `hcl:"deadline,optional"`
}

// Expressions returns a slice of all HCL expressions defined in the Cancellation block.
func (c *Cancellation) Expressions() []hcl.Expression {
	if c == nil {
		return nil
	}
	return []hcl.Expression{c.Timeout, c.Deadline}
}
