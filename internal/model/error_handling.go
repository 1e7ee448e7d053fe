// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the models for the retry policy of a step.
//
// Why encapsulate error handling?
//
// Step execution can fail for many reasons. This file consolidates the
// configurable retry behaviors, such as the attempt budget, the base delay
// and the backoff strategy, into dedicated structs. This gives the execution
// layer a clear, structured representation of the user's failure policy.
package model

import (
	"github.com/hashicorp/hcl/v2"
)

// Backoff defines the strategy for spacing retries.
type Backoff struct {
	Strategy hcl.Expression `hcl:"strategy,optional"`
}

// Expressions returns a slice of all HCL expressions defined in the Backoff block.
func (b *Backoff) Expressions() []hcl.Expression {
	if b == nil {
		return nil
	}
	return []hcl.Expression{b.Strategy}
}

// Retry defines the retry behavior for a step. MaxRetries counts the
// re-executions after the initial attempt has failed.
type Retry struct {
	MaxRetries hcl.Expression `hcl:"max_retries,optional"`
	Delay      hcl.Expression `hcl:"delay,optional"`
	Backoff    *Backoff       `hcl:"backoff,block"`
}

// Expressions returns a slice of all HCL expressions defined in the Retry block.
func (r *Retry) Expressions() []hcl.Expression {
	if r == nil {
		return nil
	}
	exprs := []hcl.Expression{r.MaxRetries, r.Delay}
	if r.Backoff != nil {
		exprs = append(exprs, r.Backoff.Expressions()...)
	}
	return exprs
}
