// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Config struct, the root container for everything
// parsed out of a workspace. Loading multiple files produces one Config per
// file; Merge folds them into a single aggregate in load order.
package model

// Config aggregates all pipelines parsed from one or more .hcl files.
type Config struct {
	Pipelines []*Pipeline
}

// NewConfig creates a new, empty Config.
func NewConfig() *Config {
	return &Config{}
}

// Merge appends the contents of another Config to this one. Merging nil is
// a no-op.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	c.Pipelines = append(c.Pipelines, other.Pipelines...)
}

// Pipeline returns the pipeline with the given name, or nil when no such
// pipeline exists.
func (c *Config) Pipeline(name string) *Pipeline {
	for _, p := range c.Pipelines {
		if p.Name == name {
			return p
		}
	}
	return nil
}
