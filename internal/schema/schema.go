// Package schema defines the raw structures for HCL decoding.
//
// These structs are a direct mirror of the on-disk pipeline syntax and are
// only ever populated by gohcl. They intentionally keep step bodies opaque:
// everything inside a step block except its labels is deferred to the
// translation layer, which knows which attributes and nested blocks a step
// may carry. Code outside the loader should depend on internal/model, never
// on this package.
package schema

import "github.com/hashicorp/hcl/v2"

// File is the top-level structure of a single pipeline definition file.
type File struct {
	Pipelines []*Pipeline `hcl:"pipeline,block"`
	Body      hcl.Body    `hcl:",remain"`
}

// Pipeline is the raw form of a `pipeline "name" { ... }` block.
type Pipeline struct {
	Name        string         `hcl:"name,label"`
	Description hcl.Expression `hcl:"description,optional"`
	Plugins     *Plugins       `hcl:"plugins,block"`
	Steps       []*Step        `hcl:"step,block"`
}

// Plugins selects which task plugins wrap every step of a pipeline.
type Plugins struct {
	Use []string `hcl:"use,optional"`
}

// Step captures only the labels of a `step "kind" "name" { ... }` block.
// The body is handed to model.NewStepFromHCL untouched so that the
// step-level schema (arguments, retry, cancellation, enabled) lives in
// exactly one place.
type Step struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}
