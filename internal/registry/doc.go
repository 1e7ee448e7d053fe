// Package registry provides the central "glue" between pipeline files and
// compiled Go code.
//
// The Registry stores mappings between the step kinds used in pipeline
// definitions (e.g., "emit", "sleep") and the Go handlers that implement
// them. During application startup the registry is populated from the
// compiled-in module list and then validated against the loaded
// configuration, so a pipeline referencing an unknown kind fails before
// anything executes.
package registry
