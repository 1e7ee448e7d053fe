// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of the taskpipe HCL
// configuration. Its core purpose is to create a strongly-typed, in-memory
// model of the user's definitions by parsing the raw HCL files.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Config: The root container representing a workspace. It aggregates all
//     pipelines parsed from one or more .hcl files.
//
//   - Pipeline: An ordered list of steps plus the plugin selection that wraps
//     every one of them.
//
//   - Step: A single invocation of a registered step kind. It contains the
//     specific configuration (arguments, retry policy, cancellation limits)
//     for that invocation.
//
//   - FSInfo: Metadata that links every Pipeline and Step back to its source
//     file. This is critical for providing clear error messages.
//
// Why store raw hcl.Expression fields?
//
// Most configuration fields are of type `hcl.Expression` rather than a
// primitive Go type. This is a deliberate choice: it defers the evaluation of
// configuration values until a step is about to run. The model captures the
// user's intent as an expression, and the execution layer is responsible for
// resolving that expression into a concrete value. Structural problems
// (duplicate blocks, unknown attributes) are still caught at load time, so a
// bad file fails before anything executes.
package model
