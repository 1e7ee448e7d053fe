// Package hclcfg provides the concrete HCL implementation of configuration
// loading. It is responsible for discovering .hcl files, parsing them, and
// translating the raw schema structs into the format-agnostic model used by
// the rest of the application.
package hclcfg
