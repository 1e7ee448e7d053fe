// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// Plugins selects which task plugins wrap every step of a pipeline. Names
// refer to the bundled plugin set; an unknown name is a load-time error.
type Plugins struct {
	Use []string
}
