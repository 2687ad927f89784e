// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package resolve links a loaded configuration snapshot and materializes its
// project tree.
//
// Resolution checks that every identifier a project or build type refers to
// has a definition, that sub-project nesting forms a tree, and then builds the
// Tree rooted at the selected project. Every problem found is collected; a
// snapshot with any problem is rejected as a whole.
package resolve
