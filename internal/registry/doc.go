// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package registry holds the registration record of a single CI project node.
//
// A Project declares which VCS roots, build types, templates and sub-projects
// belong to it. It does not own those definitions; it only records the
// identifiers that link to them. Resolving the identifiers against their
// definitions is the job of the resolve package.
//
// A Project is assembled once by a Builder while a configuration snapshot is
// being loaded. Build seals the builder and hands out an immutable Project
// that is safe to read from any goroutine. The next configuration change
// produces a new Project; existing ones are never mutated.
package registry
