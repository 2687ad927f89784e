// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import "errors"

var (
	// ErrInvalidNesting reports a sub-project graph that is not a tree.
	ErrInvalidNesting = errors.New("invalid project nesting")
	// ErrAmbiguousRoot is returned when no root was requested and more than
	// one project is not nested anywhere.
	ErrAmbiguousRoot = errors.New("ambiguous root project")
	// ErrNoProjects is returned for a snapshot without any project.
	ErrNoProjects = errors.New("configuration declares no projects")
)
