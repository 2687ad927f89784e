// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyIdentifier is returned when registering an empty identifier.
	ErrEmptyIdentifier = errors.New("identifier must not be empty")
	// ErrUnknownKind is returned for a registration kind outside Kinds.
	ErrUnknownKind = errors.New("unknown registration kind")
	// ErrSealed is returned when registering through a builder that has
	// already produced its Project.
	ErrSealed = errors.New("project registry is sealed")
)

// DuplicateRegistrationError reports an identifier registered twice in the
// same collection of one project.
type DuplicateRegistrationError struct {
	Project string
	Kind    Kind
	ID      string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("project '%s': %s '%s' is already registered", e.Project, e.Kind, e.ID)
}

// UnresolvedReferenceError reports an identifier that does not match any
// definition known to the configuration. Owner names the referring block,
// e.g. "project 'Self'" or "build_type 'Release'".
type UnresolvedReferenceError struct {
	Owner string
	Kind  Kind
	ID    string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: %s '%s' does not match any definition", e.Owner, e.Kind, e.ID)
}
