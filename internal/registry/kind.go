// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import "fmt"

// Kind identifies one of the collections a Project registers identifiers in.
type Kind int

const (
	KindVCSRoot Kind = iota
	KindBuildType
	KindTemplate
	KindSubProject
)

// Kinds lists every registration kind in display order.
var Kinds = []Kind{KindVCSRoot, KindBuildType, KindTemplate, KindSubProject}

var kindNames = map[Kind]string{
	KindVCSRoot:    "vcs-root",
	KindBuildType:  "build-type",
	KindTemplate:   "template",
	KindSubProject: "sub-project",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind converts a kind name such as "build-type" into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
