// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import "github.com/zclconf/go-cty/cty"

// fileRoot is the top-level structure of any configuration file.
type fileRoot struct {
	Projects   []*projectBlock   `hcl:"project,block"`
	VCSRoots   []*vcsRootBlock   `hcl:"vcs_root,block"`
	Templates  []*templateBlock  `hcl:"template,block"`
	BuildTypes []*buildTypeBlock `hcl:"build_type,block"`
}

// projectBlock is the registration record of one project node.
type projectBlock struct {
	ID          string   `hcl:"id,label"`
	Description string   `hcl:"description,optional"`
	VCSRoots    []string `hcl:"vcs_roots,optional"`
	BuildTypes  []string `hcl:"build_types,optional"`
	Templates   []string `hcl:"templates,optional"`
	SubProjects []string `hcl:"sub_projects,optional"`
}

type vcsRootBlock struct {
	ID          string   `hcl:"id,label"`
	Name        string   `hcl:"name,optional"`
	URL         string   `hcl:"url"`
	Branch      string   `hcl:"branch,optional"`
	BranchSpecs []string `hcl:"branch_specs,optional"`
}

type stepBlock struct {
	Name   string `hcl:"name,label"`
	Script string `hcl:"script"`
}

type templateBlock struct {
	ID     string       `hcl:"id,label"`
	Name   string       `hcl:"name,optional"`
	Params cty.Value    `hcl:"params,optional"`
	Steps  []*stepBlock `hcl:"step,block"`
}

type buildTypeBlock struct {
	ID        string       `hcl:"id,label"`
	Name      string       `hcl:"name,optional"`
	Templates []string     `hcl:"templates,optional"`
	VCSRoots  []string     `hcl:"vcs_roots,optional"`
	Params    cty.Value    `hcl:"params,optional"`
	Steps     []*stepBlock `hcl:"step,block"`
}
