// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package hcl provides the HCL implementation of config.Loader.
//
// A configuration snapshot is any number of .hcl files holding four kinds of
// top-level blocks:
//
//	project "Self" {
//	  description  = "Python scripts coupling components"
//	  vcs_roots    = ["ImodCoupler"]
//	  build_types  = ["MakeGitHubRelease"]
//	  templates    = ["Linux", "Windows"]
//	  sub_projects = ["Primod"]
//	}
//
//	vcs_root "ImodCoupler" {
//	  url    = "https://github.com/Deltares/imod_coupler.git"
//	  branch = "refs/heads/main"
//	}
//
//	template "Linux" {
//	  step "test" { script = "pixi run tests" }
//	}
//
//	build_type "MakeGitHubRelease" {
//	  vcs_roots = ["ImodCoupler"]
//	}
//
// Blocks may be spread over files and directories freely; the loader merges
// them into one config.Model. Project lists are registered through
// registry.Builder, so an identifier listed twice fails the load.
//
// Expressions can read the process environment through the env object
// (env.HOME) and call a small set of string functions: lower, upper, join,
// format, trimspace, replace.
package hcl
