// Package config defines the format-agnostic model of a CI configuration
// snapshot and the Loader interface that produces it.
//
// The Model holds every project registry together with the VCS roots, build
// types and templates those registries reference by identifier. It is the
// single input of the resolve package. Concrete loaders, such as the HCL one,
// live in separate packages.
package config
