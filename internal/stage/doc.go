// Package stage defines the pipeline step contract and the registry that maps
// step names to handlers.
//
// A Registry is an explicit value built once at program start; there is no
// package-level table and no registration by import side effect. Names are
// unique: registering a name twice is a configuration error rather than a
// silent overwrite.
package stage
