// Package export turns a resolved deck into a plain serializable model.
//
// The model is the hand-off point for downstream tools: it lists surfaces
// with their coefficients and placement, cells with their canonical
// expressions (and optionally the compiled tree), fills, and the flattened
// instance hierarchy with composed transforms. Marshal renders it as YAML.
package export
