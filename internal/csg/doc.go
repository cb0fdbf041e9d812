// Package csg turns a cell's geometry field into a constructive solid
// geometry tree and evaluates it.
//
// # Grammar
//
// From lowest to highest precedence:
//
//	union      := intersect { ":" intersect }
//	intersect  := unary { [INTERSECT] unary }      adjacency intersects
//	unary      := SURFNUM
//	            | "#" CELLNUM                      exterior of a cell
//	            | "#" SURFNUM                      other half-space
//	            | "#" "(" union ")"
//	            | "(" union ")"
//
// Both binary operators associate to the left, so "1 2 : 3" is
// (1 ∩ 2) ∪ 3 and "1 (2 : 3)" is 1 ∩ (2 ∪ 3). A signed SURFNUM selects the
// half-space on that side of the surface.
//
// Compile reports malformed input as an *ExprError wrapping
// ErrMalformedExpression, with the index of the offending token.
package csg
