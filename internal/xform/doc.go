// Package xform implements the affine coordinate transforms used by
// surface and cell cards: a 3x3 rotation plus a displacement.
//
// A Transform maps auxiliary coordinates into main coordinates:
//
//	p_main = Rot * p_aux + Shift
//
// The rotation's columns are the auxiliary axes expressed in main
// coordinates, which matches the order in which TR cards list their
// matrix entries (xx' yx' zx' xy' yy' zy' xz' yz' zz').
package xform
