// Package surface builds analytic surfaces from a card mnemonic and its
// coefficient list.
//
// Every shape implements Surface. Eval returns the value of the shape's
// implicit function at a point; its sign is the point's sense. For closed
// bodies (spheres, macrobodies) the inside is negative.
//
// # Supported mnemonics
//
//	planes      p px py pz
//	spheres     so s sx sy sz sph
//	cylinders   c/x c/y c/z cx cy cz
//	cones       k/x k/y k/z kx ky kz
//	quadrics    sq gq
//	tori        tx ty tz
//	macrobodies rpp box rcc trc rec rhp hex ell wed
//
// New fails with ErrUnknownMnemonic or ErrArgumentCount. The package does
// no cross referencing: transforms are applied by the caller.
package surface
