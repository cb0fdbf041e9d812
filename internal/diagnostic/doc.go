// Package diagnostic collects non-fatal findings produced while a deck is
// resolved.
//
// Key capabilities:
//   - Unused surface warnings
//   - Unknown cell parameter warnings with "did you mean" suggestions
//   - Notes about lattice elements that are not expanded
//
// Fatal problems are returned as errors by the deck; diagnostics never abort
// a build on their own.
package diagnostic
