// Package deck reads a geometry input deck and resolves it into a fully
// cross-referenced CSG model.
//
// # Pipeline
//
//  1. Title card (after an optional message block)
//  2. Cell block: each card is parsed and its geometry compiled
//  3. Surface block: each card builds its surface.Surface
//  4. Data block: TR cards become transforms; other cards are kept opaque
//  5. CreateGeometry binds everything:
//     - LIKE n BUT cells are materialized from their base cell
//     - deferred transform references are bound against the TR registry
//     - every surface and cell named in a geometry must exist
//     - complement and fill references must not form a cycle
//     - fills are checked, lattice pitches derived, and the universe
//     hierarchy is flattened into Instances with composed transforms
//
// Cards may name transforms that are only defined later in the data block.
// Those names are held as dataref.Lookup values until step 5.
//
// Build runs the whole pipeline and returns either a resolved *Deck or an
// error; a partially built deck is never returned. After resolution the
// deck is read-only and safe for concurrent readers.
package deck
