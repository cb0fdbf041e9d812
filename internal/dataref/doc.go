// Package dataref provides deferred references: handles to values that a
// card names before the card defining them has been read.
//
// Two forms exist:
//   - Value wraps a value that is already known (an inline transform).
//   - Lookup holds an identifier and binds it against a Registry the first
//     time the value is requested, caching the result.
//
// A Lookup never owns its target. It stores whatever the registry hands
// back, which for the deck is a pointer into a card owned by the deck.
package dataref
