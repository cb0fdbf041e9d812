// Package match ranks near misses among card keywords and surface
// mnemonics, so a misspelled "imq" can be answered with "did you mean imp".
//
// Distances are plain Levenshtein distances taken after NormalizeKeyword has
// dropped particle designators and folded case. Suggest keeps only the
// candidates within a small edit budget.
package match
