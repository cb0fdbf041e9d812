// Package lines splits a deck into its title and blocks of logical cards.
//
// A logical card is one or more physical lines joined by the format's
// continuation rules:
//   - a line whose first five columns are blank continues the previous card
//   - a trailing '&' continues the card onto the next line
//
// Comment cards ('c' in columns 1-5 followed by a blank) are dropped, '$'
// starts an end-of-line comment, and a blank line ends a block. Words are
// returned in lower case; the title keeps its case.
package lines
