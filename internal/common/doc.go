// Package common holds small helpers shared by the deck reader packages:
// slice predicates and the numeric word parsing used by every card kind.
package common
