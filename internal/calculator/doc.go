// Package calculator implements the four arithmetic operations served by the
// calculate endpoint, together with the operand and operation checks that
// run before any arithmetic is done.
package calculator
