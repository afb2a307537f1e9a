// Package model defines the property panel tree handed to the host's
// extension property panel renderer. A panel is a tree of Field nodes:
// accordions and item sections group fields, arrays describe repeatable item
// lists and leaf fields bind to a reference path in the layout document the
// host persists. Every Ref must match the runtime layout exactly, otherwise
// the host cannot restore the value.
//
// Visibility is declared as rule strings (see pkg/visibility/expr) so the tree
// can be serialised while staying evaluable in Go. Evaluate walks the tree
// against a layout document, scoping array item fields to their item. Option
// lists are either static or produced by an OptionSource; a Resolver turns
// source failures into empty lists.
package model
