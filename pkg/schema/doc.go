// Package schema declares positional COSEM structures once and derives
// parsing, serialization and display definitions from that declaration.
//
// A Structure lists its fields in wire order. Unpack checks arity and tags
// strictly; a field may additionally accept an octet-string fallback
// (calendar types sent as raw bytes) or null-data. Pack always emits the
// canonical tag. Definition builds a definition.Structure for display.
package schema
