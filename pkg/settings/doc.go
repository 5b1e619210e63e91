// Package settings contains the typed COSEM structures exchanged with
// NGC meters: load control, energization, configuration XML, device
// description, RPL mesh statistics and association access rights.
//
// Every structure X follows the same pattern:
//
//	XSchema                      positional schema (single source of truth)
//	ParseX(*cosem.Data) (*X, error)
//	(*X).ToData() (cosem.Data, error)
//	(*X).ToDefinition() *definition.Structure
//	XDefinition() *definition.Structure
//
// Parsing is strict: arity and tags must match the schema, except for
// date and time fields that also accept their octet-string encoding.
package settings
