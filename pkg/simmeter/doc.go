// Package simmeter provides an in-memory meter that implements ic.Transport.
//
// A Meter holds attribute values keyed by class, logical name and attribute
// index. It is populated from code or from a YAML fixture whose values are
// hex A-XDR strings, and lets tests disconnect the link or force a
// data-access result per object.
package simmeter
