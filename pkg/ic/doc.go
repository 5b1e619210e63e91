// Package ic binds COSEM objects to a transport.
//
// Every object is addressed by its logical name and interface class. The
// generic Data wrapper reads and writes attribute 2 through the Transport and
// keeps the last value read; specialized wrappers such as LoadControl or
// RPLConfig embed it and translate that value to and from the typed
// structures of package settings.
//
// Create picks the wrapper for a logical name from a registration table:
//
//	obj := ic.Create(obis.MustParse("1-65:0.129.0*255"), transport)
//	lc := obj.(*ic.LoadControl)
//	s, err := lc.Settings(ctx)
//
// Wrappers perform no retries and impose no timeout; both belong to the
// transport. A wrapper is not safe for concurrent use.
package ic
