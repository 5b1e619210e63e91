// Package trace records COSEM requests as a machine-readable event log.
//
// It is separate from operational logging (slog). Operational logs say what
// the library decided; the trace says what was asked of the meter and what
// came back, with values kept in their A-XDR encoding.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	tracer := trace.NewSlogAdapter(slog.Default())
//
//	// For field captures: write to a binary file
//	tracer, _ := trace.NewFileLogger("/var/log/cosem/session.ctrace")
//
//	// Both
//	tracer := trace.NewMultiLogger(console, file)
//
// The resulting Logger is handed to the interface class wrappers with
// ic.WithTracer.
//
// # File Format
//
// Trace files are a sequence of CBOR-encoded events with integer keys and
// the .ctrace extension. cosemctl trace provides viewing, filtering, stats
// and export.
package trace
