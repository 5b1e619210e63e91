// Package definition implements self-describing COSEM object definitions.
//
// A Definition is a schema node that may also carry a value. It is one of
// four kinds:
//
//   - Scalar: a single tagged value
//   - Array: a homogeneous list checked against one element definition
//   - Structure: an ordered list of heterogeneous fields
//   - Enum: a byte drawn from a named EnumDomain
//
// Definitions convert to cosem.Data with ToData and are inferred from wire
// values with FromData when no static schema is available. Trees are built
// per conversion and are not safe for concurrent mutation.
package definition
