// Package cabi marks where a foreign-callable C ABI surface over the
// comparison engine would live. The engine in this module is consumed
// exclusively through pkg/clustercompare and the cmd/clustercompare CLI;
// cgo export stubs, shared-library build tags, and a stable C struct
// layout for ClusterCollection are not implemented here — wiring a second,
// binary-compatible calling convention on top of the same engine is a
// separate concern from the matching and information-theoretic core this
// module builds, and nothing in the current tree calls into it.
package cabi
