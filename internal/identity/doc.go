// Package identity defines the opaque identifier format and its allocators.
//
// Identifiers are a role prefix followed by six digits (TS123456). Person
// identifiers are drawn randomly and verified against every store sharing the
// prefix namespace before being handed out; course identifiers are allocated
// sequentially from the highest existing suffix. The allocator only reserves
// a value — persisting it is the caller's job — so re-invoking after a failed
// run is always safe.
package identity
