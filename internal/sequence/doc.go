// Package sequence allocates human-readable reservation numbers of the form
// "<SCOPE>-00001", where SCOPE is derived from the location's display name.
//
// The counter is implicit: the next number is computed from the most recently
// created reservation in the tenant/location scope. Nothing is locked, so two
// concurrent submissions can be handed the same block; the store's unique
// index rejects the second insert and the caller retries once with Block.Next.
package sequence
