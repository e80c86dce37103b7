// Package interval computes retry/backoff delays.
//
// # Families
//
//   - Fixed: constant delay.
//   - CustomBackoff: user-supplied function applied iteratively to the
//     prior delay.
//   - Exponential / ExponentialCapped: interval * multiplier^(n-1),
//     optionally capped.
//   - Randomized: uniform jitter around interval.
//   - ExponentialRandomized / ExponentialRandomizedCapped: exponential
//     backoff with jitter, optionally capped.
//
// All families reject attempt < 1 and interval < 1ns with a
// *corefault.Error of kind corefault.Validation.
package interval
