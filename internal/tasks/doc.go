// Package tasks orchestrates batch profile provisioning with real-time progress reporting.
//
// # Core Operation
//
// [ProvisionEngine.Run] iterates a roster once, in order, delegating each
// record to a profile writer:
//
//  1. An empty identity counts as a failure and moves on.
//  2. The profile name is derived as "<base> - <identity>".
//  3. Created increments the created tally; Skipped and Failed both
//     increment the failed tally.
//  4. The set-as-default request is consumed by the first record in
//     iteration order, whether or not that record succeeds.
//
// Records never affect one another: only the run counters and the one-shot
// default flag are shared across iterations. Progress events are emitted over
// a channel for non-blocking status reporting to the CLI layer.
package tasks
