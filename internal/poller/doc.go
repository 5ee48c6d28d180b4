// Package poller implements the Polling Scheduler.
//
// The Polling Scheduler:
//   - Runs one price cycle immediately on start, then on every interval tick
//   - Never overlaps cycles: a tick arriving while a cycle is in flight is dropped
//   - Bounds every cycle with a timeout; expiry fails that cycle only
//   - Discards the result of a cycle that completes after Stop
package poller
