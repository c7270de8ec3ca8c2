// Package monitor runs the closest-arcade check.
//
// A Checker performs one cycle: fetch the locator page, pick the nearest record,
// compare it with the persisted result, persist the new result, and notify when the
// closest arcade changed. State is always written before any notification is
// attempted, so a failed delivery never blocks or reverts it.
//
// A Loop repeats cycles on a fixed interval until its context is cancelled. The
// cycle in flight when cancellation arrives runs to completion; only the sleep
// between cycles is interrupted.
package monitor
