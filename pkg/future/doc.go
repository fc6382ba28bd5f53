// Package future provides a single-goroutine event loop, write-once futures
// bound to it, and bridges between those futures and ordinary blocking code.
//
// Blocking work goes through a BackgroundService and comes back as a Future
// whose callbacks run on the loop that asked for it. Await turns a Future into
// a plain (value, error) return for sequential code, and Async turns
// sequential code back into a Future.
package future
