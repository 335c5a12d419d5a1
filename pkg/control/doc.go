// Package control exposes the faultd catalog over HTTP.
//
// The surface is deliberately small: list the catalog, trigger a fault,
// observe the daemon. Triggering runs the fault routine synchronously on
// the request goroutine, so for most kinds the response is never written:
// the process crashes or hangs first. The trigger intent (a unique id, the
// kind, and the request source) is logged and broadcast to /events
// subscribers before the routine runs, which is what lets an external
// watchdog harness correlate a dead faultd with the fault it was told to
// inject.
//
// Concurrent trigger requests are independent; the server performs no
// serialization between them.
package control
