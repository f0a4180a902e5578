// Package session owns one chat conversation with the backend.
//
// # Overview
//
// A Session holds the active topic, the chosen difficulty and an append-only
// log of turns. It has no knowledge of the terminal; the app drives it from
// the Bubble Tea event loop and the CLI drives it synchronously.
//
// # Lifecycle
//
// 1. SelectTopic: the log is reset and a single welcome turn is appended.
//
// 2. Begin: a non-empty query becomes a user turn and the session is marked
// pending. The returned Ticket carries the request to send.
//
// 3. Complete: the pending mark is cleared exactly once for the ticket that
// set it, then an assistant turn or a single error turn is appended. A stale
// or repeated ticket returns ErrNotPending and changes nothing.
//
// 4. Back: the topic, log and difficulty are reset. Any in-flight request is
// forgotten, so its late completion is rejected as stale.
//
// Only one request is in flight at a time: Begin refuses while pending.
//
// # Modes
//
// Options collapses the basic and enhanced clients into one type. History
// stamps turns for display and turns on copy and relevance badges in the ui.
// Difficulty turns on the selector and sends the level with each request.
package session
