// ABOUTME: Package doc for the store package
// ABOUTME: Documents the invocation audit model

// Package store provides SQLite-backed persistence for tool invocation
// records.
//
// # Overview
//
// The store keeps one row per dispatched tool call: which tool ran, the
// request ID assigned by the dispatcher, how long it took, and whether
// the call produced an error envelope. Recording is best-effort; the
// store never fails a tool call.
//
// The schema is created automatically when the database is opened, and
// WAL mode is enabled so reads do not block the recorder.
package store
