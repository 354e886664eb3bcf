// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package api defines the pure contracts of hioload-lock: the poll/wake
// protocol between futures and executors, and the non-blocking acquisition
// surface the async adapters consume from the blocking primitives.
//
// No package in this module depends on a concrete executor or primitive
// through anything but these interfaces, so alternative implementations can
// be swapped in without touching the adapter layer.
package api
