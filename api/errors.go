// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error values used across the library.

package api

import "errors"

var (
	// ErrExecutorClosed indicates the executor has been shut down.
	ErrExecutorClosed = errors.New("executor is closed")

	// ErrInvalidWorkerCount indicates invalid worker count configuration.
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// ErrAffinityNotSupported indicates CPU affinity is not supported on
	// this platform.
	ErrAffinityNotSupported = errors.New("CPU affinity not supported")
)
