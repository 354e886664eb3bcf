// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// live in separate files (affinity_linux.go, affinity_stub.go) guarded by
// build tags. Callers should lock the calling goroutine to its OS thread
// before pinning.

package affinity

// Pin binds the current OS thread to the given logical CPU core on
// supported platforms. On unsupported platforms it returns
// api.ErrAffinityNotSupported.
func Pin(cpuID int) error {
	return pinPlatform(cpuID)
}
