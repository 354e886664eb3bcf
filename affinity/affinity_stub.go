//go:build !linux
// +build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without affinity support.

package affinity

import "github.com/momentics/hioload-lock/api"

// pinPlatform reports affinity as unsupported.
func pinPlatform(cpuID int) error {
	return api.ErrAffinityNotSupported
}
