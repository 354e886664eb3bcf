//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux implementation of thread CPU affinity via sched_setaffinity.

package affinity

import "golang.org/x/sys/unix"

// pinPlatform pins the calling thread to the given CPU core.
func pinPlatform(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	return unix.SchedSetaffinity(0, &set)
}
