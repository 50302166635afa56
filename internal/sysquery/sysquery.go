// Package sysquery isolates the handful of raw system queries collectors
// need (statvfs, uname, the kernel clock tick rate) behind a small
// interface. Production code binds it to the real syscalls
// (sysquery_unix.go); collector tests inject a fake instead.
package sysquery

// Filesystem is the subset of statvfs(2) a filesystem collector needs.
type Filesystem struct {
	BlockSize   uint64
	Blocks      uint64
	BlocksFree  uint64
	BlocksAvail uint64
	Inodes      uint64
	InodesFree  uint64
	InodesAvail uint64
	ReadOnly    bool
}

// Identity is the subset of uname(2) the uname collector needs.
type Identity struct {
	Sysname  string
	Nodename string
	Release  string
	Version  string
	Machine  string
}

// Query is the capability object production collectors receive via their
// init ctx; tests substitute a fake implementation.
type Query interface {
	// Statfs reports filesystem usage for the mountpoint at path.
	Statfs(path string) (Filesystem, error)

	// Uname reports kernel identity.
	Uname() (Identity, error)

	// ClockTicksPerSecond returns the clock tick rate, the divisor used
	// to convert /proc/stat jiffy counters into seconds. The Linux
	// implementation returns the rate given to NewReal (100 by default);
	// it does not call sysconf(_SC_CLK_TCK).
	ClockTicksPerSecond() int64
}
