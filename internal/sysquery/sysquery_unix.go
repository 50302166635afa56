//go:build linux

package sysquery

import (
	"strings"

	"golang.org/x/sys/unix"
)

// real binds Query to the actual Linux syscalls.
type real struct {
	clkTck int64
}

// NewReal returns the production Query implementation. clkTck is the
// value ClockTicksPerSecond reports; zero or a negative value selects 100,
// the usual Linux USER_HZ. sysconf(_SC_CLK_TCK) is not queried, and the
// collectors in this module all pass 0.
func NewReal(clkTck int64) Query {
	if clkTck <= 0 {
		clkTck = 100
	}
	return &real{clkTck: clkTck}
}

func (r *real) Statfs(path string) (Filesystem, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Filesystem{}, err
	}

	return Filesystem{
		// Frsize, not Bsize, matches statvfs(2)'s f_frsize: the unit the
		// original collector multiplies block counts by.
		BlockSize:   uint64(st.Frsize),
		Blocks:      st.Blocks,
		BlocksFree:  st.Bfree,
		BlocksAvail: st.Bavail,
		Inodes:      st.Files,
		InodesFree:  st.Ffree,
		InodesAvail: st.Ffree,
		ReadOnly:    st.Flags&unix.ST_RDONLY != 0,
	}, nil
}

func (r *real) Uname() (Identity, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return Identity{}, err
	}

	return Identity{
		Sysname:  cstr(u.Sysname[:]),
		Nodename: cstr(u.Nodename[:]),
		Release:  cstr(u.Release[:]),
		Version:  cstr(u.Version[:]),
		Machine:  cstr(u.Machine[:]),
	}, nil
}

func (r *real) ClockTicksPerSecond() int64 {
	return r.clkTck
}

func cstr(b []byte) string {
	i := 0
	for ; i < len(b); i++ {
		if b[i] == 0 {
			break
		}
	}
	return strings.TrimRight(string(b[:i]), "\x00")
}
