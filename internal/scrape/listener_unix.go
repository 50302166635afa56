//go:build linux

package scrape

import (
	"golang.org/x/sys/unix"

	"github.com/fis/nano-exporter/internal/xerr"
)

// backlog is the listen(2) backlog depth.
const backlog = 16

// wildcardFamilies enumerates the passive bind targets a real getaddrinfo
// with AI_PASSIVE and node=NULL would hand back for a wildcard listener:
// the IPv6 any-address and the IPv4 any-address. Fixing these two rather
// than calling the resolver makes listener setup deterministic and
// sidesteps /etc/hosts and DNS entirely, which a metrics exporter has no
// business depending on.
var wildcardFamilies = []int{unix.AF_INET6, unix.AF_INET}

// openListeners binds one nonblocking, listening socket per address
// family in wildcardFamilies on port. It returns every fd that bound
// successfully; ErrorNoAddressResolved is returned only if none did.
func openListeners(port int) ([]int, error) {
	var fds []int

	for _, family := range wildcardFamilies {
		fd, err := openOneListener(family, port)
		if err != nil {
			continue
		}
		fds = append(fds, fd)

		// With port 0 the first bind picks an ephemeral port; later
		// families bind that same port so every listener shares it.
		if port == 0 {
			if sa, err := unix.Getsockname(fd); err == nil {
				switch a := sa.(type) {
				case *unix.SockaddrInet4:
					port = a.Port
				case *unix.SockaddrInet6:
					port = a.Port
				}
			}
		}
	}

	if len(fds) == 0 {
		return nil, ErrorNoAddressResolved.Error(nil)
	}
	return fds, nil
}

func openOneListener(family, port int) (int, error) {
	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, ErrorSocketCreate.Error(err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, ErrorSocketCreate.Error(err)
	}

	var sa unix.Sockaddr
	if family == unix.AF_INET6 {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 1); err != nil {
			_ = unix.Close(fd)
			return -1, ErrorSocketCreate.Error(err)
		}
		sa = &unix.SockaddrInet6{Port: port}
	} else {
		sa = &unix.SockaddrInet4{Port: port}
	}

	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, ErrorSocketBind.Error(err)
	}

	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return -1, ErrorSocketListen.Error(err)
	}

	return fd, nil
}
