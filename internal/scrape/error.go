//go:build linux

package scrape

import "github.com/fis/nano-exporter/internal/xerr"

const (
	ErrorNoAddressResolved xerr.CodeError = iota + xerr.MinPkgScrape
	ErrorSocketCreate
	ErrorSocketBind
	ErrorSocketListen
)

func init() {
	xerr.Register(ErrorNoAddressResolved, "no listening address could be bound")
	xerr.Register(ErrorSocketCreate, "cannot create listening socket")
	xerr.Register(ErrorSocketBind, "cannot bind listening socket")
	xerr.Register(ErrorSocketListen, "cannot listen on socket")
}
