package domain

import (
	"fmt"
	"net"
	"strconv"
)

// DefaultDebugPort is the conventional Chrome DevTools Protocol port.
const DefaultDebugPort = 9222

// Loopback hosts tried in order when connecting to a debugging port.
const (
	HostLocalhost = "localhost"
	HostLoopback  = "127.0.0.1"
)

// LoopbackHosts is the ordered candidate list for DebugEndpoint.Host.
var LoopbackHosts = []string{HostLocalhost, HostLoopback}

// DebugEndpoint is a browser remote-debugging address.
type DebugEndpoint struct {
	Host string
	Port int
}

// HTTPURL returns the discovery URL, e.g. http://localhost:9222.
func (e DebugEndpoint) HTTPURL() string {
	return "http://" + net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// VersionURL returns the handshake URL that yields the control endpoint.
func (e DebugEndpoint) VersionURL() string {
	return e.HTTPURL() + "/json/version"
}

// String implements fmt.Stringer.
func (e DebugEndpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}
