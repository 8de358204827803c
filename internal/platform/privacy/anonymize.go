// Package privacy masks values that identify a person before they are logged.
package privacy

import (
	"net"
	"net/netip"
)

// AnonymizeIP keeps the /24 network of an IPv4 address and the /48 prefix of
// an IPv6 address. It returns "unknown" for an empty value and "invalid" when
// ip does not parse.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap().WithZone("")

	bits := 48
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}

// AnonymizeRemoteAddr anonymizes the host of an http.Request RemoteAddr, which
// usually carries a port.
func AnonymizeRemoteAddr(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	return AnonymizeIP(host)
}
