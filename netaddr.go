package reactor

import (
	"net"

	"golang.org/x/sys/unix"
)

// lookupIPs resolves host to a list of IPs, trying it as a literal
// address first to avoid a resolver round trip in the common case.
func lookupIPs(host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}
	return net.LookupIP(host)
}

func domainFor(ip net.IP) int {
	if ip.To4() != nil {
		return unix.AF_INET
	}
	return unix.AF_INET6
}

func sockaddrFor(ip net.IP, port int) unix.Sockaddr {
	if v4 := ip.To4(); v4 != nil {
		var sa unix.SockaddrInet4
		sa.Port = port
		copy(sa.Addr[:], v4)
		return &sa
	}
	var sa unix.SockaddrInet6
	sa.Port = port
	copy(sa.Addr[:], ip.To16())
	return &sa
}
