package netmode

import (
	"fmt"
	stdnet "net"
	"strings"

	"github.com/shirou/gopsutil/v3/net"
)

// HasRoutableAddr reports whether the interface has an address that is
// neither loopback nor link-local. A CONNECTED notification with only a
// 169.254/fe80 address means DHCP never completed, so the interface is not
// usefully joined to a client network.
func HasRoutableAddr(iface string) (bool, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false, fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, in := range ifaces {
		if in.Name != iface {
			continue
		}
		for _, addr := range in.Addrs {
			host := addr.Addr
			if i := strings.IndexByte(host, '/'); i >= 0 {
				host = host[:i]
			}
			ip := stdnet.ParseIP(host)
			if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}
			return true, nil
		}
	}
	return false, nil
}
