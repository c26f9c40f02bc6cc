// Package netinfo reads the local machine's network configuration:
// the active interface with its IPv4 addressing, the default gateway
// and its hardware identity, DNS servers, and link state. Collection
// is best-effort per field; only a completely unusable environment is
// an error.
package netinfo

import (
	"errors"
	"net"
	"strings"
)

// ErrNoActiveInterface means no up, non-loopback, physical interface
// carries an IPv4 address.
var ErrNoActiveInterface = errors.New("no active IPv4 interface found")

// virtualPrefixes name interfaces created by container runtimes and
// overlay networks. They carry addresses but never the uplink.
var virtualPrefixes = []string{"veth", "docker", "br-", "cni", "flannel"}

func isVirtual(name string) bool {
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// ActiveInterface picks the interface diagnostics should describe:
// up, not loopback, not a container/overlay device, and holding an
// IPv4 address. The first match in kernel order wins.
func ActiveInterface() (*net.Interface, net.IP, *net.IPNet, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, nil, nil, err
	}

	for i := range ifaces {
		iface := &ifaces[i]
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if isVirtual(iface.Name) {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return iface, ip4, ipnet, nil
			}
		}
	}

	return nil, nil, nil, ErrNoActiveInterface
}
