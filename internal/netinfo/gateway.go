package netinfo

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
)

// defaultGateway returns the IPv4 default gateway and the interface
// the route goes through. Reads /proc/net/route on Linux.
func defaultGateway() (string, string, bool) {
	data, err := os.ReadFile("/proc/net/route")
	if err != nil {
		return "", "", false
	}
	return parseRouteTable(string(data))
}

// parseRouteTable finds the default route (destination 00000000) in a
// /proc/net/route dump. The gateway column is hex, little-endian.
func parseRouteTable(table string) (gateway, iface string, ok bool) {
	lines := strings.Split(table, "\n")
	if len(lines) < 2 {
		return "", "", false
	}

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if fields[1] != "00000000" {
			continue
		}

		gw := fields[2]
		if len(gw) != 8 {
			continue
		}
		var b1, b2, b3, b4 uint8
		if _, err := fmt.Sscanf(gw, "%02x%02x%02x%02x", &b4, &b3, &b2, &b1); err != nil {
			continue
		}
		return fmt.Sprintf("%d.%d.%d.%d", b1, b2, b3, b4), fields[0], true
	}

	return "", "", false
}

// gatewayMAC resolves the gateway's hardware address from the kernel
// ARP table, falling back to the arp command on systems without procfs.
func gatewayMAC(gatewayIP string) string {
	if gatewayIP == "" {
		return ""
	}

	if data, err := os.ReadFile("/proc/net/arp"); err == nil {
		if mac := parseARPTable(string(data), gatewayIP); mac != "" {
			return mac
		}
	}

	out, err := exec.Command("arp", "-a").Output()
	if err != nil {
		return ""
	}
	return parseARPOutput(string(out), gatewayIP)
}

// parseARPTable scans a /proc/net/arp dump for the entry matching ip.
// Incomplete entries (all-zero hardware address) are skipped.
func parseARPTable(table, ip string) string {
	for _, line := range strings.Split(table, "\n")[1:] {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[0] != ip {
			continue
		}
		if fields[3] == "00:00:00:00:00:00" {
			continue
		}
		if _, err := net.ParseMAC(fields[3]); err == nil {
			return fields[3]
		}
	}
	return ""
}

// parseARPOutput scans `arp -a` output for the line mentioning ip and
// returns the first field that parses as a hardware address. Both the
// Unix "? (ip) at mac" and the Windows columnar shapes are accepted.
func parseARPOutput(out, ip string) string {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, ip) {
			continue
		}
		for _, field := range strings.Fields(line) {
			if hw, err := net.ParseMAC(field); err == nil {
				return hw.String()
			}
		}
	}
	return ""
}
