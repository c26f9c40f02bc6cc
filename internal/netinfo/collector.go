package netinfo

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"lanterna/internal/domain"
	"lanterna/internal/logger"
)

// DefaultTTL bounds how stale a cached snapshot may be. Addressing
// rarely changes faster than this, and probing procfs per request
// would be wasteful.
const DefaultTTL = 5 * time.Second

// Collector produces LocalNetInfo snapshots with a short-lived cache.
// Safe for concurrent use.
type Collector struct {
	ttl  time.Duration
	now  func() time.Time
	read func() (*domain.LocalNetInfo, error)

	mu        sync.Mutex
	cached    *domain.LocalNetInfo
	fetchedAt time.Time
}

// NewCollector creates a collector over the real environment
func NewCollector(ttl time.Duration) *Collector {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Collector{ttl: ttl, now: time.Now, read: collectLocalInfo}
}

// NewCollectorWithSource creates a collector over a fixed snapshot
// source, for tests
func NewCollectorWithSource(ttl time.Duration, source func() (*domain.LocalNetInfo, error)) *Collector {
	c := NewCollector(ttl)
	c.read = source
	return c
}

// Collect returns the current snapshot, reusing the cached one while
// it is fresh. Callers receive their own copy.
func (c *Collector) Collect() (*domain.LocalNetInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return cloneInfo(c.cached), nil
	}

	info, err := c.read()
	if err != nil {
		return nil, fmt.Errorf("collect local network info: %w", err)
	}

	c.cached = info
	c.fetchedAt = c.now()
	return cloneInfo(info), nil
}

func cloneInfo(info *domain.LocalNetInfo) *domain.LocalNetInfo {
	clone := *info
	if info.DNSServers != nil {
		clone.DNSServers = append([]string(nil), info.DNSServers...)
	}
	if info.DHCPEnabled != nil {
		enabled := *info.DHCPEnabled
		clone.DHCPEnabled = &enabled
	}
	return &clone
}

// collectLocalInfo assembles a snapshot from the live system. Only a
// missing active interface is fatal; every other field degrades to
// its zero value.
func collectLocalInfo() (*domain.LocalNetInfo, error) {
	iface, ip, ipnet, err := ActiveInterface()
	if err != nil {
		return nil, err
	}

	ones, _ := ipnet.Mask.Size()
	info := &domain.LocalNetInfo{
		InterfaceName: iface.Name,
		IPv4:          ip.String(),
		PrefixLen:     ones,
		MAC:           iface.HardwareAddr.String(),
	}

	if gw, _, ok := defaultGateway(); ok {
		info.Gateway = gw
		info.GatewayMAC = gatewayMAC(gw)
		info.GatewayVendor = VendorForMAC(info.GatewayMAC)
	} else {
		logger.Debugf("no default gateway found for %s", iface.Name)
	}

	info.DNSServers = resolvConfServers()
	info.LinkSpeedMbps = linkSpeed(iface.Name)
	info.DHCPEnabled = dhcpEvidence(iface)

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}

	return info, nil
}

// resolvConfServers lists the nameserver entries from /etc/resolv.conf
func resolvConfServers() []string {
	data, err := os.ReadFile("/etc/resolv.conf")
	if err != nil {
		return nil
	}
	return parseResolvConf(string(data))
}

func parseResolvConf(content string) []string {
	var servers []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "nameserver ") {
			ns := strings.TrimSpace(strings.TrimPrefix(line, "nameserver "))
			if ns != "" {
				servers = append(servers, ns)
			}
		}
	}
	return servers
}

// linkSpeed reads the negotiated speed in Mbps from sysfs. Wireless
// and virtual devices report -1 there, which maps to 0 (unknown).
func linkSpeed(ifaceName string) int {
	data, err := os.ReadFile(filepath.Join("/sys/class/net", ifaceName, "speed"))
	if err != nil {
		return 0
	}
	return parseLinkSpeed(string(data))
}

func parseLinkSpeed(content string) int {
	speed, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil || speed <= 0 {
		return 0
	}
	return speed
}

// dhcpEvidence reports DHCP state only when a lease file proves it.
// No lease found means undetermined, not disabled, so the result stays
// nil in that case.
func dhcpEvidence(iface *net.Interface) *bool {
	enabled := true

	// dhclient records the interface inside the lease file
	for _, pattern := range []string{
		"/var/lib/dhcp/dhclient*.lease*",
		"/var/lib/dhclient/*.lease*",
	} {
		matches, _ := filepath.Glob(pattern)
		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if leaseMentionsInterface(string(data), iface.Name) {
				return &enabled
			}
		}
	}

	// NetworkManager names its internal lease files after the device
	matches, _ := filepath.Glob("/var/lib/NetworkManager/*-" + iface.Name + ".lease")
	if len(matches) > 0 {
		return &enabled
	}

	// systemd-networkd keys leases by interface index
	leasePath := filepath.Join("/run/systemd/netif/leases", strconv.Itoa(iface.Index))
	if _, err := os.Stat(leasePath); err == nil {
		return &enabled
	}

	return nil
}

func leaseMentionsInterface(content, ifaceName string) bool {
	return strings.Contains(content, `interface "`+ifaceName+`"`)
}
