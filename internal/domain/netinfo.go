package domain

// LocalNetInfo is a snapshot of the active interface's addressing at
// collection time. Consumers receive copies; zero values mean the field
// could not be determined.
type LocalNetInfo struct {
	InterfaceName string   `json:"interface_name"`
	IPv4          string   `json:"ipv4"`
	PrefixLen     int      `json:"prefix_len"`
	MAC           string   `json:"mac"`
	Gateway       string   `json:"gateway,omitempty"`
	GatewayMAC    string   `json:"gateway_mac,omitempty"`
	GatewayVendor string   `json:"gateway_vendor,omitempty"`
	DNSServers    []string `json:"dns_servers,omitempty"`
	DHCPEnabled   *bool    `json:"dhcp_enabled,omitempty"` // nil = undetermined
	LinkSpeedMbps int      `json:"link_speed_mbps,omitempty"`
	Hostname      string   `json:"hostname,omitempty"`
}

// HasIPv4 reports whether the interface carries a usable IPv4 address.
func (i *LocalNetInfo) HasIPv4() bool {
	return i != nil && i.IPv4 != ""
}
