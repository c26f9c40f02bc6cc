package report

import (
	"fmt"
	"strings"

	"lanterna/internal/domain"
)

// TextRenderer produces the plain-text report format
type TextRenderer struct{}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (TextRenderer) Extension() string   { return "txt" }

func (TextRenderer) Render(snapshot *domain.DiagnosticSnapshot) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	section := func(title string) {
		b.WriteString(rule + "\n")
		b.WriteString(title + "\n")
		b.WriteString(rule + "\n")
	}

	section("Lanterna Diagnostics Report")
	fmt.Fprintf(&b, "Generated: %s\n", snapshot.GeneratedAt.Format(timeLayout))
	if snapshot.Hostname != "" {
		fmt.Fprintf(&b, "Hostname:  %s\n", snapshot.Hostname)
	}
	fmt.Fprintf(&b, "Version:   %s\n\n", snapshot.Version)

	section("Overall Status: " + strings.ToUpper(string(snapshot.Status)))
	for _, finding := range snapshot.Findings {
		fmt.Fprintf(&b, "  - %s\n", finding)
	}
	b.WriteString("\n")

	section("Active Interface")
	if info := snapshot.LocalInfo; info != nil {
		fmt.Fprintf(&b, "  Interface:      %s\n", info.InterfaceName)
		fmt.Fprintf(&b, "  IP:             %s/%d\n", info.IPv4, info.PrefixLen)
		fmt.Fprintf(&b, "  MAC:            %s\n", info.MAC)
		fmt.Fprintf(&b, "  Gateway:        %s\n", orNA(info.Gateway))
		fmt.Fprintf(&b, "  Gateway MAC:    %s\n", orNA(info.GatewayMAC))
		fmt.Fprintf(&b, "  Gateway Vendor: %s\n", orNA(info.GatewayVendor))
		fmt.Fprintf(&b, "  DNS:            %s\n", dnsText(info))
		fmt.Fprintf(&b, "  DHCP:           %s\n", dhcpText(info))
		fmt.Fprintf(&b, "  Link Speed:     %s\n", linkSpeedText(info))
	} else {
		b.WriteString("  Unavailable\n")
	}
	b.WriteString("\n")

	section("Recent Probes")
	if len(snapshot.Outcomes) == 0 {
		b.WriteString("  No probes executed\n")
	}
	for i := range snapshot.Outcomes {
		o := &snapshot.Outcomes[i]
		fmt.Fprintf(&b, "  - %s %s\n", o.Kind, o.Target)
		fmt.Fprintf(&b, "    Time:    %s\n", o.StartedAt.Format(timeLayout))
		fmt.Fprintf(&b, "    Elapsed: %.0f ms\n", o.ElapsedMS)
		fmt.Fprintf(&b, "    Exit:    %s\n", o.ExitStatus)
		fmt.Fprintf(&b, "    Summary: %s\n", summaryLine(o))
	}
	b.WriteString("\n")

	section("Link Discovery")
	if d := snapshot.Discovery; d != nil {
		fmt.Fprintf(&b, "  Status: %s\n", d.Status)
		if d.Reason != "" {
			fmt.Fprintf(&b, "  Reason: %s\n", d.Reason)
		}
		if n := d.Neighbor; n != nil {
			b.WriteString("  Neighbor:\n")
			fmt.Fprintf(&b, "    Protocol:    %s\n", strings.ToUpper(string(n.Protocol)))
			fmt.Fprintf(&b, "    Device ID:   %s\n", n.DeviceID)
			fmt.Fprintf(&b, "    Port:        %s\n", n.PortID)
			if n.SystemName != "" {
				fmt.Fprintf(&b, "    System Name: %s\n", n.SystemName)
			}
			if n.SystemDescription != "" {
				fmt.Fprintf(&b, "    Description: %s\n", n.SystemDescription)
			}
			if n.ManagementAddress != "" {
				fmt.Fprintf(&b, "    Mgmt Addr:   %s\n", n.ManagementAddress)
			}
			if len(n.Capabilities) > 0 {
				fmt.Fprintf(&b, "    Roles:       %s\n", strings.Join(n.Capabilities, ", "))
			}
		}
	} else {
		b.WriteString("  No discovery attempt recorded\n")
	}

	return b.String()
}

func orNA(value string) string {
	if value == "" {
		return "n/a"
	}
	return value
}
