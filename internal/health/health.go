// Package health reduces the assistant's current knowledge into one
// OK/WARN/FAIL signal with supporting findings. Aggregation is a pure
// function over its inputs: same inputs, same status, same finding
// texts in the same order.
package health

import (
	"fmt"
	"strings"

	"lanterna/internal/domain"
)

// Aggregate classifies the given state. Probe findings come first,
// then local interface findings, then discovery notices, then
// informational notes. Any of the inputs may be absent.
func Aggregate(info *domain.LocalNetInfo, outcomes []domain.ProbeOutcome, discovery *domain.LinkDiscoveryResult) (domain.OverallStatus, []string) {
	status := domain.StatusOK
	var findings []string
	problems := 0

	add := func(s domain.OverallStatus, text string) {
		status = status.Worse(s)
		if s != domain.StatusOK {
			problems++
		}
		findings = append(findings, text)
	}

	for i := range outcomes {
		classifyOutcome(&outcomes[i], add)
	}
	classifyInterface(info, add)
	classifyDiscovery(discovery, add)

	if problems == 0 {
		add(domain.StatusOK, "Interface is up with IPv4 configuration")
	}

	return status, findings
}

// classifyOutcome emits findings for one probe run. A clean run with a
// fully successful summary emits nothing.
func classifyOutcome(o *domain.ProbeOutcome, add func(domain.OverallStatus, string)) {
	switch {
	case o.ExitStatus.IsTimeout():
		add(domain.StatusFail, fmt.Sprintf("%s probe to %s timed out", o.Kind, o.Target))
		return
	case o.ExitStatus.IsCancelled():
		add(domain.StatusFail, fmt.Sprintf("%s probe to %s was cancelled", o.Kind, o.Target))
		return
	case o.ExitStatus == domain.ExitExecFailed:
		add(domain.StatusFail, fmt.Sprintf("%s probe to %s could not start", o.Kind, o.Target))
		return
	case o.ExitStatus != 0 && !o.ParseOK:
		add(domain.StatusFail, fmt.Sprintf("%s probe to %s exited with status %d", o.Kind, o.Target, int(o.ExitStatus)))
		return
	}

	if !o.ParseOK || o.Summary == nil {
		add(domain.StatusWarn, fmt.Sprintf("%s probe to %s produced unrecognized output", o.Kind, o.Target))
		return
	}

	switch {
	case o.Summary.Ping != nil:
		classifyPing(o.Target, o.Summary.Ping, add)
	case o.Summary.DNS != nil:
		if o.Summary.DNS.RecordCount == 0 {
			add(domain.StatusWarn, fmt.Sprintf("dns lookup for %s returned no records", o.Target))
		}
	case o.Summary.TCP != nil:
		classifyReachability(o.Target, o.Summary.TCP, add)
	case o.Summary.Trace != nil:
		if o.Summary.Trace.HopCount == 0 {
			add(domain.StatusWarn, fmt.Sprintf("trace route to %s recorded no hops", o.Target))
		}
	}
}

func classifyPing(target string, ping *domain.PingSummary, add func(domain.OverallStatus, string)) {
	switch {
	case ping.Sent > 0 && ping.Received == 0:
		add(domain.StatusWarn, fmt.Sprintf("ping to %s lost all %d packets", target, ping.Sent))
	case ping.Received < ping.Sent:
		add(domain.StatusWarn, fmt.Sprintf("ping to %s lost %d of %d packets", target, ping.Sent-ping.Received, ping.Sent))
	}
}

func classifyReachability(target string, tcp *domain.TCPSummary, add func(domain.OverallStatus, string)) {
	if !tcp.PingSucceeded {
		add(domain.StatusWarn, fmt.Sprintf("reachability check to %s: ICMP echo failed", target))
	}
	if !tcp.TCPSucceeded {
		add(domain.StatusWarn, fmt.Sprintf("reachability check to %s: TCP connect to port %d failed", target, tcp.RemotePort))
	}
}

// classifyInterface applies the addressing rules: no usable interface
// is fatal, missing niceties only warn.
func classifyInterface(info *domain.LocalNetInfo, add func(domain.OverallStatus, string)) {
	if info == nil || info.InterfaceName == "" {
		add(domain.StatusFail, "No active interface detected")
		return
	}
	if !info.HasIPv4() {
		add(domain.StatusFail, "No IPv4 address detected")
	}
	if info.Gateway == "" {
		add(domain.StatusWarn, "Default gateway not detected")
	}
	if info.DHCPEnabled != nil && !*info.DHCPEnabled {
		add(domain.StatusWarn, "DHCP disabled")
	}
	if info.LinkSpeedMbps == 0 {
		add(domain.StatusWarn, "Link speed unavailable")
	}
}

func classifyDiscovery(discovery *domain.LinkDiscoveryResult, add func(domain.OverallStatus, string)) {
	if discovery == nil {
		return
	}

	switch discovery.Status {
	case domain.DiscoveryAvailable:
		if discovery.Neighbor != nil {
			add(domain.StatusOK, neighborNote(discovery.Neighbor))
		}
	case domain.DiscoveryNotInstalled, domain.DiscoveryUnavailable:
		add(domain.StatusWarn, "Link discovery unavailable: "+discovery.Reason)
	}
}

func neighborNote(n *domain.NeighborDescriptor) string {
	name := n.SystemName
	if name == "" {
		name = n.DeviceID
	}
	return fmt.Sprintf("Upstream device %s on port %s (%s)", name, n.PortID, strings.ToUpper(string(n.Protocol)))
}
