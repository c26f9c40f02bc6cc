package report

import (
	"strings"
	"testing"
	"time"

	"lanterna/internal/domain"
)

func sampleSnapshot() *domain.DiagnosticSnapshot {
	avg := 12.0
	enabled := true
	return &domain.DiagnosticSnapshot{
		GeneratedAt: time.Date(2026, 8, 25, 14, 3, 55, 0, time.UTC),
		Version:     "0.1.0",
		Hostname:    "devbox",
		Status:      domain.StatusWarn,
		Findings: []string{
			"ping to 10.255.255.1 lost all 4 packets",
			"Link discovery unavailable: Packet capture requires elevated privileges",
		},
		LocalInfo: &domain.LocalNetInfo{
			InterfaceName: "eth0",
			IPv4:          "192.168.1.50",
			PrefixLen:     24,
			MAC:           "aa:bb:cc:00:11:22",
			Gateway:       "192.168.1.1",
			GatewayMAC:    "a4:2b:b0:c9:2f:41",
			GatewayVendor: "UNKNOWN",
			DNSServers:    []string{"192.168.1.1", "1.1.1.1"},
			DHCPEnabled:   &enabled,
			LinkSpeedMbps: 1000,
		},
		Outcomes: []domain.ProbeOutcome{
			{
				Kind:       domain.ProbeKindPing,
				Target:     "example.com",
				StartedAt:  time.Date(2026, 8, 25, 14, 1, 2, 0, time.UTC),
				ExitStatus: 0,
				ElapsedMS:  3042,
				ParseOK:    true,
				Summary: &domain.ProbeSummary{
					Ping: &domain.PingSummary{Sent: 4, Received: 4, AvgLatencyMs: &avg},
				},
			},
			{
				Kind:       domain.ProbeKindTraceRoute,
				Target:     "example.com",
				StartedAt:  time.Date(2026, 8, 25, 14, 2, 10, 0, time.UTC),
				ExitStatus: domain.ExitTimeout,
				ElapsedMS:  15000,
			},
		},
		Discovery: domain.AvailableResult(&domain.NeighborDescriptor{
			Protocol:          domain.ProtocolLLDP,
			DeviceID:          "de:ad:be:ef:00:01",
			PortID:            "Gi1/0/24",
			SystemName:        "sw-core-01",
			ManagementAddress: "192.168.1.2",
			Capabilities:      []string{"Bridge", "Router"},
		}),
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"md", "md"},
		{"MD", "md"},
		{" md ", "md"},
		{"txt", "txt"},
		{"", "txt"},
		{"pdf", "txt"},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			if got := ForFormat(tt.format).Extension(); got != tt.want {
				t.Errorf("ForFormat(%q).Extension() = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestTextRender(t *testing.T) {
	out := TextRenderer{}.Render(sampleSnapshot())

	wantFragments := []string{
		strings.Repeat("=", 60),
		"Lanterna Diagnostics Report",
		"Generated: 2026-08-25 14:03:55",
		"Hostname:  devbox",
		"Version:   0.1.0",
		"Overall Status: WARN",
		"- ping to 10.255.255.1 lost all 4 packets",
		"Interface:      eth0",
		"IP:             192.168.1.50/24",
		"Gateway Vendor: UNKNOWN",
		"DNS:            192.168.1.1, 1.1.1.1",
		"DHCP:           enabled",
		"Link Speed:     1000 Mbps",
		"- ping example.com",
		"Summary: Sent: 4 | Received: 4 | Avg: 12.0 ms",
		"- tracert example.com",
		"Exit:    timeout",
		"Summary: Output not parsed, raw transcript retained",
		"Status: available",
		"Protocol:    LLDP",
		"Device ID:   de:ad:be:ef:00:01",
		"Port:        Gi1/0/24",
		"System Name: sw-core-01",
		"Mgmt Addr:   192.168.1.2",
		"Roles:       Bridge, Router",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(out, fragment) {
			t.Errorf("text report missing %q\n---\n%s", fragment, out)
		}
	}
}

func TestMarkdownRender(t *testing.T) {
	out := MarkdownRenderer{}.Render(sampleSnapshot())

	wantFragments := []string{
		"# Lanterna Diagnostics Report",
		"- Generated: 2026-08-25 14:03:55",
		"## Overall Status: WARN",
		"- ping to 10.255.255.1 lost all 4 packets",
		"## Active Interface",
		"- IP: 192.168.1.50/24",
		"- DHCP: enabled",
		"## Recent Probes",
		"### PING example.com",
		"- Summary: Sent: 4 | Received: 4 | Avg: 12.0 ms",
		"### TRACERT example.com",
		"- Exit: timeout",
		"## Link Discovery",
		"- Status: available",
		"  - Protocol: LLDP",
		"  - Port: Gi1/0/24",
		"  - Roles: Bridge, Router",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(out, fragment) {
			t.Errorf("markdown report missing %q\n---\n%s", fragment, out)
		}
	}

	if strings.Contains(out, strings.Repeat("=", 60)) {
		t.Error("markdown report contains text-format rules")
	}
}

func TestRenderEmptySnapshot(t *testing.T) {
	snapshot := &domain.DiagnosticSnapshot{
		GeneratedAt: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		Version:     "0.1.0",
		Status:      domain.StatusFail,
		Findings:    []string{"No active interface detected"},
	}

	for _, r := range []Renderer{TextRenderer{}, MarkdownRenderer{}} {
		out := r.Render(snapshot)
		for _, fragment := range []string{"Unavailable", "No probes executed", "No discovery attempt recorded"} {
			if !strings.Contains(out, fragment) {
				t.Errorf("%s report missing %q", r.Extension(), fragment)
			}
		}
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 8, 25, 14, 3, 55, 0, time.UTC)

	if got := Filename(TextRenderer{}, at); got != "lanterna_report_20260825_140355.txt" {
		t.Errorf("Filename() = %q", got)
	}
	if got := Filename(MarkdownRenderer{}, at); got != "lanterna_report_20260825_140355.md" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestSummaryLine(t *testing.T) {
	avg := 11.5
	tests := []struct {
		name    string
		outcome domain.ProbeOutcome
		want    string
	}{
		{
			"ping with average",
			domain.ProbeOutcome{ParseOK: true, Summary: &domain.ProbeSummary{
				Ping: &domain.PingSummary{Sent: 4, Received: 3, AvgLatencyMs: &avg},
			}},
			"Sent: 4 | Received: 3 | Avg: 11.5 ms",
		},
		{
			"ping without average",
			domain.ProbeOutcome{ParseOK: true, Summary: &domain.ProbeSummary{
				Ping: &domain.PingSummary{Sent: 4, Received: 0},
			}},
			"Sent: 4 | Received: 0 | Avg: n/a",
		},
		{
			"dns",
			domain.ProbeOutcome{ParseOK: true, Summary: &domain.ProbeSummary{
				DNS: &domain.DNSSummary{RecordCount: 2},
			}},
			"Records: 2",
		},
		{
			"reachability",
			domain.ProbeOutcome{ParseOK: true, Summary: &domain.ProbeSummary{
				TCP: &domain.TCPSummary{PingSucceeded: true, TCPSucceeded: true, RemoteAddress: "93.184.216.34", RemotePort: 443},
			}},
			"Ping: true | TCP: true | Remote: 93.184.216.34:443",
		},
		{
			"trace",
			domain.ProbeOutcome{ParseOK: true, Summary: &domain.ProbeSummary{
				Trace: &domain.TraceSummary{HopCount: 7},
			}},
			"Hops: 7",
		},
		{
			"unparsed",
			domain.ProbeOutcome{ParseOK: false},
			"Output not parsed, raw transcript retained",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summaryLine(&tt.outcome); got != tt.want {
				t.Errorf("summaryLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
