// Package report renders a diagnostic snapshot into a downloadable
// document. Two formats exist: plain text with ruled section headers,
// and markdown. Both present the same sections in the same order.
package report

import (
	"fmt"
	"strings"
	"time"

	"lanterna/internal/domain"
)

// timeLayout is the human-readable timestamp used inside reports
const timeLayout = "2006-01-02 15:04:05"

// Renderer turns one snapshot into a complete document
type Renderer interface {
	Render(snapshot *domain.DiagnosticSnapshot) string
	ContentType() string
	Extension() string
}

// ForFormat selects the renderer for a format name. Unrecognized
// formats fall back to plain text.
func ForFormat(format string) Renderer {
	if strings.ToLower(strings.TrimSpace(format)) == "md" {
		return MarkdownRenderer{}
	}
	return TextRenderer{}
}

// Filename builds the timestamped download name for a rendered report
func Filename(r Renderer, at time.Time) string {
	return fmt.Sprintf("lanterna_report_%s.%s", at.Format("20060102_150405"), r.Extension())
}

// summaryLine is the one-line digest of a probe outcome, or a note
// that only the raw transcript is available.
func summaryLine(o *domain.ProbeOutcome) string {
	if !o.ParseOK || o.Summary == nil {
		return "Output not parsed, raw transcript retained"
	}

	switch {
	case o.Summary.Ping != nil:
		p := o.Summary.Ping
		avg := "n/a"
		if p.AvgLatencyMs != nil {
			avg = fmt.Sprintf("%.1f ms", *p.AvgLatencyMs)
		}
		return fmt.Sprintf("Sent: %d | Received: %d | Avg: %s", p.Sent, p.Received, avg)
	case o.Summary.DNS != nil:
		return fmt.Sprintf("Records: %d", o.Summary.DNS.RecordCount)
	case o.Summary.TCP != nil:
		tcp := o.Summary.TCP
		return fmt.Sprintf("Ping: %t | TCP: %t | Remote: %s:%d",
			tcp.PingSucceeded, tcp.TCPSucceeded, tcp.RemoteAddress, tcp.RemotePort)
	case o.Summary.Trace != nil:
		return fmt.Sprintf("Hops: %d", o.Summary.Trace.HopCount)
	}
	return "Output not parsed, raw transcript retained"
}

func dhcpText(info *domain.LocalNetInfo) string {
	if info.DHCPEnabled == nil {
		return "unknown"
	}
	if *info.DHCPEnabled {
		return "enabled"
	}
	return "disabled"
}

func linkSpeedText(info *domain.LocalNetInfo) string {
	if info.LinkSpeedMbps <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d Mbps", info.LinkSpeedMbps)
}

func dnsText(info *domain.LocalNetInfo) string {
	if len(info.DNSServers) == 0 {
		return "none"
	}
	return strings.Join(info.DNSServers, ", ")
}
