package probe

import (
	"net"
	"regexp"
	"strconv"
	"strings"

	"lanterna/internal/domain"
)

// Output shapes the parsers accept are the C-locale forms of iputils
// ping / BSD traceroute / nslookup on Unix and their counterparts on
// Windows, plus the reachability transcript the native tnc probe
// renders itself.
var (
	// matches one echo reply line; "time<1ms" on Windows uses '<'
	pingReplyRe = regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`)
	// "4 packets transmitted, 3 received" (Linux) or
	// "4 packets transmitted, 3 packets received" (BSD)
	pingStatsUnixRe = regexp.MustCompile(`(\d+) packets transmitted, (\d+)(?: packets)? received`)
	// "Packets: Sent = 4, Received = 3" (Windows)
	pingStatsWinRe = regexp.MustCompile(`Sent = (\d+), Received = (\d+)`)
	// "www.example.org canonical name = example.org."
	dnsCNAMERe = regexp.MustCompile(`^(\S+)\s+canonical name = (\S+?)\.?$`)
)

// Parse lifts raw probe output into a typed summary. Returns
// (nil, false) when the text does not match the expected shape for the
// kind; the caller then treats the raw text as authoritative.
func Parse(kind domain.ProbeKind, stdout string) (*domain.ProbeSummary, bool) {
	switch kind {
	case domain.ProbeKindPing:
		if s, ok := parsePing(stdout); ok {
			return &domain.ProbeSummary{Ping: s}, true
		}
	case domain.ProbeKindDNS:
		if s, ok := parseDNS(stdout); ok {
			return &domain.ProbeSummary{DNS: s}, true
		}
	case domain.ProbeKindTCP:
		if s, ok := parseReachability(stdout); ok {
			return &domain.ProbeSummary{TCP: s}, true
		}
	case domain.ProbeKindTraceRoute:
		if s, ok := parseTrace(stdout); ok {
			return &domain.ProbeSummary{Trace: s}, true
		}
	}
	return nil, false
}

// parsePing reads the statistics line for sent/received counts and
// averages the per-reply times. The statistics line is authoritative:
// an unreachable target produces no reply lines at all.
func parsePing(out string) (*domain.PingSummary, bool) {
	var times []float64
	for _, m := range pingReplyRe.FindAllStringSubmatch(out, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			times = append(times, v)
		}
	}

	summary := &domain.PingSummary{}

	if m := pingStatsUnixRe.FindStringSubmatch(out); m != nil {
		summary.Sent, _ = strconv.Atoi(m[1])
		summary.Received, _ = strconv.Atoi(m[2])
	} else if m := pingStatsWinRe.FindStringSubmatch(out); m != nil {
		summary.Sent, _ = strconv.Atoi(m[1])
		summary.Received, _ = strconv.Atoi(m[2])
	} else if len(times) > 0 {
		// Killed before the statistics line: count what came back
		summary.Sent = len(times)
		summary.Received = len(times)
	} else {
		return nil, false
	}

	if len(times) > 0 && summary.Received > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		avg := sum / float64(len(times))
		summary.AvgLatencyMs = &avg
	}

	return summary, true
}

// parseDNS walks nslookup output. The resolver preamble (the first
// Server/Address pair) is skipped; answer records are kept in order of
// appearance. An answer section with zero records (NXDOMAIN) still
// parses - the empty summary is the finding.
func parseDNS(out string) (*domain.DNSSummary, bool) {
	var records []domain.DNSRecord
	sawServer := false
	inAnswer := false
	currentName := ""

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)

		if !inAnswer {
			if strings.HasPrefix(trimmed, "Server:") {
				sawServer = true
				continue
			}
			// the preamble ends at the first blank line
			if sawServer && trimmed == "" {
				inAnswer = true
			}
			if sawServer {
				continue
			}
		}

		if m := dnsCNAMERe.FindStringSubmatch(trimmed); m != nil {
			records = append(records, domain.DNSRecord{Type: "CNAME", Name: m[1], Value: m[2]})
			continue
		}
		if name, ok := strings.CutPrefix(trimmed, "Name:"); ok {
			currentName = strings.TrimSpace(name)
			continue
		}
		if addrs, ok := strings.CutPrefix(trimmed, "Addresses:"); ok {
			appendAddressRecord(&records, currentName, strings.TrimSpace(addrs))
			continue
		}
		if addr, ok := strings.CutPrefix(trimmed, "Address:"); ok {
			if currentName != "" {
				appendAddressRecord(&records, currentName, strings.TrimSpace(addr))
			}
			continue
		}
		if aliases, ok := strings.CutPrefix(trimmed, "Aliases:"); ok {
			for _, alias := range strings.Fields(aliases) {
				records = append(records, domain.DNSRecord{
					Type:  "CNAME",
					Name:  strings.TrimSuffix(alias, "."),
					Value: currentName,
				})
			}
			continue
		}
		// bare address continuation under a Windows "Addresses:" block
		if currentName != "" && trimmed != "" && net.ParseIP(trimmed) != nil {
			appendAddressRecord(&records, currentName, trimmed)
		}
	}

	if !sawServer && len(records) == 0 {
		return nil, false
	}

	return &domain.DNSSummary{RecordCount: len(records), Records: records}, true
}

// appendAddressRecord classifies one address value as A or AAAA
func appendAddressRecord(records *[]domain.DNSRecord, name, value string) {
	ip := net.ParseIP(value)
	if ip == nil {
		return
	}
	recordType := "AAAA"
	if ip.To4() != nil {
		recordType = "A"
	}
	*records = append(*records, domain.DNSRecord{Type: recordType, Name: name, Value: value})
}

// parseTrace keeps every hop line verbatim; a line is a hop when its
// first field is the hop index. Hop content stays opaque.
func parseTrace(out string) (*domain.TraceSummary, bool) {
	var hops []domain.TraceHop
	sawHeader := false

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "traceroute to") || strings.HasPrefix(trimmed, "Tracing route") {
			sawHeader = true
			continue
		}
		fields := strings.Fields(trimmed)
		if index, err := strconv.Atoi(fields[0]); err == nil {
			hops = append(hops, domain.TraceHop{Index: index, Raw: trimmed})
		}
	}

	if !sawHeader && len(hops) == 0 {
		return nil, false
	}

	return &domain.TraceSummary{HopCount: len(hops), Hops: hops}, true
}

// parseReachability lifts the Key : Value transcript of the native
// combined probe. Both verdict keys must be present.
func parseReachability(out string) (*domain.TCPSummary, bool) {
	summary := &domain.TCPSummary{}
	sawPing := false
	sawTCP := false

	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "RemoteAddress":
			summary.RemoteAddress = value
		case "RemotePort":
			summary.RemotePort, _ = strconv.Atoi(value)
		case "InterfaceAlias":
			summary.InterfaceName = value
		case "PingSucceeded":
			summary.PingSucceeded = strings.EqualFold(value, "true")
			sawPing = true
		case "TcpTestSucceeded":
			summary.TCPSucceeded = strings.EqualFold(value, "true")
			sawTCP = true
		}
	}

	if !sawPing || !sawTCP {
		return nil, false
	}
	return summary, true
}
