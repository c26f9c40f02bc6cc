package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProbeKind identifies one diagnostic check type
type ProbeKind string

const (
	ProbeKindPing       ProbeKind = "ping"    // ICMP echo round
	ProbeKindDNS        ProbeKind = "dns"     // name resolution
	ProbeKindTCP        ProbeKind = "tnc"     // combined ping + TCP connect
	ProbeKindTraceRoute ProbeKind = "tracert" // hop-by-hop route trace
)

// ParseProbeKind converts a wire string into a ProbeKind.
func ParseProbeKind(s string) (ProbeKind, error) {
	switch ProbeKind(strings.ToLower(strings.TrimSpace(s))) {
	case ProbeKindPing:
		return ProbeKindPing, nil
	case ProbeKindDNS:
		return ProbeKindDNS, nil
	case ProbeKindTCP:
		return ProbeKindTCP, nil
	case ProbeKindTraceRoute:
		return ProbeKindTraceRoute, nil
	}
	return "", fmt.Errorf("unknown probe kind %q", s)
}

// Valid reports whether the kind is one of the known checks.
func (k ProbeKind) Valid() bool {
	switch k {
	case ProbeKindPing, ProbeKindDNS, ProbeKindTCP, ProbeKindTraceRoute:
		return true
	}
	return false
}

// ProbeRequest names one check against one target. Consumed once.
type ProbeRequest struct {
	Kind   ProbeKind `json:"kind"`
	Target string    `json:"target"`
}

// Validate checks the request is runnable.
func (r ProbeRequest) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("unknown probe kind %q", string(r.Kind))
	}
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("probe target is required")
	}
	return nil
}

// ExitStatus is a child process exit code, or one of the synthetic
// negative statuses for runs that never produced a real code.
type ExitStatus int

const (
	ExitExecFailed ExitStatus = -1 // tool missing or crashed before exiting
	ExitTimeout    ExitStatus = -2 // hard wall-clock timeout, child killed
	ExitCancelled  ExitStatus = -3 // caller cancelled, child killed
)

// Synthetic reports whether the status was assigned by the runner
// rather than returned by the child process.
func (e ExitStatus) Synthetic() bool { return e < 0 }

// IsTimeout reports whether the run was killed by its timeout.
func (e ExitStatus) IsTimeout() bool { return e == ExitTimeout }

// IsCancelled reports whether the run was cancelled by the caller.
func (e ExitStatus) IsCancelled() bool { return e == ExitCancelled }

func (e ExitStatus) String() string {
	switch e {
	case ExitExecFailed:
		return "exec-failed"
	case ExitTimeout:
		return "timeout"
	case ExitCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("%d", int(e))
}

// PingSummary counts one round of echo attempts.
type PingSummary struct {
	Sent         int      `json:"sent"`
	Received     int      `json:"received"`
	AvgLatencyMs *float64 `json:"avg_latency_ms,omitempty"` // absent when nothing came back
}

// DNSRecord is one resolved record in tool output order.
type DNSRecord struct {
	Type  string `json:"type"` // A, AAAA, CNAME, or OTHER
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DNSSummary lists the records a resolution produced.
type DNSSummary struct {
	RecordCount int         `json:"record_count"`
	Records     []DNSRecord `json:"records"`
}

// TCPSummary reports the two legs of the combined reachability probe.
type TCPSummary struct {
	PingSucceeded bool   `json:"ping_succeeded"`
	TCPSucceeded  bool   `json:"tcp_succeeded"`
	RemoteAddress string `json:"remote_address"`
	RemotePort    int    `json:"remote_port"`
	InterfaceName string `json:"interface_name,omitempty"`
}

// TraceHop is one line of route output; content is opaque to the summary.
type TraceHop struct {
	Index int    `json:"hop_index"`
	Raw   string `json:"raw_line"`
}

// TraceSummary counts route hops in order.
type TraceSummary struct {
	HopCount int        `json:"hop_count"`
	Hops     []TraceHop `json:"hops"`
}

// ProbeSummary is a tagged union: exactly one variant is set, matching
// the outcome's kind.
type ProbeSummary struct {
	Ping  *PingSummary  `json:"ping,omitempty"`
	DNS   *DNSSummary   `json:"dns,omitempty"`
	TCP   *TCPSummary   `json:"tnc,omitempty"`
	Trace *TraceSummary `json:"tracert,omitempty"`
}

// ProbeOutcome is the complete result of one probe run. Immutable once
// returned; Summary is non-nil only when ParseOK is true, otherwise the
// raw text is authoritative.
type ProbeOutcome struct {
	Kind       ProbeKind     `json:"kind"`
	Target     string        `json:"target"`
	StartedAt  time.Time     `json:"started_at"`
	RawStdout  string        `json:"raw_stdout"`
	RawStderr  string        `json:"raw_stderr,omitempty"`
	ExitStatus ExitStatus    `json:"exit_status"`
	Elapsed    time.Duration `json:"-"`
	ElapsedMS  float64       `json:"elapsed_ms"`
	Summary    *ProbeSummary `json:"summary,omitempty"`
	ParseOK    bool          `json:"parse_ok"`
}

// FailedOutright reports whether the run produced nothing usable:
// a synthetic exit status, or a real failure code with no parseable
// summary to fall back on.
func (o ProbeOutcome) FailedOutright() bool {
	if o.ExitStatus.Synthetic() {
		return true
	}
	return o.ExitStatus != 0 && !o.ParseOK
}
