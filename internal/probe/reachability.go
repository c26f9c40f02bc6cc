package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	goping "github.com/go-ping/ping"

	"lanterna/internal/domain"
	"lanterna/internal/logger"
)

// reachability is the working state of one combined tnc check
type reachability struct {
	Host          string
	Port          int
	RemoteAddress string
	SourceAddress string
	InterfaceName string
	PingOK        bool
	RTTMs         float64
	TCPOK         bool
	DialErr       error
}

// runReachability performs the combined ping + TCP connect check
// without spawning a process. The transcript rendered into raw_stdout
// is the structured output the parser lifts the summary from, so leg
// failures surface in the summary with exit status 0.
func (r *Runner) runReachability(ctx context.Context, req domain.ProbeRequest, started time.Time) domain.ProbeOutcome {
	runCtx, cancel := context.WithTimeout(ctx, r.config.TCPTimeout)
	defer cancel()

	host, port := splitTargetPort(req.Target, r.config.DefaultTCPPort)
	result := reachability{Host: host, Port: port}

	icmpEcho(runCtx, &result)
	tcpConnect(runCtx, &result)

	if result.SourceAddress != "" {
		result.InterfaceName = interfaceForAddress(result.SourceAddress)
	}

	outcome := domain.ProbeOutcome{
		Kind:      req.Kind,
		Target:    req.Target,
		StartedAt: started,
		RawStdout: result.transcript(),
	}
	if result.DialErr != nil {
		outcome.RawStderr = fmt.Sprintf("TCP connect to %s:%d failed: %v", host, port, result.DialErr)
	}

	switch {
	case ctx.Err() == context.Canceled:
		outcome.ExitStatus = domain.ExitCancelled
	case runCtx.Err() == context.DeadlineExceeded:
		outcome.ExitStatus = domain.ExitTimeout
	default:
		outcome.ExitStatus = 0
	}
	outcome.Elapsed = time.Since(started)
	outcome.ElapsedMS = float64(outcome.Elapsed) / float64(time.Millisecond)

	if summary, ok := Parse(req.Kind, outcome.RawStdout); ok {
		outcome.Summary = summary
		outcome.ParseOK = true
	}

	logger.Debugf("probe tnc %s: ping=%v tcp=%v exit=%s",
		req.Target, result.PingOK, result.TCPOK, outcome.ExitStatus)

	return outcome
}

// icmpEcho sends one echo request. A privileged raw socket is tried
// first; without the needed rights it falls back to an unprivileged
// UDP ping. A failure of both legs just leaves PingOK false.
func icmpEcho(ctx context.Context, result *reachability) {
	for _, privileged := range []bool{true, false} {
		pinger, err := goping.NewPinger(result.Host)
		if err != nil {
			return // unresolvable host, both attempts would fail
		}
		pinger.SetPrivileged(privileged)
		pinger.Count = 1
		pinger.Timeout = remainingBudget(ctx, 3*time.Second)

		if result.RemoteAddress == "" {
			result.RemoteAddress = pinger.IPAddr().String()
		}

		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				pinger.Stop()
			case <-done:
			}
		}()
		err = pinger.Run()
		close(done)

		if err != nil {
			// socket setup failed, retry the unprivileged flavor
			continue
		}

		stats := pinger.Statistics()
		if stats.PacketsRecv > 0 {
			result.PingOK = true
			result.RTTMs = float64(stats.AvgRtt) / float64(time.Millisecond)
		}
		return
	}
}

// tcpConnect attempts one TCP connection to host:port
func tcpConnect(ctx context.Context, result *reachability) {
	dialer := net.Dialer{}
	addr := net.JoinHostPort(result.Host, strconv.Itoa(result.Port))

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		result.DialErr = err
		return
	}
	defer conn.Close()

	result.TCPOK = true
	if remote, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		result.RemoteAddress = remote.IP.String()
	}
	if local, ok := conn.LocalAddr().(*net.TCPAddr); ok {
		result.SourceAddress = local.IP.String()
	}
}

// transcript renders the deterministic Key : Value form the parser
// reads back. Optional lines are omitted rather than left blank.
func (t reachability) transcript() string {
	var b strings.Builder
	write := func(key, value string) {
		fmt.Fprintf(&b, "%-16s : %s\n", key, value)
	}

	write("ComputerName", t.Host)
	if t.RemoteAddress != "" {
		write("RemoteAddress", t.RemoteAddress)
	}
	write("RemotePort", strconv.Itoa(t.Port))
	if t.InterfaceName != "" {
		write("InterfaceAlias", t.InterfaceName)
	}
	if t.SourceAddress != "" {
		write("SourceAddress", t.SourceAddress)
	}
	write("PingSucceeded", boolWord(t.PingOK))
	if t.PingOK {
		write("PingReplyDetails", fmt.Sprintf("%.1f ms", t.RTTMs))
	}
	write("TcpTestSucceeded", boolWord(t.TCPOK))

	return b.String()
}

func boolWord(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// splitTargetPort separates an optional :port suffix from the target.
// Bare IPv6 literals keep their colons; a bracketed literal may carry
// a port like any hostname.
func splitTargetPort(target string, defaultPort int) (string, int) {
	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		return target, defaultPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return host, defaultPort
	}
	return host, port
}

// interfaceForAddress finds the interface carrying the given local IP
func interfaceForAddress(address string) string {
	ip := net.ParseIP(address)
	if ip == nil {
		return ""
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if ok && ipNet.IP.Equal(ip) {
				return iface.Name
			}
		}
	}
	return ""
}

// remainingBudget returns the smaller of the preferred duration and
// the time left before the context deadline
func remainingBudget(ctx context.Context, preferred time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return preferred
	}
	remaining := time.Until(deadline)
	if remaining < preferred {
		return remaining
	}
	return preferred
}
