// Package probe executes point-in-time network diagnostics and lifts
// their raw output into typed summaries.
//
// External kinds (ping, dns, tracert) spawn exactly one child process
// with a hard per-kind deadline; the combined reachability check (tnc)
// runs natively. All failure modes are encoded in the returned
// ProbeOutcome - Run never returns an error and never panics.
package probe

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"time"

	"lanterna/internal/domain"
	"lanterna/internal/logger"
)

// Config holds per-kind deadlines and probe defaults
type Config struct {
	// PingTimeout bounds one round of 4 echo requests
	PingTimeout time.Duration
	// DNSTimeout bounds one nslookup invocation
	DNSTimeout time.Duration
	// TCPTimeout bounds the combined ping + TCP connect check
	TCPTimeout time.Duration
	// TraceTimeout bounds a full route trace (hard kill)
	TraceTimeout time.Duration
	// DefaultTCPPort is used when a tnc target omits the port
	DefaultTCPPort int
}

// DefaultConfig returns the authoritative per-kind deadlines
func DefaultConfig() Config {
	return Config{
		PingTimeout:    5 * time.Second,
		DNSTimeout:     4 * time.Second,
		TCPTimeout:     8 * time.Second,
		TraceTimeout:   15 * time.Second,
		DefaultTCPPort: 80,
	}
}

// Runner executes probe requests. Runs share no mutable state and are
// safe to execute concurrently.
type Runner struct {
	config Config
}

// NewRunner creates a probe runner
func NewRunner(config Config) *Runner {
	return &Runner{config: config}
}

// Timeout returns the wall-clock budget for a probe kind
func (r *Runner) Timeout(kind domain.ProbeKind) time.Duration {
	switch kind {
	case domain.ProbeKindPing:
		return r.config.PingTimeout
	case domain.ProbeKindDNS:
		return r.config.DNSTimeout
	case domain.ProbeKindTCP:
		return r.config.TCPTimeout
	case domain.ProbeKindTraceRoute:
		return r.config.TraceTimeout
	}
	return r.config.PingTimeout
}

// Run executes one probe and returns its outcome. Timeouts, caller
// cancellation, and missing tools all surface as synthetic exit
// statuses on the outcome, never as errors.
func (r *Runner) Run(ctx context.Context, req domain.ProbeRequest) domain.ProbeOutcome {
	started := time.Now()

	if req.Kind == domain.ProbeKindTCP {
		return r.runReachability(ctx, req, started)
	}
	return r.runCommand(ctx, req, started)
}

// runCommand spawns the external tool for a probe kind and reaps it
// before returning, so no process outlives the call.
func (r *Runner) runCommand(ctx context.Context, req domain.ProbeRequest, started time.Time) domain.ProbeOutcome {
	runCtx, cancel := context.WithTimeout(ctx, r.Timeout(req.Kind))
	defer cancel()

	name, args := commandArgs(runtime.GOOS, req.Kind, req.Target)

	cmd := exec.CommandContext(runCtx, name, args...)
	// Pin the child locale so the parser sees one fixed output shape
	cmd.Env = append(os.Environ(), "LANG=C", "LC_ALL=C")
	// a killed child's orphans must not hold the output pipes open
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Run waits for the child and drains both buffers before returning
	err := cmd.Run()

	outcome := domain.ProbeOutcome{
		Kind:       req.Kind,
		Target:     req.Target,
		StartedAt:  started,
		RawStdout:  stdout.String(),
		RawStderr:  stderr.String(),
		ExitStatus: classifyExit(ctx, runCtx, err),
	}
	outcome.Elapsed = time.Since(started)
	outcome.ElapsedMS = float64(outcome.Elapsed) / float64(time.Millisecond)

	// Partial output captured before a kill may still be well-formed
	if summary, ok := Parse(req.Kind, outcome.RawStdout); ok {
		outcome.Summary = summary
		outcome.ParseOK = true
	}

	logger.Debugf("probe %s %s: exit=%s elapsed=%s parse_ok=%v",
		req.Kind, req.Target, outcome.ExitStatus,
		outcome.Elapsed.Round(time.Millisecond), outcome.ParseOK)

	return outcome
}

// classifyExit maps a command error to an exit status. Caller
// cancellation wins over the deadline it propagates into.
func classifyExit(callerCtx, runCtx context.Context, err error) domain.ExitStatus {
	if err == nil {
		return 0
	}
	if errors.Is(callerCtx.Err(), context.Canceled) {
		return domain.ExitCancelled
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return domain.ExitTimeout
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return domain.ExitStatus(exitErr.ExitCode())
	}
	return domain.ExitExecFailed
}

// commandArgs builds the platform argument vector for an external
// probe kind. Counts and per-reply waits are pinned so an unreachable
// target still finishes inside the deadline with a statistics line.
func commandArgs(goos string, kind domain.ProbeKind, target string) (string, []string) {
	windows := goos == "windows"

	switch kind {
	case domain.ProbeKindPing:
		if windows {
			return "ping", []string{"-n", "4", "-w", "1000", target}
		}
		return "ping", []string{"-n", "-c", "4", "-W", "1", target}
	case domain.ProbeKindDNS:
		return "nslookup", []string{target}
	case domain.ProbeKindTraceRoute:
		if windows {
			return "tracert", []string{"-d", "-h", "15", target}
		}
		return "traceroute", []string{"-n", "-q", "1", "-m", "15", target}
	}

	// tnc runs natively and never reaches here
	return "", nil
}
