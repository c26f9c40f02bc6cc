package probe

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"lanterna/internal/domain"
)

func TestSplitTargetPort(t *testing.T) {
	tests := []struct {
		target   string
		wantHost string
		wantPort int
	}{
		{"example.com", "example.com", 80},
		{"example.com:443", "example.com", 443},
		{"192.168.1.1:8080", "192.168.1.1", 8080},
		{"2001:db8::1", "2001:db8::1", 80},
		{"[2001:db8::1]:22", "2001:db8::1", 22},
		{"example.com:notaport", "example.com", 80},
		{"example.com:70000", "example.com", 80},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			host, port := splitTargetPort(tt.target, 80)
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("splitTargetPort(%q) = (%s, %d), want (%s, %d)",
					tt.target, host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestTranscriptShape(t *testing.T) {
	r := reachability{
		Host:          "example.com",
		Port:          80,
		RemoteAddress: "93.184.216.34",
		PingOK:        false,
		TCPOK:         true,
	}

	got := r.transcript()

	for _, want := range []string{
		"ComputerName     : example.com",
		"RemoteAddress    : 93.184.216.34",
		"RemotePort       : 80",
		"PingSucceeded    : False",
		"TcpTestSucceeded : True",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q:\n%s", want, got)
		}
	}

	// failed ping carries no reply details line
	if strings.Contains(got, "PingReplyDetails") {
		t.Error("transcript should omit PingReplyDetails when ping failed")
	}

	// rendering is deterministic
	if again := r.transcript(); again != got {
		t.Error("transcript should be stable for the same inputs")
	}
}

func TestReachabilityOpenPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	port := listener.Addr().(*net.TCPAddr).Port
	runner := NewRunner(DefaultConfig())

	outcome := runner.Run(context.Background(), domain.ProbeRequest{
		Kind:   domain.ProbeKindTCP,
		Target: "127.0.0.1:" + strconv.Itoa(port),
	})

	if outcome.ExitStatus != 0 {
		t.Fatalf("ExitStatus = %s, want 0", outcome.ExitStatus)
	}
	if !outcome.ParseOK || outcome.Summary == nil || outcome.Summary.TCP == nil {
		t.Fatalf("expected parsed tnc summary, got:\n%s", outcome.RawStdout)
	}
	if !outcome.Summary.TCP.TCPSucceeded {
		t.Error("TCP leg should succeed against a live listener")
	}
	if outcome.Summary.TCP.RemoteAddress != "127.0.0.1" {
		t.Errorf("RemoteAddress = %s, want 127.0.0.1", outcome.Summary.TCP.RemoteAddress)
	}
	if outcome.Summary.TCP.RemotePort != port {
		t.Errorf("RemotePort = %d, want %d", outcome.Summary.TCP.RemotePort, port)
	}
	// the ICMP leg depends on socket privileges, no assertion on it
}

func TestReachabilityClosedPort(t *testing.T) {
	// grab a port that is free, then close it so the dial is refused
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	runner := NewRunner(DefaultConfig())
	outcome := runner.Run(context.Background(), domain.ProbeRequest{
		Kind:   domain.ProbeKindTCP,
		Target: "127.0.0.1:" + strconv.Itoa(port),
	})

	if outcome.ExitStatus != 0 {
		t.Fatalf("ExitStatus = %s, want 0 (leg failure is not a run failure)", outcome.ExitStatus)
	}
	if !outcome.ParseOK || outcome.Summary == nil || outcome.Summary.TCP == nil {
		t.Fatalf("expected parsed tnc summary, got:\n%s", outcome.RawStdout)
	}
	if outcome.Summary.TCP.TCPSucceeded {
		t.Error("TCP leg should fail against a closed port")
	}
	if outcome.RawStderr == "" {
		t.Error("dial failure should be recorded on stderr")
	}
	if outcome.FailedOutright() {
		t.Error("a parsed leg failure is a finding, not an outright failure")
	}
}

func TestReachabilityCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(DefaultConfig())
	start := time.Now()
	outcome := runner.Run(ctx, domain.ProbeRequest{
		Kind:   domain.ProbeKindTCP,
		Target: "203.0.113.9:81",
	})

	if outcome.ExitStatus != domain.ExitCancelled {
		t.Fatalf("ExitStatus = %s, want cancelled", outcome.ExitStatus)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("cancelled probe took %s, should return promptly", elapsed)
	}
}

func TestInterfaceForAddress(t *testing.T) {
	if got := interfaceForAddress("not-an-ip"); got != "" {
		t.Errorf("interfaceForAddress(not-an-ip) = %q, want empty", got)
	}
	// TEST-NET-3 is never assigned locally
	if got := interfaceForAddress("203.0.113.7"); got != "" {
		t.Errorf("interfaceForAddress(203.0.113.7) = %q, want empty", got)
	}
}

func TestRemainingBudget(t *testing.T) {
	// no deadline: preferred wins
	if got := remainingBudget(context.Background(), 3*time.Second); got != 3*time.Second {
		t.Errorf("remainingBudget = %s, want 3s", got)
	}

	// tight deadline wins over preferred
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if got := remainingBudget(ctx, 3*time.Second); got > 100*time.Millisecond {
		t.Errorf("remainingBudget = %s, want at most 100ms", got)
	}
}
