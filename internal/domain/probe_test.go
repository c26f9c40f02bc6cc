package domain

import "testing"

func TestParseProbeKind(t *testing.T) {
	t.Run("accepts known kinds", func(t *testing.T) {
		cases := map[string]ProbeKind{
			"ping":    ProbeKindPing,
			"dns":     ProbeKindDNS,
			"tnc":     ProbeKindTCP,
			"tracert": ProbeKindTraceRoute,
		}
		for in, want := range cases {
			got, err := ParseProbeKind(in)
			if err != nil {
				t.Errorf("ParseProbeKind(%q) returned error: %v", in, err)
			}
			if got != want {
				t.Errorf("ParseProbeKind(%q) = %s, want %s", in, got, want)
			}
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		got, err := ParseProbeKind("  PING ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != ProbeKindPing {
			t.Errorf("expected ping, got %s", got)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		if _, err := ParseProbeKind("portscan"); err == nil {
			t.Error("expected error for unknown kind")
		}
	})
}

func TestProbeRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := ProbeRequest{Kind: ProbeKindPing, Target: "192.168.1.1"}
		if err := req.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty target fails", func(t *testing.T) {
		req := ProbeRequest{Kind: ProbeKindDNS, Target: "   "}
		if err := req.Validate(); err == nil {
			t.Error("expected error for blank target")
		}
	})

	t.Run("unknown kind fails", func(t *testing.T) {
		req := ProbeRequest{Kind: ProbeKind("scan"), Target: "host"}
		if err := req.Validate(); err == nil {
			t.Error("expected error for unknown kind")
		}
	})
}

func TestExitStatus(t *testing.T) {
	t.Run("synthetic statuses", func(t *testing.T) {
		if !ExitTimeout.Synthetic() || !ExitTimeout.IsTimeout() {
			t.Error("ExitTimeout should be synthetic and a timeout")
		}
		if !ExitCancelled.Synthetic() || !ExitCancelled.IsCancelled() {
			t.Error("ExitCancelled should be synthetic and cancelled")
		}
		if !ExitExecFailed.Synthetic() {
			t.Error("ExitExecFailed should be synthetic")
		}
	})

	t.Run("real exit codes are not synthetic", func(t *testing.T) {
		if ExitStatus(0).Synthetic() {
			t.Error("exit 0 should not be synthetic")
		}
		if ExitStatus(1).Synthetic() {
			t.Error("exit 1 should not be synthetic")
		}
	})

	t.Run("string forms", func(t *testing.T) {
		if got := ExitTimeout.String(); got != "timeout" {
			t.Errorf("expected timeout, got %s", got)
		}
		if got := ExitStatus(2).String(); got != "2" {
			t.Errorf("expected 2, got %s", got)
		}
	})
}

func TestProbeOutcomeFailedOutright(t *testing.T) {
	t.Run("timeout is an outright failure", func(t *testing.T) {
		o := ProbeOutcome{ExitStatus: ExitTimeout}
		if !o.FailedOutright() {
			t.Error("expected timeout to fail outright")
		}
	})

	t.Run("nonzero exit without summary fails outright", func(t *testing.T) {
		o := ProbeOutcome{ExitStatus: 2, ParseOK: false}
		if !o.FailedOutright() {
			t.Error("expected exit 2 without summary to fail outright")
		}
	})

	t.Run("nonzero exit with parsed summary does not", func(t *testing.T) {
		o := ProbeOutcome{ExitStatus: 1, ParseOK: true, Summary: &ProbeSummary{Ping: &PingSummary{Sent: 4}}}
		if o.FailedOutright() {
			t.Error("parsed summary should downgrade a nonzero exit")
		}
	})

	t.Run("clean exit does not", func(t *testing.T) {
		o := ProbeOutcome{ExitStatus: 0, ParseOK: true}
		if o.FailedOutright() {
			t.Error("clean exit should not fail outright")
		}
	})
}
