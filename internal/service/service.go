package service

import (
	"context"
	"os"
	"sync"
	"time"

	"lanterna/internal/domain"
	"lanterna/internal/health"
	"lanterna/internal/logger"
)

// HistorySize is the default bound on the recent-outcome ring
const HistorySize = 10

// Prober runs one diagnostic check against a target
type Prober interface {
	Run(ctx context.Context, req domain.ProbeRequest) domain.ProbeOutcome
}

// Discoverer manages passive link discovery attempts
type Discoverer interface {
	Start(ctx context.Context) error
	Cancel() error
	Result() domain.LinkDiscoveryResult
	Busy() bool
	Capability() domain.CaptureCapability
}

// InfoSource provides the local addressing snapshot
type InfoSource interface {
	Collect() (*domain.LocalNetInfo, error)
}

// Diagnostics coordinates probes, discovery, and local info into the
// assistant's single source of truth
type Diagnostics struct {
	version  string
	prober   Prober
	discover Discoverer
	info     InfoSource
	eventBus *EventBus

	mu     sync.Mutex
	recent *outcomeRing
}

// NewDiagnostics creates the orchestration service
func NewDiagnostics(version string, prober Prober, discoverer Discoverer, info InfoSource, eventBus *EventBus) *Diagnostics {
	return &Diagnostics{
		version:  version,
		prober:   prober,
		discover: discoverer,
		info:     info,
		eventBus: eventBus,
		recent:   newOutcomeRing(HistorySize),
	}
}

// SetHistorySize resizes the outcome ring. Existing entries beyond the
// new bound are dropped oldest-first.
func (d *Diagnostics) SetHistorySize(size int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	resized := newOutcomeRing(size)
	for _, o := range d.recent.snapshot() {
		resized.add(o)
	}
	d.recent = resized
}

// Version returns the running build's version string
func (d *Diagnostics) Version() string {
	return d.version
}

// RunProbe validates and executes one probe, records its outcome, and
// publishes the completion event. The outcome is returned even when
// the probe itself failed; only an invalid request is an error.
func (d *Diagnostics) RunProbe(ctx context.Context, req domain.ProbeRequest) (domain.ProbeOutcome, error) {
	if err := req.Validate(); err != nil {
		return domain.ProbeOutcome{}, err
	}

	d.eventBus.Publish(Event{
		Type:    EventProbeStarted,
		Payload: map[string]string{"kind": string(req.Kind), "target": req.Target},
	})

	outcome := d.prober.Run(ctx, req)

	d.mu.Lock()
	d.recent.add(outcome)
	d.mu.Unlock()

	logger.Infof("probe %s %s finished: exit=%s parsed=%t elapsed=%.0fms",
		outcome.Kind, outcome.Target, outcome.ExitStatus, outcome.ParseOK, outcome.ElapsedMS)

	d.eventBus.Publish(Event{Type: EventProbeCompleted, Payload: outcome})

	return outcome, nil
}

// RecentOutcomes returns the probe history, oldest first
func (d *Diagnostics) RecentOutcomes() []domain.ProbeOutcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recent.snapshot()
}

// LocalInfo returns the current local addressing snapshot
func (d *Diagnostics) LocalInfo() (*domain.LocalNetInfo, error) {
	return d.info.Collect()
}

// StartDiscovery begins one link discovery attempt
func (d *Diagnostics) StartDiscovery(ctx context.Context) error {
	return d.discover.Start(ctx)
}

// CancelDiscovery aborts the in-flight attempt, if any
func (d *Diagnostics) CancelDiscovery() error {
	return d.discover.Cancel()
}

// DiscoveryResult returns the last discovery outcome, or a checking
// placeholder while one is in flight
func (d *Diagnostics) DiscoveryResult() domain.LinkDiscoveryResult {
	return d.discover.Result()
}

// DiscoveryBusy reports whether a capture session is open
func (d *Diagnostics) DiscoveryBusy() bool {
	return d.discover.Busy()
}

// Capability returns a fresh capture precondition snapshot
func (d *Diagnostics) Capability() domain.CaptureCapability {
	return d.discover.Capability()
}

// PublishDiscoveryEvent forwards discovery lifecycle notifications to
// the event bus. Satisfies the discovery engine's publisher interface.
func (d *Diagnostics) PublishDiscoveryEvent(eventType string, payload interface{}) {
	d.eventBus.Publish(Event{Type: EventType(eventType), Payload: payload})
}

// Snapshot assembles the aggregated view of everything currently
// known. The result is independent of later service activity.
func (d *Diagnostics) Snapshot() *domain.DiagnosticSnapshot {
	info, err := d.info.Collect()
	if err != nil {
		logger.Warnf("local info unavailable for snapshot: %v", err)
		info = nil
	}

	outcomes := d.RecentOutcomes()
	discovery := d.discover.Result()
	status, findings := health.Aggregate(info, outcomes, &discovery)

	snapshot := &domain.DiagnosticSnapshot{
		GeneratedAt: time.Now(),
		Version:     d.version,
		Status:      status,
		Findings:    findings,
		LocalInfo:   info,
		Outcomes:    outcomes,
		Discovery:   &discovery,
	}

	if info != nil && info.Hostname != "" {
		snapshot.Hostname = info.Hostname
	} else if hostname, err := os.Hostname(); err == nil {
		snapshot.Hostname = hostname
	}

	return snapshot
}
