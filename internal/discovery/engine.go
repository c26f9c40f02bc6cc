package discovery

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"lanterna/internal/domain"
	"lanterna/internal/logger"
)

// ErrCaptureBusy rejects a discovery request while a capture session
// is already open. Requests are never queued.
var ErrCaptureBusy = errors.New("link discovery capture already in progress")

// ErrNotRunning is returned by Cancel when no attempt is in flight
var ErrNotRunning = errors.New("no link discovery attempt in progress")

const npcapDownloadURL = "https://npcap.com/#download"

// EventPublisher receives discovery lifecycle notifications
type EventPublisher interface {
	PublishDiscoveryEvent(eventType string, payload interface{})
}

// EngineConfig holds capture settings for the discovery engine
type EngineConfig struct {
	// Window bounds one capture session
	Window time.Duration
	// SnapLen is the capture snapshot length per frame
	SnapLen int
	// Interface overrides auto-selection when non-empty
	Interface string
}

// DefaultEngineConfig returns the standard 20 second window
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Window:  20 * time.Second,
		SnapLen: 1600,
	}
}

// Engine serializes passive capture attempts. At most one session is
// open at any time; a second request fails fast with ErrCaptureBusy.
type Engine struct {
	config    EngineConfig
	detector  *Detector
	open      SourceOpener
	publisher EventPublisher

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	last    *domain.LinkDiscoveryResult
}

// NewEngine creates a discovery engine over the live capture stack
func NewEngine(config EngineConfig, detector *Detector) *Engine {
	return &Engine{
		config:   config,
		detector: detector,
		open:     openLiveSource,
	}
}

// SetSourceOpener replaces the packet source factory
func (e *Engine) SetSourceOpener(open SourceOpener) {
	e.open = open
}

// SetEventPublisher sets the publisher for lifecycle events
func (e *Engine) SetEventPublisher(pub EventPublisher) {
	e.publisher = pub
}

func (e *Engine) publish(eventType string, payload interface{}) {
	if e.publisher != nil {
		e.publisher.PublishDiscoveryEvent(eventType, payload)
	}
}

// Capability returns a fresh precondition snapshot
func (e *Engine) Capability() domain.CaptureCapability {
	return e.detector.Detect()
}

// Busy reports whether a capture session is currently open
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Result returns the outcome of the last attempt. While an attempt is
// in flight it reports Checking; before any attempt it explains that
// none has run.
func (e *Engine) Result() domain.LinkDiscoveryResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return *domain.CheckingResult("Capture in progress, listening for LLDP/CDP advertisements")
	}
	if e.last == nil {
		return *domain.CheckingResult("No discovery attempt has run yet")
	}
	return *e.last
}

// Start begins one asynchronous discovery attempt. It fails fast with
// ErrCaptureBusy when a session is already open. Completion surfaces
// through Result and the discovery_completed event.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrCaptureBusy
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.running = true
	e.cancel = cancel
	e.mu.Unlock()

	e.publish("discovery_started", map[string]interface{}{
		"window_seconds": e.config.Window.Seconds(),
	})

	go e.run(runCtx)
	return nil
}

// Cancel aborts the in-flight attempt, if any
func (e *Engine) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running || e.cancel == nil {
		return ErrNotRunning
	}
	e.cancel()
	return nil
}

// run executes one gated capture attempt and records its result
func (e *Engine) run(ctx context.Context) {
	result := e.attempt(ctx)

	e.mu.Lock()
	e.last = result
	e.running = false
	e.cancel = nil
	e.mu.Unlock()

	logger.Infof("link discovery finished: status=%s reason=%s", result.Status, result.Reason)
	e.publish("discovery_completed", result)
}

func (e *Engine) attempt(ctx context.Context) *domain.LinkDiscoveryResult {
	cap := e.detector.Detect()
	if gated := gate(cap); gated != nil {
		return gated
	}

	ifaceName := e.config.Interface
	if ifaceName == "" {
		ifaceName = cap.InterfaceName
	}

	source, err := e.open(ifaceName, e.config.SnapLen)
	if err != nil {
		logger.Warnf("capture open failed on %s: %v", ifaceName, err)
		return domain.UnavailableResult(
			"Could not open the capture interface: "+err.Error(), false,
			"Another capture tool may be holding the interface",
			"Verify that "+ifaceName+" is still connected",
		)
	}

	session := RunSession(ctx, source, e.config.Window)

	switch session.Reason {
	case EndNeighborFound:
		return domain.AvailableResult(session.Neighbor)
	case EndSourceLost:
		return domain.UnavailableResult(
			"The capture interface disappeared mid-window, the link may be unstable", false,
			"Check the physical connection and retry",
		)
	case EndCancelled:
		return domain.UnavailableResult(
			"Capture was cancelled before completion", false,
		)
	default: // window elapsed with nothing decodable
		return domain.UnavailableResult(
			"No LLDP or CDP advertisement was seen within the capture window", false,
			"The upstream switch may have neighbor advertisements disabled",
			"Wi-Fi links rarely relay LLDP frames, try a wired connection",
			"Advertisement intervals can exceed the window, retrying may help",
		)
	}
}

// gate maps a capability snapshot to the tagged refusal result, or
// nil when capture may proceed
func gate(cap domain.CaptureCapability) *domain.LinkDiscoveryResult {
	if !cap.DriverInstalled {
		if runtime.GOOS == "windows" {
			return domain.NotInstalledResult(
				"The Npcap packet capture driver is not installed",
				npcapDownloadURL,
				"Install Npcap with WinPcap compatibility mode enabled",
				"Restart this assistant after the driver installs",
			)
		}
		return domain.NotInstalledResult(
			"The libpcap capture library is not available",
			"https://www.tcpdump.org/",
			"Install libpcap through your package manager",
		)
	}

	if !cap.Elevated {
		return domain.UnavailableResult(
			"Packet capture requires elevated privileges", true,
			"Restart the assistant with administrator or root rights",
		)
	}

	if !cap.InterfaceAvailable {
		return domain.UnavailableResult(
			"No active network interface is available for capture", false,
			"Connect an interface with an IPv4 address and retry",
		)
	}

	return nil
}
