package domain

// DiscoveryStatus classifies one passive link discovery attempt
type DiscoveryStatus string

const (
	DiscoveryAvailable    DiscoveryStatus = "available"     // neighbor heard and decoded
	DiscoveryUnavailable  DiscoveryStatus = "unavailable"   // capture possible in principle but nothing usable
	DiscoveryNotInstalled DiscoveryStatus = "not_installed" // capture driver missing
	DiscoveryChecking     DiscoveryStatus = "checking"      // attempt in progress or not yet run
)

// NeighborProtocol identifies the advertisement format a neighbor used
type NeighborProtocol string

const (
	ProtocolLLDP NeighborProtocol = "lldp"
	ProtocolCDP  NeighborProtocol = "cdp"
)

// NeighborDescriptor is the identity a switch or router advertised in
// one decoded LLDP or CDP frame.
type NeighborDescriptor struct {
	Protocol          NeighborProtocol `json:"protocol"`
	DeviceID          string           `json:"device_id"`
	PortID            string           `json:"port_id"`
	SystemName        string           `json:"system_name,omitempty"`
	SystemDescription string           `json:"system_description,omitempty"`
	ManagementAddress string           `json:"management_address,omitempty"`
	Capabilities      []string         `json:"capabilities,omitempty"`
}

// LinkDiscoveryResult is the outcome of one discovery attempt. Created
// fresh per attempt and never mutated after being returned. Status
// available carries exactly one neighbor; every other status carries none.
type LinkDiscoveryResult struct {
	Status           DiscoveryStatus     `json:"status"`
	Reason           string              `json:"reason,omitempty"`
	Neighbor         *NeighborDescriptor `json:"neighbor,omitempty"`
	Tips             []string            `json:"tips,omitempty"`
	DownloadURL      string              `json:"download_url,omitempty"`
	RestartSupported bool                `json:"restart_supported"`
}

// AvailableResult wraps a decoded neighbor.
func AvailableResult(neighbor *NeighborDescriptor) *LinkDiscoveryResult {
	return &LinkDiscoveryResult{
		Status:   DiscoveryAvailable,
		Neighbor: neighbor,
	}
}

// UnavailableResult reports a degraded attempt with remediation tips.
func UnavailableResult(reason string, restartSupported bool, tips ...string) *LinkDiscoveryResult {
	return &LinkDiscoveryResult{
		Status:           DiscoveryUnavailable,
		Reason:           reason,
		Tips:             tips,
		RestartSupported: restartSupported,
	}
}

// NotInstalledResult reports a missing capture driver.
func NotInstalledResult(reason, downloadURL string, tips ...string) *LinkDiscoveryResult {
	return &LinkDiscoveryResult{
		Status:      DiscoveryNotInstalled,
		Reason:      reason,
		Tips:        tips,
		DownloadURL: downloadURL,
	}
}

// CheckingResult marks an attempt in progress.
func CheckingResult(reason string) *LinkDiscoveryResult {
	return &LinkDiscoveryResult{
		Status: DiscoveryChecking,
		Reason: reason,
	}
}

// Valid checks the status/neighbor pairing invariant.
func (r *LinkDiscoveryResult) Valid() bool {
	if r.Status == DiscoveryAvailable {
		return r.Neighbor != nil
	}
	return r.Neighbor == nil
}

// CaptureCapability is the precondition snapshot for passive capture.
// Recomputed on every discovery attempt; driver and privilege state can
// change externally, so this is never cached across process restarts.
type CaptureCapability struct {
	DriverInstalled    bool   `json:"driver_installed"`
	Elevated           bool   `json:"elevated"`
	InterfaceAvailable bool   `json:"interface_available"`
	InterfaceName      string `json:"interface_name,omitempty"`
}
