// Package discovery runs capability-gated passive capture of LLDP and
// CDP advertisements to identify the upstream switch or router.
//
// The flow is a strict precondition gate followed by one bounded
// capture session: detect driver/privilege/interface state, refuse
// with a tagged result when a precondition is missing, otherwise open
// the interface read-only for at most the capture window and stop as
// soon as one neighbor advertisement decodes.
package discovery

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"lanterna/internal/domain"
	"lanterna/internal/netinfo"
)

// Detector computes the capture precondition snapshot. The probe
// functions are swappable so gating logic is testable with a fixed
// environment snapshot.
type Detector struct {
	driverProbe    func() bool
	elevationProbe func() bool
	interfaceProbe func() (string, bool)
}

// NewDetector creates a detector wired to the real environment probes
func NewDetector() *Detector {
	return &Detector{
		driverProbe:    driverInstalled,
		elevationProbe: processElevated,
		interfaceProbe: captureInterface,
	}
}

// NewDetectorWithProbes creates a detector over fixed probe functions
func NewDetectorWithProbes(driver, elevated func() bool, iface func() (string, bool)) *Detector {
	return &Detector{
		driverProbe:    driver,
		elevationProbe: elevated,
		interfaceProbe: iface,
	}
}

// Detect probes the environment and returns a fresh capability
// snapshot. Never cached: driver and privilege state change
// externally (installs, relaunches), so every attempt re-checks.
func (d *Detector) Detect() domain.CaptureCapability {
	cap := domain.CaptureCapability{
		DriverInstalled: d.driverProbe(),
		Elevated:        d.elevationProbe(),
	}
	cap.InterfaceName, cap.InterfaceAvailable = d.interfaceProbe()
	return cap
}

// driverInstalled reports whether the packet capture driver is
// usable: Npcap on Windows, libpcap elsewhere.
func driverInstalled() bool {
	if runtime.GOOS == "windows" {
		return npcapInstalled()
	}
	return pcapAvailable()
}

// npcapInstalled checks the well-known Npcap install locations and
// falls back to querying the service.
func npcapInstalled() bool {
	systemRoot := os.Getenv("SystemRoot")
	if systemRoot == "" {
		systemRoot = `C:\Windows`
	}
	for _, path := range []string{
		filepath.Join(systemRoot, "System32", "Npcap", "wpcap.dll"),
		filepath.Join(systemRoot, "SysWOW64", "Npcap", "wpcap.dll"),
	} {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}

	out, err := exec.Command("sc", "query", "npcap").Output()
	if err == nil && strings.Contains(string(out), "RUNNING") {
		return true
	}

	return pcapAvailable()
}

// captureInterface reports the interface a capture would observe
func captureInterface() (string, bool) {
	iface, _, _, err := netinfo.ActiveInterface()
	if err != nil {
		return "", false
	}
	return iface.Name, true
}
