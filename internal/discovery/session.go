package discovery

import (
	"context"
	"time"

	"github.com/google/gopacket"

	"lanterna/internal/domain"
	"lanterna/internal/logger"
	"lanterna/internal/neighbor"
)

// PacketSource yields captured packets until it is closed or the
// underlying capture dies. Close must be safe to call more than once;
// the session guarantees it calls Close exactly once itself.
type PacketSource interface {
	Packets() <-chan gopacket.Packet
	Close()
}

// EndReason records why a capture session stopped
type EndReason string

const (
	EndNeighborFound EndReason = "neighbor_found"
	EndWindowElapsed EndReason = "window_elapsed"
	EndSourceLost    EndReason = "source_lost"
	EndCancelled     EndReason = "cancelled"
)

// SessionResult is the terminal state of one capture session
type SessionResult struct {
	Neighbor *domain.NeighborDescriptor
	Reason   EndReason
	Frames   int
}

// RunSession drains the source until a neighbor advertisement
// decodes, the window elapses, the source dies, or the caller
// cancels. The source is released before returning, on every path.
// Frames that fail to decode are skipped; the session keeps draining.
func RunSession(ctx context.Context, source PacketSource, window time.Duration) SessionResult {
	defer source.Close()

	timer := time.NewTimer(window)
	defer timer.Stop()

	frames := source.Packets()
	seen := 0

	for {
		select {
		case <-ctx.Done():
			return SessionResult{Reason: EndCancelled, Frames: seen}
		case <-timer.C:
			return SessionResult{Reason: EndWindowElapsed, Frames: seen}
		case pkt, ok := <-frames:
			if !ok {
				// capture handle died mid-window (link drop, unplug)
				return SessionResult{Reason: EndSourceLost, Frames: seen}
			}
			seen++
			if desc, ok := neighbor.Decode(pkt); ok {
				logger.Infof("neighbor heard after %d frame(s): %s on %s",
					seen, desc.DeviceID, desc.PortID)
				return SessionResult{Neighbor: desc, Reason: EndNeighborFound, Frames: seen}
			}
		}
	}
}
