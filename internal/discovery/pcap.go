package discovery

import (
	"fmt"
	"sync"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// captureFilter keeps only LLDP frames (by ethertype) and CDP frames
// (by destination multicast); everything else is dropped in the kernel
const captureFilter = "ether proto 0x88cc or ether dst 01:00:0c:cc:cc:cc"

// SourceOpener opens a packet source on an interface. Swappable so
// session and engine behavior is testable without a capture driver.
type SourceOpener func(ifaceName string, snaplen int) (PacketSource, error)

// openLiveSource opens the interface through pcap in promiscuous,
// read-only mode with the neighbor filter applied
func openLiveSource(ifaceName string, snaplen int) (PacketSource, error) {
	handle, err := pcap.OpenLive(ifaceName, int32(snaplen), true, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("open capture on %s: %w", ifaceName, err)
	}
	if err := handle.SetBPFFilter(captureFilter); err != nil {
		handle.Close()
		return nil, fmt.Errorf("set capture filter: %w", err)
	}

	return &pcapSource{
		handle: handle,
		source: gopacket.NewPacketSource(handle, handle.LinkType()),
	}, nil
}

type pcapSource struct {
	handle *pcap.Handle
	source *gopacket.PacketSource
	once   sync.Once
}

func (p *pcapSource) Packets() <-chan gopacket.Packet {
	return p.source.Packets()
}

func (p *pcapSource) Close() {
	p.once.Do(p.handle.Close)
}

// pcapAvailable reports whether the capture library can enumerate
// devices at all, which is the working definition of "driver present"
func pcapAvailable() bool {
	_, err := pcap.FindAllDevs()
	return err == nil
}
