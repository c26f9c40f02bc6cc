// Package neighbor decodes LLDP and CDP advertisement frames into
// neighbor descriptors.
//
// Malformed or truncated frames (a length field past the end of the
// buffer, an unknown protocol version) yield no descriptor instead of
// an error, so a capture loop can keep draining frames without caring
// why one was unusable.
package neighbor

import (
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"lanterna/internal/domain"
)

// cdpMulticast is the destination MAC of CDP announcements
const cdpMulticast = "01:00:0c:cc:cc:cc"

// Decode inspects one captured packet and extracts a neighbor
// descriptor when the packet is a well-formed LLDP or CDP
// advertisement. Anything else returns (nil, false).
func Decode(pkt gopacket.Packet) (*domain.NeighborDescriptor, bool) {
	ethLayer := pkt.Layer(layers.LayerTypeEthernet)
	if ethLayer == nil {
		return nil, false
	}
	eth := ethLayer.(*layers.Ethernet)

	switch {
	case eth.EthernetType == layers.EthernetTypeLinkLayerDiscovery:
		return parseLLDP(eth.Payload)
	case strings.EqualFold(eth.DstMAC.String(), cdpMulticast):
		return parseCDP(eth.Payload)
	}

	return nil, false
}

// DecodeBytes decodes a raw Ethernet frame without a prior
// gopacket parse, for callers holding plain frame bytes.
func DecodeBytes(frame []byte) (*domain.NeighborDescriptor, bool) {
	pkt := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.Lazy)
	return Decode(pkt)
}
