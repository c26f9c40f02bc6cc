package neighbor

import (
	"bytes"
	"encoding/binary"
	"net"

	"lanterna/internal/domain"
)

// CDP rides on 802.3 + LLC/SNAP with the Cisco OUI and protocol ID
var cdpSNAPHeader = []byte{0xaa, 0xaa, 0x03, 0x00, 0x00, 0x0c, 0x20, 0x00}

// CDP TLV types
const (
	cdpTLVDeviceID     = 0x0001
	cdpTLVAddresses    = 0x0002
	cdpTLVPortID       = 0x0003
	cdpTLVCapabilities = 0x0004
	cdpTLVVersion      = 0x0005
	cdpTLVPlatform     = 0x0006
)

var cdpCapabilityNames = []struct {
	bit  uint32
	name string
}{
	{0x01, "Router"},
	{0x02, "Transparent Bridge"},
	{0x04, "Source Route Bridge"},
	{0x08, "Switch"},
	{0x10, "Host"},
	{0x20, "IGMP"},
	{0x40, "Repeater"},
}

// parseCDP walks the versioned TLV structure of a CDP frame payload
// (starting at the LLC header). Unknown TLVs are skipped by length;
// a truncated TLV or an unknown protocol version yields no descriptor.
func parseCDP(payload []byte) (*domain.NeighborDescriptor, bool) {
	if len(payload) < len(cdpSNAPHeader)+4 {
		return nil, false
	}
	if !bytes.Equal(payload[:len(cdpSNAPHeader)], cdpSNAPHeader) {
		return nil, false
	}
	body := payload[len(cdpSNAPHeader):]

	version := body[0]
	if version != 1 && version != 2 {
		return nil, false
	}
	// byte 1 is TTL, bytes 2-3 checksum
	body = body[4:]

	desc := &domain.NeighborDescriptor{Protocol: domain.ProtocolCDP}

	offset := 0
	for offset+4 <= len(body) {
		tlvType := int(binary.BigEndian.Uint16(body[offset : offset+2]))
		tlvLen := int(binary.BigEndian.Uint16(body[offset+2 : offset+4]))

		// declared length includes the 4-byte TLV header
		if tlvLen < 4 || offset+tlvLen > len(body) {
			return nil, false
		}
		value := body[offset+4 : offset+tlvLen]
		offset += tlvLen

		switch tlvType {
		case cdpTLVDeviceID:
			desc.DeviceID = string(value)
		case cdpTLVPortID:
			desc.PortID = string(value)
		case cdpTLVPlatform:
			desc.SystemDescription = string(value)
		case cdpTLVCapabilities:
			desc.Capabilities = cdpCapabilities(value)
		case cdpTLVAddresses:
			desc.ManagementAddress = cdpFirstAddress(value)
		}
	}

	if desc.DeviceID == "" {
		return nil, false
	}
	return desc, true
}

// cdpCapabilities maps the 4-byte capability bitmap to names
func cdpCapabilities(value []byte) []string {
	if len(value) < 4 {
		return nil
	}
	mask := binary.BigEndian.Uint32(value)

	var names []string
	for _, c := range cdpCapabilityNames {
		if mask&c.bit != 0 {
			names = append(names, c.name)
		}
	}
	return names
}

// cdpFirstAddress extracts the first NLPID/IPv4 entry of an Addresses
// TLV: {count: 4 bytes, then per address: proto type, proto length,
// protocol bytes, address length (2 bytes), address bytes}
func cdpFirstAddress(value []byte) string {
	if len(value) < 4 {
		return ""
	}
	count := binary.BigEndian.Uint32(value[:4])
	if count == 0 {
		return ""
	}
	rest := value[4:]

	// first entry only; protoType(1) protoLen(1) proto(protoLen)
	if len(rest) < 2 {
		return ""
	}
	protoLen := int(rest[1])
	if len(rest) < 2+protoLen+2 {
		return ""
	}
	addrLen := int(binary.BigEndian.Uint16(rest[2+protoLen : 2+protoLen+2]))
	addrStart := 2 + protoLen + 2
	if addrLen == 0 || addrStart+addrLen > len(rest) {
		return ""
	}
	addr := rest[addrStart : addrStart+addrLen]

	switch addrLen {
	case 4, 16:
		return net.IP(addr).String()
	}
	return ""
}
