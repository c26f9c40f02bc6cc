package neighbor

import (
	"encoding/binary"
	"net"

	"lanterna/internal/domain"
)

// LLDP TLV types (IEEE 802.1AB-2009, table 8-1)
const (
	lldpTLVEnd          = 0
	lldpTLVChassisID    = 1
	lldpTLVPortID       = 2
	lldpTLVTTL          = 3
	lldpTLVPortDesc     = 4
	lldpTLVSystemName   = 5
	lldpTLVSystemDesc   = 6
	lldpTLVCapabilities = 7
	lldpTLVMgmtAddress  = 8
)

// chassis/port ID subtypes that carry a raw MAC instead of text
const (
	lldpChassisSubtypeMAC = 4
	lldpPortSubtypeMAC    = 3
)

var lldpCapabilityNames = []string{
	"Other", "Repeater", "Bridge", "WLAN Access Point",
	"Router", "Telephone", "DOCSIS Cable Device", "Station Only",
}

// parseLLDP walks the TLV sequence of an LLDP frame payload. Unknown
// and vendor TLVs are skipped by their declared length. A length that
// runs past the buffer aborts the walk with no descriptor.
func parseLLDP(payload []byte) (*domain.NeighborDescriptor, bool) {
	desc := &domain.NeighborDescriptor{Protocol: domain.ProtocolLLDP}

	offset := 0
	for offset+2 <= len(payload) {
		tlvType := int(payload[offset] >> 1)
		tlvLen := int(payload[offset]&0x01)<<8 | int(payload[offset+1])
		offset += 2

		if tlvType == lldpTLVEnd {
			break
		}
		if offset+tlvLen > len(payload) {
			// truncated TLV, frame is unusable
			return nil, false
		}
		value := payload[offset : offset+tlvLen]
		offset += tlvLen

		switch tlvType {
		case lldpTLVChassisID:
			desc.DeviceID = lldpIdentifier(value, lldpChassisSubtypeMAC)
		case lldpTLVPortID:
			desc.PortID = lldpIdentifier(value, lldpPortSubtypeMAC)
		case lldpTLVTTL:
			// mandatory but uninteresting here
		case lldpTLVSystemName:
			desc.SystemName = string(value)
		case lldpTLVSystemDesc:
			desc.SystemDescription = string(value)
		case lldpTLVCapabilities:
			desc.Capabilities = lldpCapabilities(value)
		case lldpTLVMgmtAddress:
			desc.ManagementAddress = lldpManagementAddress(value)
		}
	}

	if desc.DeviceID == "" || desc.PortID == "" {
		return nil, false
	}
	return desc, true
}

// lldpIdentifier renders a chassis or port ID value: a leading subtype
// byte followed by either a raw MAC or printable text
func lldpIdentifier(value []byte, macSubtype int) string {
	if len(value) < 2 {
		return ""
	}
	subtype := int(value[0])
	body := value[1:]

	if subtype == macSubtype && len(body) == 6 {
		return net.HardwareAddr(body).String()
	}
	return string(body)
}

// lldpCapabilities maps the enabled-capabilities bitmap to names
func lldpCapabilities(value []byte) []string {
	if len(value) < 4 {
		return nil
	}
	enabled := binary.BigEndian.Uint16(value[2:4])

	var names []string
	for bit, name := range lldpCapabilityNames {
		if enabled&(1<<bit) != 0 {
			names = append(names, name)
		}
	}
	return names
}

// lldpManagementAddress extracts the first management address:
// {addr string length, addr subtype, addr bytes, ...interface data}
func lldpManagementAddress(value []byte) string {
	if len(value) < 2 {
		return ""
	}
	addrLen := int(value[0]) // includes the subtype byte
	if addrLen < 2 || 1+addrLen > len(value) {
		return ""
	}
	addr := value[2 : 1+addrLen]

	switch len(addr) {
	case 4, 16:
		return net.IP(addr).String()
	}
	return ""
}
