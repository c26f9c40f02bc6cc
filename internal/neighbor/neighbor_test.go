package neighbor

import (
	"encoding/binary"
	"testing"
)

// frame builders shared by the LLDP and CDP tests

func lldpTLV(tlvType int, value []byte) []byte {
	header := []byte{
		byte(tlvType<<1 | (len(value)>>8)&0x01),
		byte(len(value) & 0xff),
	}
	return append(header, value...)
}

// lldpFrame wraps TLVs in an Ethernet frame with the LLDP ethertype
// and appends the End TLV
func lldpFrame(tlvs ...[]byte) []byte {
	frame := []byte{
		0x01, 0x80, 0xc2, 0x00, 0x00, 0x0e, // dst: LLDP multicast
		0xaa, 0xbb, 0xcc, 0x00, 0x11, 0x22, // src
		0x88, 0xcc, // ethertype
	}
	for _, tlv := range tlvs {
		frame = append(frame, tlv...)
	}
	return append(frame, 0x00, 0x00)
}

func cdpTLV(tlvType int, value []byte) []byte {
	tlv := make([]byte, 4+len(value))
	binary.BigEndian.PutUint16(tlv[0:2], uint16(tlvType))
	binary.BigEndian.PutUint16(tlv[2:4], uint16(4+len(value)))
	copy(tlv[4:], value)
	return tlv
}

// cdpPayload builds LLC/SNAP + CDP header + TLVs (the eth payload)
func cdpPayload(version byte, tlvs ...[]byte) []byte {
	payload := append([]byte{}, cdpSNAPHeader...)
	payload = append(payload, version, 0xb4, 0x00, 0x00) // version, ttl, checksum
	for _, tlv := range tlvs {
		payload = append(payload, tlv...)
	}
	return payload
}

// cdpFrame wraps a CDP payload in an 802.3 frame with the CDP
// multicast destination and a length field
func cdpFrame(payload []byte) []byte {
	frame := []byte{
		0x01, 0x00, 0x0c, 0xcc, 0xcc, 0xcc, // dst: CDP multicast
		0xaa, 0xbb, 0xcc, 0x00, 0x11, 0x22, // src
	}
	length := make([]byte, 2)
	binary.BigEndian.PutUint16(length, uint16(len(payload)))
	frame = append(frame, length...)
	return append(frame, payload...)
}

func TestDecodeIgnoresOtherTraffic(t *testing.T) {
	// a plain IPv4 frame is neither LLDP nor CDP
	frame := []byte{
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66,
		0xaa, 0xbb, 0xcc, 0x00, 0x11, 0x22,
		0x08, 0x00, // IPv4
		0x45, 0x00, 0x00, 0x14,
	}

	if desc, ok := DecodeBytes(frame); ok || desc != nil {
		t.Errorf("expected no descriptor for IPv4 traffic, got %+v", desc)
	}
}

func TestDecodeShortFrame(t *testing.T) {
	if desc, ok := DecodeBytes([]byte{0x01, 0x02}); ok || desc != nil {
		t.Error("expected no descriptor for a runt frame")
	}
	if desc, ok := DecodeBytes(nil); ok || desc != nil {
		t.Error("expected no descriptor for an empty frame")
	}
}
