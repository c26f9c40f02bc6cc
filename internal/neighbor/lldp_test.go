package neighbor

import (
	"testing"

	"lanterna/internal/domain"
)

func TestParseLLDPFull(t *testing.T) {
	frame := lldpFrame(
		lldpTLV(lldpTLVChassisID, []byte{4, 0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}),
		lldpTLV(lldpTLVPortID, append([]byte{5}, []byte("Gi1/0/24")...)),
		lldpTLV(lldpTLVTTL, []byte{0x00, 0x78}),
		lldpTLV(lldpTLVSystemName, []byte("sw-core-01")),
		lldpTLV(lldpTLVSystemDesc, []byte("Catalyst 2960X")),
		lldpTLV(lldpTLVCapabilities, []byte{0x00, 0x14, 0x00, 0x14}), // bridge + router
		lldpTLV(lldpTLVMgmtAddress, []byte{5, 1, 192, 168, 1, 2, 2, 0, 0, 0, 1, 0}),
	)

	desc, ok := DecodeBytes(frame)
	if !ok {
		t.Fatal("expected a descriptor from a well-formed LLDP frame")
	}
	if desc.Protocol != domain.ProtocolLLDP {
		t.Errorf("Protocol = %s, want lldp", desc.Protocol)
	}
	if desc.DeviceID != "de:ad:be:ef:00:01" {
		t.Errorf("DeviceID = %s, want de:ad:be:ef:00:01", desc.DeviceID)
	}
	if desc.PortID != "Gi1/0/24" {
		t.Errorf("PortID = %s, want Gi1/0/24", desc.PortID)
	}
	if desc.SystemName != "sw-core-01" {
		t.Errorf("SystemName = %s, want sw-core-01", desc.SystemName)
	}
	if desc.SystemDescription != "Catalyst 2960X" {
		t.Errorf("SystemDescription = %s, want Catalyst 2960X", desc.SystemDescription)
	}
	if desc.ManagementAddress != "192.168.1.2" {
		t.Errorf("ManagementAddress = %s, want 192.168.1.2", desc.ManagementAddress)
	}
	if len(desc.Capabilities) != 2 || desc.Capabilities[0] != "Bridge" || desc.Capabilities[1] != "Router" {
		t.Errorf("Capabilities = %v, want [Bridge Router]", desc.Capabilities)
	}
}

func TestParseLLDPTruncatedTLV(t *testing.T) {
	// system name TLV declares 200 bytes but the frame ends early
	frame := lldpFrame(
		lldpTLV(lldpTLVChassisID, []byte{4, 0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}),
		lldpTLV(lldpTLVPortID, append([]byte{5}, []byte("Gi1/0/24")...)),
		[]byte{byte(lldpTLVSystemName << 1), 200, 's', 'w'},
	)

	if desc, ok := DecodeBytes(frame); ok || desc != nil {
		t.Errorf("truncated TLV must yield no descriptor, got %+v", desc)
	}
}

func TestParseLLDPUnknownTLVsSkipped(t *testing.T) {
	// a vendor-specific TLV (type 127) sits between the mandatory ones
	frame := lldpFrame(
		lldpTLV(lldpTLVChassisID, []byte{4, 0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}),
		lldpTLV(127, []byte{0x00, 0x12, 0x0f, 0x01, 0x02, 0x03}),
		lldpTLV(lldpTLVPortID, append([]byte{7}, []byte("port7")...)),
	)

	desc, ok := DecodeBytes(frame)
	if !ok {
		t.Fatal("vendor TLVs should be skipped, not rejected")
	}
	if desc.PortID != "port7" {
		t.Errorf("PortID = %s, want port7", desc.PortID)
	}
}

func TestParseLLDPMissingMandatory(t *testing.T) {
	tests := []struct {
		name string
		tlvs [][]byte
	}{
		{"no port id", [][]byte{lldpTLV(lldpTLVChassisID, []byte{4, 1, 2, 3, 4, 5, 6})}},
		{"no chassis id", [][]byte{lldpTLV(lldpTLVPortID, append([]byte{5}, []byte("p1")...))}},
		{"empty frame", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if desc, ok := DecodeBytes(lldpFrame(tt.tlvs...)); ok || desc != nil {
				t.Errorf("expected no descriptor, got %+v", desc)
			}
		})
	}
}

func TestLLDPIdentifierSubtypes(t *testing.T) {
	// MAC subtype renders hex, everything else renders as text
	if got := lldpIdentifier([]byte{4, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, lldpChassisSubtypeMAC); got != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("MAC identifier = %s", got)
	}
	if got := lldpIdentifier(append([]byte{6}, []byte("eth0")...), lldpChassisSubtypeMAC); got != "eth0" {
		t.Errorf("text identifier = %s", got)
	}
	if got := lldpIdentifier([]byte{4}, lldpChassisSubtypeMAC); got != "" {
		t.Errorf("undersized identifier = %q, want empty", got)
	}
}
