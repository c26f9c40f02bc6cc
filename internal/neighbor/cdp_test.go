package neighbor

import (
	"testing"

	"lanterna/internal/domain"
)

func TestParseCDPFull(t *testing.T) {
	payload := cdpPayload(2,
		cdpTLV(cdpTLVDeviceID, []byte("sw-access-03.lan")),
		cdpTLV(cdpTLVAddresses, []byte{
			0, 0, 0, 1, // one address
			1, 1, 0xcc, // NLPID, length 1, IP
			0, 4, 10, 0, 0, 2, // address length 4, 10.0.0.2
		}),
		cdpTLV(cdpTLVPortID, []byte("FastEthernet0/12")),
		cdpTLV(cdpTLVCapabilities, []byte{0x00, 0x00, 0x00, 0x28}), // switch + igmp
		cdpTLV(cdpTLVPlatform, []byte("cisco WS-C2960-24TT-L")),
	)

	desc, ok := DecodeBytes(cdpFrame(payload))
	if !ok {
		t.Fatal("expected a descriptor from a well-formed CDP frame")
	}
	if desc.Protocol != domain.ProtocolCDP {
		t.Errorf("Protocol = %s, want cdp", desc.Protocol)
	}
	if desc.DeviceID != "sw-access-03.lan" {
		t.Errorf("DeviceID = %s, want sw-access-03.lan", desc.DeviceID)
	}
	if desc.PortID != "FastEthernet0/12" {
		t.Errorf("PortID = %s, want FastEthernet0/12", desc.PortID)
	}
	if desc.SystemDescription != "cisco WS-C2960-24TT-L" {
		t.Errorf("SystemDescription = %s, want the platform string", desc.SystemDescription)
	}
	if desc.ManagementAddress != "10.0.0.2" {
		t.Errorf("ManagementAddress = %s, want 10.0.0.2", desc.ManagementAddress)
	}
	if len(desc.Capabilities) != 2 || desc.Capabilities[0] != "Switch" || desc.Capabilities[1] != "IGMP" {
		t.Errorf("Capabilities = %v, want [Switch IGMP]", desc.Capabilities)
	}
}

func TestParseCDPUnknownVersion(t *testing.T) {
	payload := cdpPayload(9, cdpTLV(cdpTLVDeviceID, []byte("sw1")))

	if desc, ok := parseCDP(payload); ok || desc != nil {
		t.Errorf("unknown CDP version must yield no descriptor, got %+v", desc)
	}
}

func TestParseCDPTruncatedTLV(t *testing.T) {
	// device ID TLV declares more bytes than the frame holds
	payload := cdpPayload(2)
	payload = append(payload, 0x00, 0x01, 0x00, 0x40, 's', 'w')

	if desc, ok := parseCDP(payload); ok || desc != nil {
		t.Errorf("truncated TLV must yield no descriptor, got %+v", desc)
	}
}

func TestParseCDPUndersizedTLVLength(t *testing.T) {
	// a declared length below the header size would loop forever if
	// taken at face value
	payload := cdpPayload(1)
	payload = append(payload, 0x00, 0x01, 0x00, 0x02)

	if desc, ok := parseCDP(payload); ok || desc != nil {
		t.Errorf("undersized TLV length must yield no descriptor, got %+v", desc)
	}
}

func TestParseCDPWrongSNAP(t *testing.T) {
	payload := cdpPayload(2, cdpTLV(cdpTLVDeviceID, []byte("sw1")))
	payload[5] = 0xff // corrupt the OUI

	if desc, ok := parseCDP(payload); ok || desc != nil {
		t.Error("non-CDP SNAP header must yield no descriptor")
	}
}

func TestParseCDPNoDeviceID(t *testing.T) {
	payload := cdpPayload(2, cdpTLV(cdpTLVPortID, []byte("Fa0/1")))

	if desc, ok := parseCDP(payload); ok || desc != nil {
		t.Error("a CDP frame without a device ID is not a neighbor")
	}
}
