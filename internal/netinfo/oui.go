package netinfo

import "strings"

// ouiVendors maps the first three octets of a MAC address to the
// assigned vendor. Deliberately small: common gateway, firewall, and
// hypervisor NICs only.
var ouiVendors = map[string]string{
	"00:00:0c": "Cisco Systems",
	"00:18:0a": "Cisco Meraki",
	"00:05:85": "Juniper Networks",
	"00:09:0f": "Fortinet",
	"d4:ca:6d": "MikroTik",
	"4c:5e:0c": "MikroTik",
	"f0:9f:c2": "Ubiquiti Networks",
	"24:a4:3c": "Ubiquiti Networks",
	"00:11:32": "Synology",
	"b8:27:eb": "Raspberry Pi Foundation",
	"dc:a6:32": "Raspberry Pi Trading",
	"00:0d:b9": "PC Engines",
	"00:0c:29": "VMware",
	"00:50:56": "VMware",
	"00:15:5d": "Microsoft Hyper-V",
	"52:54:00": "QEMU/KVM",
}

// VendorForMAC looks the address's OUI prefix up in the built-in
// table. Separator and case variations are normalized first; anything
// unrecognized is "UNKNOWN".
func VendorForMAC(mac string) string {
	normalized := strings.ToLower(strings.ReplaceAll(mac, "-", ":"))
	if len(normalized) < 8 {
		return "UNKNOWN"
	}
	if vendor, ok := ouiVendors[normalized[:8]]; ok {
		return vendor
	}
	return "UNKNOWN"
}
