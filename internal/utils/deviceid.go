package utils

import (
	"crypto/sha256"
	"fmt"
	"net"
)

const deviceSalt = "TBG-DEVICE-SALT"

// DeviceID derives a stable support identifier, like "TBG-A1B2C3D4", from
// the machine's primary MAC address. Field devices report it on /health so
// support can tell them apart when a route calls in a problem.
func DeviceID() string {
	mac := primaryMAC()
	if mac == "" {
		return "UNKNOWN-DEVICE"
	}
	sum := sha256.Sum256([]byte(mac + deviceSalt))
	return fmt.Sprintf("TBG-%X", sum[:4])
}

// primaryMAC returns the hardware address of the first interface that is
// up and not a loopback, or "" when none qualifies.
func primaryMAC() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		if addr := iface.HardwareAddr.String(); addr != "" {
			return addr
		}
	}
	return ""
}
