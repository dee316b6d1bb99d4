package serialport

import (
	"fmt"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// USB vendor IDs of boards and USB-serial bridges commonly found on Arduino-class hardware.
var arduinoVendors = map[string]string{
	"2341": "Arduino",
	"2a03": "Arduino",
	"1a86": "WCH CH340",
	"0403": "FTDI",
	"10c4": "Silicon Labs CP210x",
}

// PortInfo describes a serial port found on the host.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// LikelyArduino reports whether the port is backed by a USB device that
// usually carries a servo controller board.
func (p PortInfo) LikelyArduino() bool {
	if !p.IsUSB {
		return false
	}
	_, ok := arduinoVendors[strings.ToLower(p.VID)]
	return ok
}

// Vendor returns a human-readable vendor name, or the raw VID:PID.
func (p PortInfo) Vendor() string {
	if !p.IsUSB {
		return ""
	}
	if name, ok := arduinoVendors[strings.ToLower(p.VID)]; ok {
		return name
	}
	return fmt.Sprintf("%s:%s", p.VID, p.PID)
}

// listDetailed is a variable so tests can replace the OS enumeration.
var listDetailed = enumerator.GetDetailedPortsList

// ListPorts enumerates the serial ports on the host. Likely Arduino boards
// sort first, then ports are ordered by name.
func ListPorts() ([]PortInfo, error) {
	details, err := listDetailed()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		// Skip Bluetooth ports on macOS
		if strings.Contains(d.Name, "Bluetooth") {
			continue
		}
		ports = append(ports, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}

	sort.SliceStable(ports, func(i, j int) bool {
		ai, aj := ports[i].LikelyArduino(), ports[j].LikelyArduino()
		if ai != aj {
			return ai
		}
		return ports[i].Name < ports[j].Name
	})

	return ports, nil
}
