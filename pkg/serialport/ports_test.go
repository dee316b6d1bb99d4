package serialport

import (
	"errors"
	"testing"

	"go.bug.st/serial/enumerator"
)

func TestListPorts(t *testing.T) {
	restore := listDetailed
	listDetailed = func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{
			{Name: "/dev/ttyS0"},
			{Name: "/dev/cu.Bluetooth-Incoming-Port"},
			{Name: "/dev/ttyUSB1", IsUSB: true, VID: "1A86", PID: "7523"},
			{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "0043", Product: "Arduino Uno"},
			{Name: "/dev/ttyUSB0", IsUSB: true, VID: "046d", PID: "c52b"},
		}, nil
	}
	defer func() { listDetailed = restore }()

	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts failed: %v", err)
	}

	var names []string
	for _, p := range ports {
		names = append(names, p.Name)
	}
	want := []string{"/dev/ttyACM0", "/dev/ttyUSB1", "/dev/ttyS0", "/dev/ttyUSB0"}
	if len(names) != len(want) {
		t.Fatalf("ports: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ports[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	if ports[1].Vendor() != "WCH CH340" {
		t.Errorf("Vendor() = %q, want WCH CH340", ports[1].Vendor())
	}
	if ports[3].Vendor() != "046d:c52b" {
		t.Errorf("Vendor() = %q, want 046d:c52b", ports[3].Vendor())
	}
	if ports[2].LikelyArduino() {
		t.Error("non-USB port reported as Arduino")
	}
}

func TestListPorts_Error(t *testing.T) {
	restore := listDetailed
	listDetailed = func() ([]*enumerator.PortDetails, error) {
		return nil, errors.New("no sysfs")
	}
	defer func() { listDetailed = restore }()

	if _, err := ListPorts(); err == nil {
		t.Fatal("ListPorts: expected error")
	}
}
