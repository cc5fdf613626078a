// internal/writer/serial/ports.go
package serial

import "sort"

// PortInfo is one entry of the diagnostic listing.
type PortInfo struct {
	Device      string
	Description string
}

// ListPorts returns available serial ports sorted by device name.
// Diagnostic only; nothing selects a port from this list.
func ListPorts() ([]PortInfo, error) {
	ports, err := listPorts()
	if err != nil {
		return nil, err
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].Device < ports[j].Device })
	return ports, nil
}
