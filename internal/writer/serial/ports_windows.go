// internal/writer/serial/ports_windows.go
//go:build windows

package serial

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const serialCommKey = `HARDWARE\DEVICEMAP\SERIALCOMM`

func listPorts() ([]PortInfo, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, serialCommKey, registry.QUERY_VALUE)
	if err != nil {
		// key is absent when no serial driver is loaded
		if errors.Is(err, registry.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("serial: open registry: %w", err)
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("serial: read registry: %w", err)
	}

	out := make([]PortInfo, 0, len(names))
	for _, name := range names {
		dev, _, err := k.GetStringValue(name)
		if err != nil {
			continue
		}
		out = append(out, PortInfo{Device: dev, Description: name})
	}
	return out, nil
}
