// internal/writer/serial/ports_unix.go
//go:build !windows

package serial

import (
	"os"
	"path/filepath"
	"strings"
)

var portGlobs = []string{
	"/dev/ttyACM*",
	"/dev/ttyUSB*",
	"/dev/ttyS*",
	"/dev/cu.*",
}

// sysfsRoot is replaced in tests.
var sysfsRoot = "/sys/class/tty"

func listPorts() ([]PortInfo, error) {
	return globPorts(portGlobs)
}

func globPorts(patterns []string) ([]PortInfo, error) {
	seen := map[string]struct{}{}
	var out []PortInfo

	for _, pat := range patterns {
		matches, err := filepath.Glob(pat)
		if err != nil {
			return nil, err
		}
		for _, dev := range matches {
			if _, ok := seen[dev]; ok {
				continue
			}
			seen[dev] = struct{}{}
			out = append(out, PortInfo{Device: dev, Description: describe(dev)})
		}
	}
	return out, nil
}

// describe reads the USB product string when the kernel exposes one.
func describe(dev string) string {
	iface, err := filepath.EvalSymlinks(filepath.Join(sysfsRoot, filepath.Base(dev), "device"))
	if err != nil {
		return ""
	}
	b, err := os.ReadFile(filepath.Join(filepath.Dir(iface), "product"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
