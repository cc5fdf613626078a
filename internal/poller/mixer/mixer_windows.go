// internal/poller/mixer/mixer_windows.go
//go:build windows

package mixer

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

const sFalse = 0x00000001

// Mixer reads the default render endpoint.
// It must be created, used and closed on the same locked OS thread.
type Mixer struct {
	enumerator *wca.IMMDeviceEnumerator
	device     *wca.IMMDevice
	volume     *wca.IAudioEndpointVolume
	comInit    bool
}

// New initializes COM and activates the endpoint volume interface.
func New() (*Mixer, error) {
	m := &Mixer{}

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE: already initialized on this thread; still balanced by Close
		oleErr, ok := err.(*ole.OleError)
		if !ok || oleErr.Code() != sFalse {
			return nil, fmt.Errorf("mixer: com init: %w", err)
		}
	}
	m.comInit = true

	if err := wca.CoCreateInstance(
		wca.CLSID_MMDeviceEnumerator,
		0,
		wca.CLSCTX_ALL,
		wca.IID_IMMDeviceEnumerator,
		&m.enumerator,
	); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("mixer: device enumerator: %w", err)
	}

	if err := m.enumerator.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &m.device); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("mixer: default endpoint: %w", err)
	}

	if err := m.device.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &m.volume); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("mixer: endpoint volume: %w", err)
	}

	return m, nil
}

// Volume returns the master level (0-100) and mute flag.
func (m *Mixer) Volume() (int, bool, error) {
	if m == nil || m.volume == nil {
		return 0, false, fmt.Errorf("mixer: closed")
	}

	var scalar float32
	if err := m.volume.GetMasterVolumeLevelScalar(&scalar); err != nil {
		return 0, false, fmt.Errorf("mixer: read level: %w", err)
	}

	var muted bool
	if err := m.volume.GetMute(&muted); err != nil {
		return 0, false, fmt.Errorf("mixer: read mute: %w", err)
	}

	return Scale(scalar), muted, nil
}

// Close releases interfaces in reverse order of acquisition.
func (m *Mixer) Close() error {
	if m == nil {
		return nil
	}
	if m.volume != nil {
		m.volume.Release()
		m.volume = nil
	}
	if m.device != nil {
		m.device.Release()
		m.device = nil
	}
	if m.enumerator != nil {
		m.enumerator.Release()
		m.enumerator = nil
	}
	if m.comInit {
		ole.CoUninitialize()
		m.comInit = false
	}
	return nil
}
