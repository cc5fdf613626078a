// internal/poller/mixer/mixer_other.go
//go:build !windows

package mixer

// Mixer has no backend off Windows.
type Mixer struct{}

// New always fails with ErrUnsupported.
func New() (*Mixer, error) {
	return nil, ErrUnsupported
}

func (m *Mixer) Volume() (int, bool, error) {
	return 0, false, ErrUnsupported
}

func (m *Mixer) Close() error { return nil }
