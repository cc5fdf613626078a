// internal/status/encode.go
package status

import "fmt"

// EncodePlayback maps a playback state to its opcode.
// No IO. No side effects.
func EncodePlayback(s PlaybackState) (byte, error) {
	switch s {
	case PlaybackPlaying:
		return OpPlaying, nil
	case PlaybackPaused:
		return OpPaused, nil
	case PlaybackStopped:
		return OpStopped, nil
	default:
		return 0, fmt.Errorf("status: unknown playback state %d", s)
	}
}

// EncodeVolume maps a volume percent to its literal byte.
func EncodeVolume(v int) (byte, error) {
	if v < VolumeMin || v > VolumeMax {
		return 0, fmt.Errorf("status: volume %d out of range %d-%d", v, VolumeMin, VolumeMax)
	}
	return byte(v), nil
}

// EncodeMute maps the mute flag to its opcode.
func EncodeMute(muted bool) byte {
	if muted {
		return OpMuteOn
	}
	return OpMuteOff
}
