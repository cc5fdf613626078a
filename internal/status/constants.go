// internal/status/constants.go
package status

// Wire protocol constants.
// These values are what the receiver firmware decodes and MUST NOT be configurable.
// One byte is one event: no framing, no checksum, no acknowledgement.

// ---- PLAYBACK OPCODES ----

// OpPlaying announces that playback is active.
const OpPlaying byte = 'P'

// OpPaused announces that a session exists but is not playing.
const OpPaused byte = 'p'

// OpStopped announces that no session or device is active.
const OpStopped byte = 'S'

// ---- MUTE OPCODES ----

// OpMuteOn announces that the output is muted.
const OpMuteOn byte = 'M'

// OpMuteOff announces that the output is unmuted.
const OpMuteOff byte = 'm'

// ---- VOLUME RANGE ----

// Volume is sent as the literal percent byte.
// 'M', 'P' and 'S' (77, 80, 83) fall inside this range; the receiver
// firmware disambiguates, not the wire format.
const VolumeMin = 0
const VolumeMax = 100
