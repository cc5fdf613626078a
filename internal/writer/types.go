// internal/writer/types.go
package writer

// Channel is the exact contract the writer uses.
// One call is one byte on the wire.
type Channel interface {
	WriteByte(b byte) error
}

// ChannelCloser is a Channel the companion owns and must release.
type ChannelCloser interface {
	Channel
	Close() error
}
