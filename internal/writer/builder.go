// internal/writer/builder.go
package writer

import (
	"time"

	"github.com/tamzrod/deck-companion/internal/config"
	"github.com/tamzrod/deck-companion/internal/writer/serial"
)

// OpenChannel opens the serial link described by config.
// ONE attempt. The caller decides what a failure means.
func OpenChannel(c config.SerialConfig) (ChannelCloser, error) {
	cli, err := serial.Open(serial.Config{
		Port:       c.Port,
		BaudRate:   c.BaudRate,
		ResetDelay: time.Duration(c.ResetDelayMs) * time.Millisecond,
		Timeout:    time.Duration(c.WriteTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	return cli, nil
}
