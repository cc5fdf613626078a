// internal/writer/serial/client.go
package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	goserial "github.com/goburrow/serial"
)

// Config for ONE serial link.
type Config struct {
	Port     string
	BaudRate int

	// ResetDelay is waited after open; most boards reset when DTR toggles.
	ResetDelay time.Duration

	// Timeout bounds each write.
	Timeout time.Duration
}

// Client is an unbuffered byte channel. One WriteByte is one write syscall.
type Client struct {
	port io.WriteCloser
}

// sleep is replaced in tests.
var sleep = time.Sleep

// opener is replaced in tests.
var opener = func(c *goserial.Config) (io.WriteCloser, error) {
	return goserial.Open(c)
}

// Open opens the port (8N1) and waits out the receiver reset.
func Open(cfg Config) (*Client, error) {
	if cfg.Port == "" {
		return nil, errors.New("serial: port required")
	}
	if cfg.BaudRate <= 0 {
		return nil, fmt.Errorf("serial: invalid baud rate %d", cfg.BaudRate)
	}

	p, err := opener(&goserial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.Port, err)
	}

	if cfg.ResetDelay > 0 {
		sleep(cfg.ResetDelay)
	}

	return newClient(p), nil
}

func newClient(p io.WriteCloser) *Client {
	return &Client{port: p}
}

// WriteByte sends exactly one byte. A short write is an error.
func (c *Client) WriteByte(b byte) error {
	if c == nil || c.port == nil {
		return errors.New("serial: closed")
	}
	n, err := c.port.Write([]byte{b})
	if err != nil {
		return fmt.Errorf("serial: write 0x%02x: %w", b, err)
	}
	if n != 1 {
		return fmt.Errorf("serial: short write 0x%02x", b)
	}
	return nil
}

// Close releases the port. Safe to call more than once.
func (c *Client) Close() error {
	if c == nil || c.port == nil {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	return err
}
