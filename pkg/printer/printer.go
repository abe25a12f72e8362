package printer

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends raw ESC/POS data to a thermal printer.
type Printer interface {
	Print(data []byte) error
	Close() error
	IsConnected() bool
	// Kind is the configured transport: usb, network or none.
	Kind() string
}

// Config selects and addresses a printer
type Config struct {
	Type    string // usb, network, none
	USBPath string // e.g. /dev/usb/lp0
	Address string // host:port, e.g. 192.168.1.100:9100
}

// New creates the Printer described by cfg
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return &networkPrinter{address: cfg.Address, timeout: 5 * time.Second}, nil
	case "none", "":
		return NewNullPrinter(), nil
	}
	return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", cfg.Type)
}

// usbPrinter writes to a device file; it opens and closes per job.
type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Kind() string { return "usb" }

// networkPrinter dials a raw TCP port per job.
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Kind() string { return "network" }

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print([]byte) error { return nil }
func (nullPrinter) Close() error       { return nil }
func (nullPrinter) IsConnected() bool  { return false }
func (nullPrinter) Kind() string       { return "none" }

// BufferPrinter keeps every job in memory. Used for previews and tests.
type BufferPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
}

func NewBufferPrinter() *BufferPrinter {
	return &BufferPrinter{}
}

func (p *BufferPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, bytes.Clone(data))
	return nil
}

func (p *BufferPrinter) Close() error      { return nil }
func (p *BufferPrinter) IsConnected() bool { return true }
func (p *BufferPrinter) Kind() string      { return "buffer" }

// Jobs returns the printed jobs in order.
func (p *BufferPrinter) Jobs() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.jobs))
	copy(out, p.jobs)
	return out
}
