package printer

import (
	"context"
	"fmt"
	"net"
	"time"
)

var (
	_escInit = []byte{0x1b, '@'}
	_escCut  = []byte{0x1d, 'V', 0x00}
)

// TCPPrinter sends raw ESC/POS bytes to a network receipt printer,
// usually listening on port 9100.
type TCPPrinter struct {
	addr    string
	timeout time.Duration
}

func NewTCPPrinter(addr string, timeout time.Duration) *TCPPrinter {
	return &TCPPrinter{
		addr:    addr,
		timeout: timeout,
	}
}

func (p *TCPPrinter) Emit(ctx context.Context, name, company string) error {
	d := net.Dialer{Timeout: p.timeout}

	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return fmt.Errorf("TCPPrinter - Emit - d.DialContext: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(p.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}

	err = conn.SetWriteDeadline(deadline)
	if err != nil {
		return fmt.Errorf("TCPPrinter - Emit - conn.SetWriteDeadline: %w", err)
	}

	payload := make([]byte, 0, 128)
	payload = append(payload, _escInit...)
	payload = append(payload, Text(name, company)...)
	payload = append(payload, "\n\n\n"...)
	payload = append(payload, _escCut...)

	_, err = conn.Write(payload)
	if err != nil {
		return fmt.Errorf("TCPPrinter - Emit - conn.Write: %w", err)
	}

	return nil
}
