package hid

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ardnew/softkeypad/keymap"
	"github.com/ardnew/softkeypad/pkg"
)

// ReportWriter is a [Transport] that writes boot keyboard reports to an
// io.Writer. Every keystroke is a press report followed by a release report.
type ReportWriter struct {
	mutex  sync.Mutex
	w      io.Writer
	closed bool

	// Buffers (zero-allocation)
	pressBuf   [KeyboardReportSize]byte
	releaseBuf [KeyboardReportSize]byte
}

// NewReportWriter creates a report writer on w. If w is an io.Closer it is
// closed by Close.
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{w: w}
}

// Print types ch.
func (rw *ReportWriter) Print(ctx context.Context, ch byte) error {
	return rw.KeyCode(ctx, ch, keymap.None)
}

// KeyCode sends the key of ch with modifier m.
func (rw *ReportWriter) KeyCode(ctx context.Context, ch byte, m keymap.Modifier) error {
	report, ok := Encode(ch, m)
	if !ok {
		return fmt.Errorf("0x%02x: %w", ch, pkg.ErrUnmapped)
	}
	return rw.WriteReport(ctx, &report)
}

// WriteReport writes report followed by an all-released report.
func (rw *ReportWriter) WriteReport(ctx context.Context, report *KeyboardReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rw.mutex.Lock()
	defer rw.mutex.Unlock()

	if rw.closed {
		return pkg.ErrClosed
	}

	n := report.MarshalTo(rw.pressBuf[:])
	if _, err := rw.w.Write(rw.pressBuf[:n]); err != nil {
		return fmt.Errorf("write press report: %w", err)
	}

	var release KeyboardReport
	n = release.MarshalTo(rw.releaseBuf[:])
	if _, err := rw.w.Write(rw.releaseBuf[:n]); err != nil {
		return fmt.Errorf("write release report: %w", err)
	}

	pkg.LogDebug(pkg.ComponentHID, "report sent",
		"modifiers", report.Modifiers,
		"key", report.Keys[0])
	return nil
}

// Close closes the underlying writer if it is an io.Closer.
func (rw *ReportWriter) Close() error {
	rw.mutex.Lock()
	defer rw.mutex.Unlock()
	if rw.closed {
		return nil
	}
	rw.closed = true
	if c, ok := rw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ Transport = (*ReportWriter)(nil)
