package hid

import (
	"context"

	"github.com/ardnew/softkeypad/keymap"
)

// Transport sends keystrokes to the host.
type Transport interface {
	// Print types a printable character with no explicit modifier.
	Print(ctx context.Context, ch byte) error

	// KeyCode sends the key of ch together with the modifier m.
	KeyCode(ctx context.Context, ch byte, m keymap.Modifier) error
}

// Send transmits k through t, using Print when k has no modifier and
// KeyCode otherwise.
func Send(ctx context.Context, t Transport, k keymap.Key) error {
	if k.Mod == keymap.None {
		return t.Print(ctx, k.Char)
	}
	return t.KeyCode(ctx, k.Char, k.Mod)
}
