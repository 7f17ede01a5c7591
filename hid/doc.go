// Package hid models the USB HID boot keyboard that keypresses are sent
// through.
//
// # Transport
//
// A [Transport] offers the two operations the dispatch loop needs: type a
// printable character, or send a character's key with an explicit modifier.
// [Send] picks between them from the key map modifier.
//
// Implementations in this module:
//
//   - [ReportWriter] writes 8-byte boot keyboard reports to an [io.Writer],
//     such as a Linux USB gadget endpoint (/dev/hidg0)
//   - [Recorder] keeps every transmission in memory
//   - package uinputkbd drives a Linux virtual keyboard
//
// # Reports
//
// Each keystroke is a press report followed by an all-released report:
//
//	[modifiers, reserved, key1, key2, key3, key4, key5, key6]
//
// Characters are translated with a US layout table ([Lookup]); upper case
// letters and shifted symbols imply Left Shift.
package hid
