package hid

// KeyboardReportSize is the size of a boot keyboard report in bytes.
const KeyboardReportSize = 8

// KeyboardReport is a boot keyboard input report.
type KeyboardReport struct {
	Modifiers uint8
	Keys      [6]Usage
}

// MarshalTo writes the report to buf and returns the number of bytes
// written, or 0 if buf is too small.
func (r *KeyboardReport) MarshalTo(buf []byte) int {
	if len(buf) < KeyboardReportSize {
		return 0
	}
	buf[0] = r.Modifiers
	buf[1] = 0
	for i, k := range r.Keys {
		buf[2+i] = byte(k)
	}
	return KeyboardReportSize
}

// Clear releases every key and modifier.
func (r *KeyboardReport) Clear() {
	*r = KeyboardReport{}
}

// Press sets the report to a single key with the given modifier bits.
func (r *KeyboardReport) Press(mods uint8, key Usage) {
	r.Clear()
	r.Modifiers = mods
	r.Keys[0] = key
}
