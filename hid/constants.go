package hid

// Usage is a key code from the Keyboard/Keypad usage page.
type Usage uint8

// Keyboard modifier bits (byte 0 of a keyboard report).
const (
	ModLeftCtrl   = 1 << 0
	ModLeftShift  = 1 << 1
	ModLeftAlt    = 1 << 2
	ModLeftGUI    = 1 << 3
	ModRightCtrl  = 1 << 4
	ModRightShift = 1 << 5
	ModRightAlt   = 1 << 6
	ModRightGUI   = 1 << 7
)

// Key usages (USB HID Usage Tables, Keyboard/Keypad page).
const (
	KeyNone       Usage = 0x00
	KeyA          Usage = 0x04 // KeyA..KeyZ are contiguous
	KeyZ          Usage = 0x1D
	Key1          Usage = 0x1E // Key1..Key9 are contiguous
	Key9          Usage = 0x26
	Key0          Usage = 0x27
	KeyEnter      Usage = 0x28
	KeyEscape     Usage = 0x29
	KeyBackspace  Usage = 0x2A
	KeyTab        Usage = 0x2B
	KeySpace      Usage = 0x2C
	KeyMinus      Usage = 0x2D
	KeyEqual      Usage = 0x2E
	KeyLeftBrace  Usage = 0x2F
	KeyRightBrace Usage = 0x30
	KeyBackslash  Usage = 0x31
	KeySemicolon  Usage = 0x33
	KeyQuote      Usage = 0x34
	KeyGrave      Usage = 0x35
	KeyComma      Usage = 0x36
	KeyDot        Usage = 0x37
	KeySlash      Usage = 0x38
)

// KeyboardReportDescriptor describes the 8-byte boot keyboard input report
// with a 5-bit LED output report. It is what a Linux gadget function needs
// in its report_desc attribute.
var KeyboardReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0xE0, //   Usage Minimum (Left Control)
	0x29, 0xE7, //   Usage Maximum (Right GUI)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data, Variable, Absolute) - Modifier byte
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Constant) - Reserved byte
	0x95, 0x05, //   Report Count (5)
	0x75, 0x01, //   Report Size (1)
	0x05, 0x08, //   Usage Page (LEDs)
	0x19, 0x01, //   Usage Minimum (Num Lock)
	0x29, 0x05, //   Usage Maximum (Kana)
	0x91, 0x02, //   Output (Data, Variable, Absolute) - LED report
	0x95, 0x01, //   Report Count (1)
	0x75, 0x03, //   Report Size (3)
	0x91, 0x01, //   Output (Constant) - Padding
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x65, //   Logical Maximum (101)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0x00, //   Usage Minimum (0)
	0x29, 0x65, //   Usage Maximum (101)
	0x81, 0x00, //   Input (Data, Array) - Key array
	0xC0, // End Collection
}
