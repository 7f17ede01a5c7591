package pkg

import "errors"

// Keypad errors.
var (
	// ErrInvalidKeyMap indicates a key map cell holds an unknown modifier.
	ErrInvalidKeyMap = errors.New("invalid key map")

	// ErrInvalidLine indicates a missing or unusable GPIO line handle.
	ErrInvalidLine = errors.New("invalid line")

	// ErrPinNotFound indicates a GPIO pin name unknown to the host.
	ErrPinNotFound = errors.New("pin not found")

	// ErrInvalidConfig indicates a configuration value out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnmapped indicates a character with no HID usage.
	ErrUnmapped = errors.New("character has no key usage")

	// ErrClosed indicates use of a transport after Close.
	ErrClosed = errors.New("transport closed")

	// ErrQueueFull indicates a send request was dropped.
	ErrQueueFull = errors.New("send queue full")
)
