// Package matrix scans a 4×4 push-button matrix.
//
// Rows are outputs held high while idle; columns are pulled-up inputs. A
// button closes the contact between its row and column, so a column reads
// low while its row is driven low and the button is held. [Scanner.Scan]
// pulses each row low in turn and reports the last pressed cell it observed,
// translated through a [keymap.KeyMap].
//
// The scanner owns the line handles it is constructed with. [Virtual] is an
// in-memory matrix that provides such handles for tests and simulators.
package matrix
