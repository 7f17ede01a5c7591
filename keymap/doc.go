// Package keymap holds the translation table from matrix cells to the
// character and modifier a keypress emits.
//
// A [KeyMap] is a value: two parallel 4×4 tables fixed at construction. It is
// handed to the matrix scanner, which resolves the last pressed cell through
// [KeyMap.At]. The zero character marks a cell that emits nothing, and
// [NoKey] is the scan result when no cell is pressed.
//
//	km := keymap.Default()
//	k := km.At(0, 3) // {Char: 'a', Mod: keymap.Ctrl}
package keymap
