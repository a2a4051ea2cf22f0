// Package terminal implements a small VT-style terminal emulator used to
// track the current on-screen state of a PTY byte stream and to serialize
// that state back into an equivalent escape-sequence stream for replay.
package terminal

// ColorDefault marks a foreground or background color as "use the
// terminal's default" rather than any of the indexed palette slots.
const ColorDefault = -1

// Attrs holds the SGR-settable attributes that apply to a cell: its
// foreground/background color and its boolean style flags.
//
// Colors follow the spec's integer encoding: ColorDefault (-1), 0-7
// standard palette, 8-15 bright palette, 16-255 the 256-color cube.
type Attrs struct {
	Fg int
	Bg int

	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Blink         bool
	Inverse       bool
	Hidden        bool
	Strikethrough bool
}

// DefaultAttrs is the zero-styled attribute set: default colors, no flags.
func DefaultAttrs() Attrs {
	return Attrs{Fg: ColorDefault, Bg: ColorDefault}
}

// Cell is a single terminal grid cell: one display character plus the
// attributes it was written with.
type Cell struct {
	Ch rune
	Attrs
}

// BlankCell is the cell value used to fill newly exposed or erased grid
// positions: a space with default attributes.
func BlankCell() Cell {
	return Cell{Ch: ' ', Attrs: DefaultAttrs()}
}

// downsampleRGB maps a 24-bit RGB triple onto the xterm 6x6x6 color cube,
// per spec: 16 + 36*floor(r/51) + 6*floor(g/51) + floor(b/51).
func downsampleRGB(r, g, b int) int {
	return 16 + 36*(r/51) + 6*(g/51) + (b / 51)
}
