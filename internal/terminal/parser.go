package terminal

import "unicode/utf8"

const maxSeqLen = 32

// feedByte consumes one byte of input. It returns nil unless it aborted
// an in-progress sequence (a malformed escape sequence that grew past
// maxSeqLen, or a byte that broke a pending UTF-8 continuation), in which
// case it returns the bytes that should be re-fed into the parser from a
// clean ground state.
func (f *Framebuffer) feedByte(b byte) []byte {
	if f.utf8Need > 0 {
		if b >= 0x80 && b < 0xC0 {
			f.utf8Buf = append(f.utf8Buf, b)
			f.utf8Need--
			if f.utf8Need == 0 {
				r, _ := utf8.DecodeRune(f.utf8Buf)
				f.utf8Buf = nil
				f.putChar(r)
			}
			return nil
		}
		// Continuation byte expected but not found: abort the partial
		// rune and reprocess this byte from a clean state.
		f.utf8Buf = nil
		f.utf8Need = 0
		return []byte{b}
	}

	switch f.state {
	case stateGround:
		return f.feedGround(b)
	case stateEscape:
		return f.feedEscape(b)
	case stateCSI:
		return f.feedCSI(b)
	case stateOSC:
		return f.feedOSC(b)
	case stateOSCEscape:
		return f.feedOSCEscape(b)
	case stateCharset:
		f.state = stateGround
		f.pending = nil
		return nil
	}
	return nil
}

func (f *Framebuffer) feedGround(b byte) []byte {
	switch {
	case b == 0x1B:
		f.state = stateEscape
		f.pending = []byte{b}
		return nil
	case b < 0x20:
		f.feedControl(b)
		return nil
	case b == 0x7F:
		return nil
	case b&0x80 == 0:
		f.putChar(rune(b))
		return nil
	case b&0xE0 == 0xC0:
		f.utf8Need = 1
		f.utf8Buf = []byte{b}
		return nil
	case b&0xF0 == 0xE0:
		f.utf8Need = 2
		f.utf8Buf = []byte{b}
		return nil
	case b&0xF8 == 0xF0:
		f.utf8Need = 3
		f.utf8Buf = []byte{b}
		return nil
	default:
		// Stray continuation byte or invalid lead byte: drop it.
		return nil
	}
}

func (f *Framebuffer) feedControl(b byte) {
	switch b {
	case 0x08: // BS
		if f.cursor.X > 0 {
			f.cursor.X--
		}
	case 0x09: // HT
		next := (f.cursor.X/8 + 1) * 8
		if next > f.cols-1 {
			next = f.cols - 1
		}
		f.cursor.X = next
	case 0x0A: // LF
		f.lineFeed()
	case 0x0D: // CR
		f.cursor.X = 0
	case 0x07: // BEL
	default:
		// other C0 controls ignored
	}
}

// appendPending tracks raw bytes of an in-progress escape/CSI/OSC
// sequence and reports whether the sequence has grown past the
// wedge-avoidance limit.
func (f *Framebuffer) appendPending(b byte) bool {
	f.pending = append(f.pending, b)
	return len(f.pending) > maxSeqLen
}

// abortMalformed implements "discard the leading ESC + next byte",
// returning the remainder of the aborted sequence to be reprocessed.
func (f *Framebuffer) abortMalformed() []byte {
	remainder := f.pending
	f.pending = nil
	f.state = stateGround
	f.prefix = 0
	f.params = nil
	f.curParam = 0
	f.haveDig = false
	if len(remainder) <= 2 {
		return nil
	}
	return remainder[2:]
}

func (f *Framebuffer) feedEscape(b byte) []byte {
	if f.appendPending(b) {
		return f.abortMalformed()
	}

	switch b {
	case '[':
		f.state = stateCSI
		f.prefix = 0
		f.params = nil
		f.curParam = 0
		f.haveDig = false
		return nil
	case ']':
		f.state = stateOSC
		return nil
	case '7':
		f.saveCursor()
	case '8':
		f.restoreCursor()
	case 'D':
		f.lineFeed()
	case 'E':
		f.cursor.X = 0
		f.lineFeed()
	case 'M':
		f.reverseIndex()
	case 'c':
		f.fullReset()
	case '(', ')':
		f.state = stateCharset
		return nil
	default:
		// Unrecognized single-char escape: ignored.
	}
	f.state = stateGround
	f.pending = nil
	return nil
}

func (f *Framebuffer) feedCSI(b byte) []byte {
	if f.appendPending(b) {
		return f.abortMalformed()
	}

	switch {
	case b == '?' || b == '!' || b == '>':
		if len(f.params) == 0 && !f.haveDig {
			f.prefix = b
		}
		return nil
	case b >= '0' && b <= '9':
		f.curParam = f.curParam*10 + int(b-'0')
		f.haveDig = true
		return nil
	case b == ';':
		f.params = append(f.params, f.curParam)
		f.curParam = 0
		f.haveDig = false
		return nil
	case b >= 0x40 && b <= 0x7E:
		f.params = append(f.params, f.curParam)
		prefix, params := f.prefix, f.params
		f.state = stateGround
		f.pending = nil
		f.prefix = 0
		f.params = nil
		f.curParam = 0
		f.haveDig = false
		f.dispatchCSI(prefix, b, params)
		return nil
	default:
		// Any other byte in a CSI sequence is not part of the grammar;
		// ignore the whole sequence.
		f.state = stateGround
		f.pending = nil
		f.prefix = 0
		f.params = nil
		f.curParam = 0
		f.haveDig = false
		return nil
	}
}

func (f *Framebuffer) feedOSC(b byte) []byte {
	if f.appendPending(b) {
		return f.abortMalformed()
	}
	switch b {
	case 0x07:
		f.state = stateGround
		f.pending = nil
	case 0x1B:
		f.state = stateOSCEscape
	}
	return nil
}

func (f *Framebuffer) feedOSCEscape(b byte) []byte {
	if f.appendPending(b) {
		return f.abortMalformed()
	}
	if b == '\\' {
		f.state = stateGround
		f.pending = nil
		return nil
	}
	// Lone ESC without ST inside an OSC string: abort the OSC and
	// reprocess this byte from ground.
	f.state = stateGround
	f.pending = nil
	return []byte{b}
}

// putChar writes a character at the cursor, wrapping first if the
// cursor sits in the phantom column.
func (f *Framebuffer) putChar(r rune) {
	if f.cursor.X >= f.cols {
		f.cursor.X = 0
		f.lineFeed()
	}
	grid := f.activeGrid()
	grid[f.cursor.Y][f.cursor.X] = Cell{Ch: r, Attrs: f.attrs}
	f.cursor.X++
}

func (f *Framebuffer) lineFeed() {
	if f.cursor.Y == f.scrollBottom {
		f.scrollRegionUp(1)
	} else if f.cursor.Y < f.rows-1 {
		f.cursor.Y++
	}
}

func (f *Framebuffer) reverseIndex() {
	if f.cursor.Y == f.scrollTop {
		f.scrollRegionDown(1)
	} else if f.cursor.Y > 0 {
		f.cursor.Y--
	}
}

// scrollRegionUp removes n rows from the top of the scroll region and
// appends n blank rows at its bottom.
func (f *Framebuffer) scrollRegionUp(n int) {
	grid := f.activeGrid()
	top, bottom := f.scrollTop, f.scrollBottom
	region := grid[top : bottom+1]
	if n > len(region) {
		n = len(region)
	}
	kept := append([][]Cell{}, region[n:]...)
	for i := 0; i < n; i++ {
		kept = append(kept, newRow(f.cols))
	}
	copy(region, kept)
}

// scrollRegionDown inserts n blank rows at the top of the scroll region,
// dropping n rows from its bottom.
func (f *Framebuffer) scrollRegionDown(n int) {
	grid := f.activeGrid()
	top, bottom := f.scrollTop, f.scrollBottom
	region := grid[top : bottom+1]
	if n > len(region) {
		n = len(region)
	}
	kept := make([][]Cell, 0, len(region))
	for i := 0; i < n; i++ {
		kept = append(kept, newRow(f.cols))
	}
	kept = append(kept, region[:len(region)-n]...)
	copy(region, kept)
}

func (f *Framebuffer) saveCursor() {
	f.savedCursor = f.cursor
	f.savedAttrs = f.attrs
}

func (f *Framebuffer) restoreCursor() {
	f.cursor = f.savedCursor
	f.attrs = f.savedAttrs
	f.cursor.clamp(f.cols, f.rows)
}

func (f *Framebuffer) fullReset() {
	f.altActive = false
	f.alternate = nil
	f.primary = newGrid(f.cols, f.rows)
	f.cursor = Cursor{Visible: true}
	f.attrs = DefaultAttrs()
	f.savedCursor = f.cursor
	f.savedAttrs = f.attrs
	f.scrollTop, f.scrollBottom = 0, f.rows-1
}
