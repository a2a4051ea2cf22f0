package terminal

import "testing"

func TestOSCIsDiscarded(t *testing.T) {
	f := New(80, 24)
	f.Write([]byte("\x1b]0;some title\x07ok"))
	if cellAt(f, 0, 0).Ch != 'o' || cellAt(f, 1, 0).Ch != 'k' {
		t.Fatalf("OSC sequence leaked into grid")
	}
}

func TestOSCTerminatedByST(t *testing.T) {
	f := New(80, 24)
	f.Write([]byte("\x1b]0;title\x1b\\ok"))
	if cellAt(f, 0, 0).Ch != 'o' || cellAt(f, 1, 0).Ch != 'k' {
		t.Fatalf("ST-terminated OSC sequence leaked into grid")
	}
}

func TestTabStop(t *testing.T) {
	f := New(80, 24)
	f.Write([]byte("\tX"))
	if cellAt(f, 8, 0).Ch != 'X' {
		t.Fatalf("tab did not stop at column 8")
	}
}

func Test256Color(t *testing.T) {
	f := New(80, 24)
	f.Write([]byte("\x1b[38;5;196mX"))
	if cellAt(f, 0, 0).Fg != 196 {
		t.Fatalf("fg = %d, want 196", cellAt(f, 0, 0).Fg)
	}
}

func TestTrueColorDownsample(t *testing.T) {
	f := New(80, 24)
	f.Write([]byte("\x1b[38;2;255;0;0mX"))
	want := downsampleRGB(255, 0, 0)
	if cellAt(f, 0, 0).Fg != want {
		t.Fatalf("fg = %d, want %d", cellAt(f, 0, 0).Fg, want)
	}
}

func TestInsertLines(t *testing.T) {
	f := New(10, 5)
	f.Write([]byte("11111\r\n22222\r\n33333"))
	f.Write([]byte("\x1b[2;1H\x1b[1L"))
	if cellAt(f, 0, 1) != BlankCell() {
		t.Fatalf("expected blank row inserted at row 1")
	}
	if cellAt(f, 0, 2).Ch != '2' {
		t.Fatalf("row 2 should now hold the old row 1 content")
	}
}

func TestDeleteLines(t *testing.T) {
	f := New(10, 5)
	f.Write([]byte("11111\r\n22222\r\n33333"))
	f.Write([]byte("\x1b[1;1H\x1b[1M"))
	if cellAt(f, 0, 0).Ch != '2' {
		t.Fatalf("row 0 should now hold the old row 1 content")
	}
	if cellAt(f, 0, 4) != BlankCell() {
		t.Fatalf("expected blank row appended at the bottom of the scroll region")
	}
}

func TestInsertDeleteChars(t *testing.T) {
	f := New(10, 1)
	f.Write([]byte("ABCDE"))
	f.Write([]byte("\x1b[1;2H\x1b[2@"))
	if cellAt(f, 1, 0) != BlankCell() || cellAt(f, 2, 0) != BlankCell() {
		t.Fatalf("insert chars did not blank the inserted region")
	}
	if cellAt(f, 3, 0).Ch != 'B' {
		t.Fatalf("insert chars did not shift trailing content right")
	}

	f.Write([]byte("\x1b[1;2H\x1b[2P"))
	if cellAt(f, 1, 0).Ch != 'B' || cellAt(f, 4, 0).Ch != 'E' {
		t.Fatalf("delete chars did not shift trailing content left")
	}
	if cellAt(f, 8, 0) != BlankCell() || cellAt(f, 9, 0) != BlankCell() {
		t.Fatalf("delete chars did not pad the right edge with blanks")
	}
}

func TestEraseCharsNoShift(t *testing.T) {
	f := New(10, 1)
	f.Write([]byte("ABCDE"))
	f.Write([]byte("\x1b[1;2H\x1b[2X"))
	if cellAt(f, 1, 0) != BlankCell() || cellAt(f, 2, 0) != BlankCell() {
		t.Fatalf("erase chars did not blank target cells")
	}
	if cellAt(f, 3, 0).Ch != 'D' {
		t.Fatalf("erase chars should not shift content, found %q", cellAt(f, 3, 0).Ch)
	}
}

func TestUTF8MultiByteSplitAcrossWrites(t *testing.T) {
	f := New(80, 24)
	euroBytes := []byte("€") // 3-byte UTF-8
	f.Write(euroBytes[:1])
	f.Write(euroBytes[1:])
	if cellAt(f, 0, 0).Ch != '€' {
		t.Fatalf("cell(0,0) = %q, want euro sign", cellAt(f, 0, 0).Ch)
	}
}
