package terminal

// dispatchCSI applies a fully-parsed CSI sequence: prefix is '?', '!',
// '>', or 0; final is the terminating byte; params is the parsed,
// semicolon-separated integer list (raw values, zero where omitted).
func (f *Framebuffer) dispatchCSI(prefix byte, final byte, params []int) {
	switch final {
	case 'A':
		f.cursor.Y = clampInt(f.cursor.Y-argDefault1(params, 0), 0, f.rows-1)
	case 'B':
		f.cursor.Y = clampInt(f.cursor.Y+argDefault1(params, 0), 0, f.rows-1)
	case 'C':
		f.cursor.X = clampInt(f.cursor.X+argDefault1(params, 0), 0, f.cols-1)
	case 'D':
		f.cursor.X = clampInt(f.cursor.X-argDefault1(params, 0), 0, f.cols-1)
	case 'E':
		f.cursor.X = 0
		f.cursor.Y = clampInt(f.cursor.Y+argDefault1(params, 0), 0, f.rows-1)
	case 'F':
		f.cursor.X = 0
		f.cursor.Y = clampInt(f.cursor.Y-argDefault1(params, 0), 0, f.rows-1)
	case 'G':
		f.cursor.X = clampInt(argDefault1(params, 0)-1, 0, f.cols-1)
	case 'd':
		f.cursor.Y = clampInt(argDefault1(params, 0)-1, 0, f.rows-1)
	case 'H', 'f':
		f.cursor.Y = clampInt(argDefault1(params, 0)-1, 0, f.rows-1)
		f.cursor.X = clampInt(argDefault1(params, 1)-1, 0, f.cols-1)
	case 'J':
		f.eraseInDisplay(argDefault0(params, 0))
	case 'K':
		f.eraseInLine(argDefault0(params, 0))
	case 'L':
		f.insertLines(argDefault1(params, 0))
	case 'M':
		f.deleteLines(argDefault1(params, 0))
	case '@':
		f.insertChars(argDefault1(params, 0))
	case 'P':
		f.deleteChars(argDefault1(params, 0))
	case 'X':
		f.eraseChars(argDefault1(params, 0))
	case 'm':
		f.applySGR(params)
	case 'r':
		f.setScrollRegion(argDefault1(params, 0), argDefaultN(params, 1, f.rows))
	case 's':
		f.saveCursor()
	case 'u':
		f.restoreCursor()
	case 'h', 'l':
		f.setMode(prefix, final == 'h', params)
	default:
		// n, c and any other unrecognized final byte: ignored.
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func argDefault1(params []int, idx int) int {
	if idx >= len(params) || params[idx] == 0 {
		return 1
	}
	return params[idx]
}

func argDefault0(params []int, idx int) int {
	if idx >= len(params) {
		return 0
	}
	return params[idx]
}

func argDefaultN(params []int, idx, def int) int {
	if idx >= len(params) || params[idx] == 0 {
		return def
	}
	return params[idx]
}

func (f *Framebuffer) eraseInLine(mode int) {
	row := f.activeGrid()[f.cursor.Y]
	blank := BlankCell()
	switch mode {
	case 0:
		for x := f.cursor.X; x < f.cols; x++ {
			row[x] = blank
		}
	case 1:
		end := f.cursor.X
		if end > f.cols-1 {
			end = f.cols - 1
		}
		for x := 0; x <= end; x++ {
			row[x] = blank
		}
	case 2:
		for x := 0; x < f.cols; x++ {
			row[x] = blank
		}
	}
}

func (f *Framebuffer) eraseInDisplay(mode int) {
	grid := f.activeGrid()
	blank := BlankCell()
	blankRow := func(y int) {
		for x := 0; x < f.cols; x++ {
			grid[y][x] = blank
		}
	}
	switch mode {
	case 0:
		f.eraseInLine(0)
		for y := f.cursor.Y + 1; y < f.rows; y++ {
			blankRow(y)
		}
	case 1:
		f.eraseInLine(1)
		for y := 0; y < f.cursor.Y; y++ {
			blankRow(y)
		}
	case 2, 3:
		for y := 0; y < f.rows; y++ {
			blankRow(y)
		}
	}
}

func (f *Framebuffer) insertLines(n int) {
	if f.cursor.Y < f.scrollTop || f.cursor.Y > f.scrollBottom {
		return
	}
	grid := f.activeGrid()
	top, bottom := f.cursor.Y, f.scrollBottom
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

func (f *Framebuffer) deleteLines(n int) {
	if f.cursor.Y < f.scrollTop || f.cursor.Y > f.scrollBottom {
		return
	}
	grid := f.activeGrid()
	top, bottom := f.cursor.Y, f.scrollBottom
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

func (f *Framebuffer) insertChars(n int) {
	row := f.activeGrid()[f.cursor.Y]
	x := f.cursor.X
	if n > f.cols-x {
		n = f.cols - x
	}
	if n <= 0 {
		return
	}
	copy(row[x+n:f.cols], row[x:f.cols-n])
	blank := BlankCell()
	for i := x; i < x+n; i++ {
		row[i] = blank
	}
}

func (f *Framebuffer) deleteChars(n int) {
	row := f.activeGrid()[f.cursor.Y]
	x := f.cursor.X
	if n > f.cols-x {
		n = f.cols - x
	}
	if n <= 0 {
		return
	}
	copy(row[x:f.cols-n], row[x+n:f.cols])
	blank := BlankCell()
	for i := f.cols - n; i < f.cols; i++ {
		row[i] = blank
	}
}

func (f *Framebuffer) eraseChars(n int) {
	row := f.activeGrid()[f.cursor.Y]
	end := f.cursor.X + n
	if end > f.cols {
		end = f.cols
	}
	blank := BlankCell()
	for x := f.cursor.X; x < end; x++ {
		row[x] = blank
	}
}

func (f *Framebuffer) setScrollRegion(top, bottom int) {
	top = clampInt(top-1, 0, f.rows-1)
	bottom = clampInt(bottom-1, 0, f.rows-1)
	if top > bottom {
		top, bottom = 0, f.rows-1
	}
	f.scrollTop, f.scrollBottom = top, bottom
}

func (f *Framebuffer) setMode(prefix byte, set bool, params []int) {
	if prefix != '?' {
		return
	}
	for _, code := range params {
		switch code {
		case 25:
			f.cursor.Visible = set
		case 1049:
			if set {
				f.enterAltScreen()
			} else {
				f.leaveAltScreen()
			}
		case 1, 7, 12, 47, 1047, 1048, 2004:
			// Accepted, no observable effect in this emulator.
		}
	}
}

func (f *Framebuffer) enterAltScreen() {
	if f.altActive {
		return
	}
	f.altCursor = f.cursor
	f.alternate = newGrid(f.cols, f.rows)
	f.altActive = true
	f.cursor = Cursor{Visible: true}
}

func (f *Framebuffer) leaveAltScreen() {
	if !f.altActive {
		return
	}
	f.cursor = f.altCursor
	f.altActive = false
	f.alternate = nil
}
