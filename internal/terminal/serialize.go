package terminal

import (
	"strconv"
	"strings"
)

// Serialize returns an escape-sequence stream that, written to a fresh
// default-initialized Framebuffer, reproduces the current visible grid,
// cursor position, and cursor visibility. See spec.md 4.1.4.
func (f *Framebuffer) Serialize() string {
	var b strings.Builder
	b.WriteString("\x1b[0m\x1b[2J\x1b[H")

	grid := f.activeGrid()
	lastAttrs := DefaultAttrs()
	for y := 0; y < f.rows; y++ {
		b.WriteString("\x1b[")
		b.WriteString(strconv.Itoa(y + 1))
		b.WriteString(";1H")
		row := grid[y]
		for x := 0; x < f.cols; x++ {
			cell := row[x]
			if cell.Attrs != lastAttrs {
				b.WriteString(sgrParams(cell.Attrs))
				lastAttrs = cell.Attrs
			}
			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			b.WriteRune(ch)
		}
	}

	b.WriteString("\x1b[0m\x1b[")
	b.WriteString(strconv.Itoa(f.cursor.Y + 1))
	b.WriteString(";")
	b.WriteString(strconv.Itoa(f.cursor.X + 1))
	b.WriteString("H")
	if !f.cursor.Visible {
		b.WriteString("\x1b[?25l")
	}
	return b.String()
}

func sgrParams(a Attrs) string {
	codes := make([]string, 0, 6)
	codes = append(codes, "0")
	if a.Bold {
		codes = append(codes, "1")
	}
	if a.Dim {
		codes = append(codes, "2")
	}
	if a.Italic {
		codes = append(codes, "3")
	}
	if a.Underline {
		codes = append(codes, "4")
	}
	if a.Blink {
		codes = append(codes, "5")
	}
	if a.Inverse {
		codes = append(codes, "7")
	}
	if a.Hidden {
		codes = append(codes, "8")
	}
	if a.Strikethrough {
		codes = append(codes, "9")
	}
	if a.Fg != ColorDefault {
		codes = append(codes, colorCodes(a.Fg, false)...)
	}
	if a.Bg != ColorDefault {
		codes = append(codes, colorCodes(a.Bg, true)...)
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorCodes(c int, bg bool) []string {
	base := 30
	brightBase := 90
	extended := "38"
	if bg {
		base = 40
		brightBase = 100
		extended = "48"
	}
	switch {
	case c >= 0 && c <= 7:
		return []string{strconv.Itoa(base + c)}
	case c >= 8 && c <= 15:
		return []string{strconv.Itoa(brightBase + c - 8)}
	default:
		return []string{extended, "5", strconv.Itoa(clampInt(c, 0, 255))}
	}
}
