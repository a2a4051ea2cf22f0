package terminal

// applySGR processes a CSI ... m parameter list left to right, per
// spec.md 4.1.2.1.
func (f *Framebuffer) applySGR(params []int) {
	if len(params) == 0 {
		f.attrs = DefaultAttrs()
		return
	}
	for i := 0; i < len(params); i++ {
		code := params[i]
		switch {
		case code == 0:
			f.attrs = DefaultAttrs()
		case code == 1:
			f.attrs.Bold = true
		case code == 2:
			f.attrs.Dim = true
		case code == 3:
			f.attrs.Italic = true
		case code == 4:
			f.attrs.Underline = true
		case code == 5:
			f.attrs.Blink = true
		case code == 7:
			f.attrs.Inverse = true
		case code == 8:
			f.attrs.Hidden = true
		case code == 9:
			f.attrs.Strikethrough = true
		case code == 22:
			f.attrs.Bold = false
			f.attrs.Dim = false
		case code == 23:
			f.attrs.Italic = false
		case code == 24:
			f.attrs.Underline = false
		case code == 25:
			f.attrs.Blink = false
		case code == 27:
			f.attrs.Inverse = false
		case code == 28:
			f.attrs.Hidden = false
		case code == 29:
			f.attrs.Strikethrough = false
		case code >= 30 && code <= 37:
			f.attrs.Fg = code - 30
		case code == 38:
			color, consumed := parseExtendedColor(params[i+1:])
			if color >= 0 {
				f.attrs.Fg = color
			}
			i += consumed
		case code == 39:
			f.attrs.Fg = ColorDefault
		case code >= 40 && code <= 47:
			f.attrs.Bg = code - 40
		case code == 48:
			color, consumed := parseExtendedColor(params[i+1:])
			if color >= 0 {
				f.attrs.Bg = color
			}
			i += consumed
		case code == 49:
			f.attrs.Bg = ColorDefault
		case code >= 90 && code <= 97:
			f.attrs.Fg = code - 90 + 8
		case code >= 100 && code <= 107:
			f.attrs.Bg = code - 100 + 8
		}
	}
}

// parseExtendedColor parses the tail of a 38/48 extended color
// sub-sequence (either "5;n" for a 256-color index or "2;r;g;b" for a
// downsampled 24-bit color) and returns the resolved color index plus
// the number of parameters consumed after the leading 38/48.
func parseExtendedColor(rest []int) (color int, consumed int) {
	if len(rest) == 0 {
		return -1, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return -1, 1
		}
		return clampInt(rest[1], 0, 255), 2
	case 2:
		if len(rest) < 4 {
			return -1, len(rest)
		}
		return downsampleRGB(rest[1], rest[2], rest[3]), 4
	default:
		return -1, 0
	}
}
