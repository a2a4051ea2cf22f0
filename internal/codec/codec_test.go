package codec

import (
	"bytes"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, ok := range []string{"none", "zstd", "smaz", "deflate"} {
		if _, err := ParseMode(ok); err != nil {
			t.Fatalf("ParseMode(%q) unexpected error: %v", ok, err)
		}
	}
	if _, err := ParseMode("lz4"); err == nil {
		t.Fatalf("ParseMode(lz4) should have failed")
	}
}

func TestRoundTripAllModes(t *testing.T) {
	payloads := [][]byte{
		[]byte("hello"),
		[]byte(""),
		[]byte("the quick brown fox jumps over the lazy dog 0123456789"),
		bytes.Repeat([]byte{0xff, 0x00, 0x7e}, 40),
	}
	for _, mode := range []Mode{ModeNone, ModeZstd, ModeSmaz, ModeDeflate} {
		c, err := New(mode)
		if err != nil {
			t.Fatalf("New(%s): %v", mode, err)
		}
		for _, p := range payloads {
			compressed, err := c.Compress(p)
			if err != nil {
				t.Fatalf("%s Compress: %v", mode, err)
			}
			back, err := c.Decompress(compressed)
			if err != nil {
				t.Fatalf("%s Decompress: %v", mode, err)
			}
			if !bytes.Equal(back, p) {
				t.Fatalf("%s round trip mismatch: got %q, want %q", mode, back, p)
			}
		}
	}
}

func TestSmazShrinksCommonText(t *testing.T) {
	c, _ := New(ModeSmaz)
	data := []byte("the the the the the")
	compressed, _ := c.Compress(data)
	if len(compressed) >= len(data) {
		t.Fatalf("smaz did not shrink repetitive dictionary text: %d >= %d", len(compressed), len(data))
	}
}

func TestSmazLiteralRunLongerThan255(t *testing.T) {
	c, _ := New(ModeSmaz)
	data := bytes.Repeat([]byte{'\x01'}, 600) // not in codebook, forces long literal run
	compressed, err := c.Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	back, err := c.Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(back, data) {
		t.Fatalf("round trip mismatch for long literal run")
	}
}

func TestPaddedFramingRoundTrip(t *testing.T) {
	payload := []byte("compressed-snapshot-bytes")
	framed, err := WrapPadded(payload)
	if err != nil {
		t.Fatalf("WrapPadded: %v", err)
	}
	if len(framed) < len(payload)+2+padMin {
		t.Fatalf("framed payload too short to contain minimum padding")
	}
	inner, err := UnwrapPadded(framed)
	if err != nil {
		t.Fatalf("UnwrapPadded: %v", err)
	}
	if !bytes.Equal(inner, payload) {
		t.Fatalf("unwrapped payload mismatch: got %q, want %q", inner, payload)
	}
}

func TestPaddedFramingVariesLength(t *testing.T) {
	payload := []byte("x")
	lengths := make(map[int]bool)
	for i := 0; i < 64; i++ {
		framed, err := WrapPadded(payload)
		if err != nil {
			t.Fatalf("WrapPadded: %v", err)
		}
		lengths[len(framed)] = true
	}
	if len(lengths) < 2 {
		t.Fatalf("expected padLen to vary across calls, saw only %d distinct frame lengths", len(lengths))
	}
}

func TestUnwrapPaddedRejectsTruncatedFrame(t *testing.T) {
	if _, err := UnwrapPadded([]byte{0x00}); err == nil {
		t.Fatalf("expected error for frame shorter than the length header")
	}
	if _, err := UnwrapPadded([]byte{0x00, 0x10}); err == nil {
		t.Fatalf("expected error when declared padLen exceeds frame length")
	}
}
