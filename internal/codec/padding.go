package codec

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

const (
	padMin = 16
	padMax = 128 // exclusive
)

// WrapPadded frames a compressed snapshot payload as
// [u16 BE padLen][padLen random bytes][payload], per spec.md 4.2. It is
// applied only to viewer-join snapshots under zstd/smaz; live
// runner-originated frames are forwarded unpadded.
func WrapPadded(compressed []byte) ([]byte, error) {
	padLen, err := randomPadLen()
	if err != nil {
		return nil, err
	}
	pad := make([]byte, padLen)
	if _, err := rand.Read(pad); err != nil {
		return nil, fmt.Errorf("codec: generating pad: %w", err)
	}

	out := make([]byte, 2+padLen+len(compressed))
	binary.BigEndian.PutUint16(out, uint16(padLen))
	copy(out[2:], pad)
	copy(out[2+padLen:], compressed)
	return out, nil
}

// UnwrapPadded strips the padding header written by WrapPadded and
// returns the inner compressed payload.
func UnwrapPadded(framed []byte) ([]byte, error) {
	if len(framed) < 2 {
		return nil, fmt.Errorf("codec: padded frame too short")
	}
	padLen := int(binary.BigEndian.Uint16(framed))
	if 2+padLen > len(framed) {
		return nil, fmt.Errorf("codec: padded frame declares padLen %d longer than frame", padLen)
	}
	return framed[2+padLen:], nil
}

// randomPadLen draws padLen uniformly from [16, 128) using a
// cryptographic RNG, per spec.md 4.2. The range width (112) doesn't
// divide 256, so a plain b[0]%112 would be slightly biased toward the
// low end; reject draws that would introduce that bias and redraw.
func randomPadLen() (int, error) {
	const span = padMax - padMin // 112
	limit := byte(256 - 256%span)
	var b [1]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("codec: generating padLen: %w", err)
		}
		if b[0] < limit {
			return padMin + int(b[0])%span, nil
		}
	}
}
