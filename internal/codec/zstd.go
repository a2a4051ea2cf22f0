package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdCodec wraps a reusable encoder/decoder pair. Both types are
// documented by klauspost/compress as safe for concurrent use. Each call
// to New(ModeZstd) builds its own pair, so every session holds its own
// instance.
type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstdCodec() (Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("codec: zstd encoder init: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd decoder init: %w", err)
	}
	return &zstdCodec{enc: enc, dec: dec}, nil
}

func (z *zstdCodec) Mode() Mode { return ModeZstd }

func (z *zstdCodec) Compress(data []byte) ([]byte, error) {
	return z.enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

func (z *zstdCodec) Decompress(data []byte) ([]byte, error) {
	out, err := z.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd decompress: %w", err)
	}
	return out, nil
}
