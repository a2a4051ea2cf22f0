package codec

import "errors"

var errTruncated = errors.New("codec: truncated smaz stream")
