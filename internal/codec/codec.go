// Package codec implements the compress/decompress transform applied to
// product image payloads at storage boundaries. Images are deflated before
// they reach the store and inflated again before they are returned to a
// caller. The transform is pure and safe for concurrent use.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrMalformed is returned by Decompress when the payload is not a valid
// zlib stream.
var ErrMalformed = errors.New("malformed compressed payload")

// Compress deflates data. The result round-trips exactly through
// Decompress, including for empty input. No maximum payload size is
// enforced here; callers decide how much they accept off the wire.
func Compress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(data) // writing to a bytes.Buffer cannot fail
	_ = w.Close()
	return buf.Bytes()
}

// Decompress reverses Compress. Input that is not a valid zlib stream
// returns an error wrapping ErrMalformed.
func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer func() { _ = r.Close() }()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}
