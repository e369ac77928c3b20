package wire

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Inflate decompresses a zlib-compressed gateway message. The gateway only
// compresses when the connection was requested with compress=1.
func Inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Deflate compresses a payload the way the gateway does. Only used by tests
// and local tooling; the client never sends compressed frames.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}
