package iolib

import (
	"bytes"
	"io"
)

const DefaultChunkSize = 1024

// ReadToClose reads r in chunks of chunkSize until the stream ends.
// Both io.EOF and an empty read are taken as the end of stream.
// On error, bytes read so far are returned alongside it.
func ReadToClose(r io.Reader, chunkSize uint) ([]byte, error) {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	buf := bytes.NewBuffer(nil)
	chunk := make([]byte, chunkSize)

	for {
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])

		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return buf.Bytes(), err
		}
		if n == 0 {
			return buf.Bytes(), nil
		}
	}
}
