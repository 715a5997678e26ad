package message

import (
	"bufio"
	"io"
)

// DefaultMaxLineSize - upper bound of a single line in bytes.
const DefaultMaxLineSize = 64 * 1024

// Reader - reads stream line by line.
// Each call blocks until a full line (or the final unterminated piece) is available.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader - builds line reader over r.
// Lines longer than maxSize make ReadLine fail with bufio.ErrTooLong.
func NewReader(r io.Reader, maxSize int) *Reader {
	if maxSize <= 0 {
		maxSize = DefaultMaxLineSize
	}
	initial := 4096
	if initial > maxSize {
		initial = maxSize
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), maxSize)
	return &Reader{scanner}
}

// ReadLine - returns next line without its "\n" or "\r\n" terminator.
// Returns io.EOF when the stream is over.
func (r *Reader) ReadLine() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
